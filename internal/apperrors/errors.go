package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("operation not permitted")

// ErrDependency indicates that an external dependency (calling provider,
// file storage) was unreachable or returned a failure. Callers can use it to
// distinguish "your request was invalid" from "retry later".
var ErrDependency = errors.New("external dependency failure")

// ErrPublish indicates that an outbound event could not be delivered after a
// successful domain mutation. It is logged and swallowed, never propagated
// to the triggering operation.
var ErrPublish = errors.New("event publish failure")
