package services

import (
	"context"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/dto"
)

// EmployeeReaderSvc defines read operations on the directory.
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves a single directory record.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves a paginated directory listing.
	ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error)

	// EmployeeForAuthenticatedUser resolves the externally verified caller
	// identity to its employee record.
	EmployeeForAuthenticatedUser(ctx context.Context, externalUserID string) (*domain.Employee, error)
}

// EmployeeWriterSvc defines write operations on the directory.
type EmployeeWriterSvc interface {
	// ProvisionEmployee creates a directory record (administrative action).
	ProvisionEmployee(ctx context.Context, req dto.ProvisionEmployeeRequest, creatorID string) (*domain.Employee, error)

	// UpdateEmployee edits profile fields and status. Employees are never
	// hard-deleted; deactivation is a status change.
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, updaterID string) (*domain.Employee, error)

	// UpdatePresence applies a last-write-wins presence change and then
	// advises the employee's live channels. The write is authoritative; the
	// broadcast is best-effort.
	UpdatePresence(ctx context.Context, employeeID string, presence domain.Presence) error
}

// EmployeeSvcFacade combines the employee service interfaces.
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
}
