package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// employeeIDKey is the key under which the authenticated caller's resolved
// employee ID is stored in the request context.
const employeeIDKey = contextKey("employeeID")

// GetEmployeeIDFromContext retrieves the authenticated employee ID from the
// Gin context. It returns the ID and a boolean indicating if it was found.
func GetEmployeeIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(employeeIDKey); v != nil {
		id, ok := v.(string)
		return id, ok
	}
	return "", false
}

// WithEmployeeID returns a context carrying the resolved employee ID.
// Exported for handler tests that bypass the auth middleware.
func WithEmployeeID(ctx context.Context, employeeID string) context.Context {
	return context.WithValue(ctx, employeeIDKey, employeeID)
}
