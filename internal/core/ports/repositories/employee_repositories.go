package repositories

import (
	"context"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// EmployeeReader defines read operations for directory data
type EmployeeReader interface {
	// FindEmployeeByID retrieves a specific employee by their ID.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByExternalUserID resolves an externally authenticated user
	// identity to its employee record.
	FindEmployeeByExternalUserID(ctx context.Context, externalUserID string) (*domain.Employee, error)

	// FindEmployeeByFullName resolves a "First Last" display name by
	// case-insensitive equality. Used for mention resolution only.
	FindEmployeeByFullName(ctx context.Context, fullName string) (*domain.Employee, error)

	// FindEmployees retrieves a paginated list of employees.
	FindEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error)

	// FindEmployeesByIDs retrieves the given employees keyed by ID. Missing
	// IDs are simply absent from the map.
	FindEmployeesByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error)
}

// EmployeeWriter defines write operations for directory data
type EmployeeWriter interface {
	// SaveEmployee persists a new employee record.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployee updates an existing employee's profile and status.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	// UpdatePresence applies a last-write-wins presence change and advances
	// last_seen_at.
	UpdatePresence(ctx context.Context, employeeID string, presence domain.Presence, lastSeenAt time.Time) error
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
