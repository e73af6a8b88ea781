package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	portsrepo "github.com/orbitcommerce/collab_backend/internal/core/ports/repositories"
	"github.com/orbitcommerce/collab_backend/internal/models"
	"github.com/orbitcommerce/collab_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employeeColumns = `
	employee_id, external_user_id, email, first_name, last_name, phone,
	job_title, department, time_zone, status, presence, last_seen_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEmployeeRepository implements portsrepo.EmployeeRepositoryFacade
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.ExternalUserID,
		&m.Email,
		&m.FirstName,
		&m.LastName,
		&m.Phone,
		&m.JobTitle,
		&m.Department,
		&m.TimeZone,
		&m.Status,
		&m.Presence,
		&m.LastSeenAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.ExternalUserID,
		m.Email,
		m.FirstName,
		m.LastName,
		m.Phone,
		m.JobTitle,
		m.Department,
		m.TimeZone,
		m.Status,
		m.Presence,
		m.LastSeenAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("employee email or external id already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`
	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by ID %s: %w", employeeID, err)
	}
	d := mapping.ToDomainEmployee(m)
	return &d, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByExternalUserID(ctx context.Context, externalUserID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE external_user_id = $1;`
	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, externalUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by external user ID: %w", err)
	}
	d := mapping.ToDomainEmployee(m)
	return &d, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByFullName(ctx context.Context, fullName string) (*domain.Employee, error) {
	// Best-effort mention resolution only; never used for authorization.
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE LOWER(first_name || ' ' || last_name) = LOWER($1) AND status = $2
		LIMIT 1;
	`
	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, fullName, string(domain.EmployeeActive)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by full name: %w", err)
	}
	d := mapping.ToDomainEmployee(m)
	return &d, nil
}

func (r *PgxEmployeeRepository) FindEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	modelEmployees := []models.Employee{}
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		modelEmployees = append(modelEmployees, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", rows.Err())
	}

	return mapping.ToDomainEmployeeSlice(modelEmployees), nil
}

func (r *PgxEmployeeRepository) FindEmployeesByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error) {
	result := make(map[string]domain.Employee, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		result[m.EmployeeID] = mapping.ToDomainEmployee(m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", rows.Err())
	}
	return result, nil
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, phone = $3, job_title = $4,
		    department = $5, time_zone = $6, status = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE employee_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.FirstName,
		m.LastName,
		m.Phone,
		m.JobTitle,
		m.Department,
		m.TimeZone,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("employee not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEmployeeRepository) UpdatePresence(ctx context.Context, employeeID string, presence domain.Presence, lastSeenAt time.Time) error {
	// Last-write-wins; no optimistic-concurrency token.
	query := `
		UPDATE employees
		SET presence = $1, last_seen_at = $2
		WHERE employee_id = $3;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(presence), lastSeenAt, employeeID)
	if err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("employee not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
