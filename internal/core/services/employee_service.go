package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
	portsrepo "github.com/orbitcommerce/collab_backend/internal/core/ports/repositories"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/google/uuid"
)

// EmployeeService handles business logic for the directory and presence.
type EmployeeService struct {
	employeeRepo     portsrepo.EmployeeRepositoryFacade
	conversationRepo portsrepo.ConversationRepositoryFacade
	broadcaster      gateways.Broadcaster
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(er portsrepo.EmployeeRepositoryFacade, cr portsrepo.ConversationRepositoryFacade, b gateways.Broadcaster) portssvc.EmployeeSvcFacade {
	return &EmployeeService{
		employeeRepo:     er,
		conversationRepo: cr,
		broadcaster:      b,
	}
}

// Ensure EmployeeService implements the portssvc.EmployeeSvcFacade interface
var _ portssvc.EmployeeSvcFacade = (*EmployeeService)(nil)

// GetEmployeeByID retrieves a single directory record.
func (s *EmployeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}
	return employee, nil
}

// ListEmployees retrieves a paginated directory listing.
func (s *EmployeeService) ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	employees, err := s.employeeRepo.FindEmployees(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// EmployeeForAuthenticatedUser resolves the verified external identity to
// its employee record.
func (s *EmployeeService) EmployeeForAuthenticatedUser(ctx context.Context, externalUserID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByExternalUserID(ctx, externalUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no employee record for authenticated user: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve authenticated user: %w", err)
	}
	return employee, nil
}

// ProvisionEmployee creates a directory record.
func (s *EmployeeService) ProvisionEmployee(ctx context.Context, req dto.ProvisionEmployeeRequest, creatorID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	employee := domain.Employee{
		EmployeeID:     uuid.NewString(),
		ExternalUserID: req.ExternalUserID,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		JobTitle:       req.JobTitle,
		Department:     req.Department,
		TimeZone:       req.TimeZone,
		Status:         domain.EmployeeActive,
		Presence:       domain.PresenceOffline,
		LastSeenAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Employee already provisioned", slog.String("email", req.Email))
			return nil, err
		}
		logger.Error("Failed to save employee", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to provision employee: %w", err)
	}

	logger.Info("Employee provisioned", slog.String("employee_id", employee.EmployeeID), slog.String("creator_id", creatorID))
	return &employee, nil
}

// UpdateEmployee edits profile fields and status. Deactivation is a status
// change; there is no delete path.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, updaterID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Phone != nil {
		employee.Phone = req.Phone
	}
	if req.JobTitle != nil {
		employee.JobTitle = *req.JobTitle
	}
	if req.Department != nil {
		employee.Department = req.Department
	}
	if req.TimeZone != nil {
		employee.TimeZone = *req.TimeZone
	}
	if req.Status != nil {
		employee.Status = domain.EmployeeStatus(*req.Status)
	}
	employee.LastUpdatedAt = time.Now()
	employee.LastUpdatedBy = updaterID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		logger.Error("Failed to update employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	logger.Info("Employee updated", slog.String("employee_id", employeeID), slog.String("updater_id", updaterID))
	return employee, nil
}

// UpdatePresence applies a last-write-wins presence change and then advises
// the employee's live channels. The write is authoritative; the broadcast
// is best-effort and carries no ordering guarantee.
func (s *EmployeeService) UpdatePresence(ctx context.Context, employeeID string, presence domain.Presence) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	if err := s.employeeRepo.UpdatePresence(ctx, employeeID, presence, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to update presence", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return fmt.Errorf("failed to update presence: %w", err)
	}

	conversations, err := s.conversationRepo.FindConversationsForEmployee(ctx, employeeID)
	if err != nil {
		logger.Warn("Presence saved but channel advisory lookup failed", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil
	}
	event := gateways.RealtimeEvent{
		Type: "presence_changed",
		Payload: map[string]any{
			"employeeID": employeeID,
			"presence":   string(presence),
			"lastSeenAt": now,
		},
	}
	for _, c := range conversations {
		event.ChannelID = c.ConversationID
		s.broadcaster.Broadcast(c.ConversationID, event)
	}
	return nil
}
