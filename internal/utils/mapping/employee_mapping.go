package mapping

import (
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:     d.EmployeeID,
		ExternalUserID: d.ExternalUserID,
		Email:          d.Email,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Phone:          d.Phone,
		JobTitle:       d.JobTitle,
		Department:     d.Department,
		TimeZone:       d.TimeZone,
		Status:         string(d.Status),
		Presence:       string(d.Presence),
		LastSeenAt:     d.LastSeenAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:     m.EmployeeID,
		ExternalUserID: m.ExternalUserID,
		Email:          m.Email,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Phone:          m.Phone,
		JobTitle:       m.JobTitle,
		Department:     m.Department,
		TimeZone:       m.TimeZone,
		Status:         domain.EmployeeStatus(m.Status),
		Presence:       domain.Presence(m.Presence),
		LastSeenAt:     m.LastSeenAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainEmployeeSlice converts a slice of model Employees to domain Employees
func ToDomainEmployeeSlice(ms []models.Employee) []domain.Employee {
	ds := make([]domain.Employee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEmployee(m)
	}
	return ds
}
