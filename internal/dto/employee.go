package dto

import (
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
)

// ProvisionEmployeeRequest defines the data required to create a directory entry.
type ProvisionEmployeeRequest struct {
	ExternalUserID string  `json:"externalUserID" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	FirstName      string  `json:"firstName" binding:"required"`
	LastName       string  `json:"lastName" binding:"required"`
	Phone          *string `json:"phone"`
	JobTitle       string  `json:"jobTitle"`
	Department     *string `json:"department"`
	TimeZone       string  `json:"timeZone" binding:"required,timezone"`
}

// UpdateEmployeeRequest defines the data allowed for updating an employee.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateEmployeeRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Phone      *string `json:"phone"`
	JobTitle   *string `json:"jobTitle"`
	Department *string `json:"department"`
	TimeZone   *string `json:"timeZone" binding:"omitempty,timezone"`
	Status     *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE"`
}

// UpdatePresenceRequest defines a presence change for the calling employee.
type UpdatePresenceRequest struct {
	Presence string `json:"presence" binding:"required,oneof=ONLINE AWAY OFFLINE"`
}

// ListEmployeesParams defines query parameters for listing employees.
type ListEmployeesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// EmployeeResponse is the outward shape of a directory record.
type EmployeeResponse struct {
	EmployeeID string    `json:"employeeID"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      *string   `json:"phone,omitempty"`
	JobTitle   string    `json:"jobTitle"`
	Department *string   `json:"department,omitempty"`
	TimeZone   string    `json:"timeZone"`
	Status     string    `json:"status"`
	Presence   string    `json:"presence"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

// ToEmployeeResponse converts a domain Employee to its response DTO
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		Email:      e.Email,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Phone:      e.Phone,
		JobTitle:   e.JobTitle,
		Department: e.Department,
		TimeZone:   e.TimeZone,
		Status:     string(e.Status),
		Presence:   string(e.Presence),
		LastSeenAt: e.LastSeenAt,
	}
}

// ListEmployeesResponse wraps the list of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// ToListEmployeesResponse converts a slice of domain employees to the list DTO
func ToListEmployeesResponse(employees []domain.Employee) ListEmployeesResponse {
	out := make([]EmployeeResponse, len(employees))
	for i := range employees {
		out[i] = ToEmployeeResponse(&employees[i])
	}
	return ListEmployeesResponse{Employees: out}
}
