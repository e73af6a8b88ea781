package domain

import "time"

// EmployeeStatus indicates whether an employee is an active member of the
// directory. Employees are never hard-deleted, only transitioned here.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "ACTIVE"
	EmployeeInactive EmployeeStatus = "INACTIVE"
	EmployeeOnLeave  EmployeeStatus = "ON_LEAVE"
)

// Presence is an employee's live availability state.
// It is high-frequency and last-write-wins per employee.
type Presence string

const (
	PresenceOnline  Presence = "ONLINE"
	PresenceAway    Presence = "AWAY"
	PresenceOffline Presence = "OFFLINE"
)

// Employee is the authoritative directory record of a person who can be
// scheduled or messaged. Identity is verified externally; ExternalUserID is
// the reference into that identity system.
type Employee struct {
	EmployeeID     string         `json:"employeeID"` // Primary Key (UUID)
	ExternalUserID string         `json:"externalUserID"`
	Email          string         `json:"email"` // Unique
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Phone          *string        `json:"phone,omitempty"`
	JobTitle       string         `json:"jobTitle"`
	Department     *string        `json:"department,omitempty"`
	TimeZone       string         `json:"timeZone"` // IANA name, e.g. "Europe/Berlin"
	Status         EmployeeStatus `json:"status"`
	Presence       Presence       `json:"presence"`
	LastSeenAt     time.Time      `json:"lastSeenAt"`
	AuditFields
}

// FullName returns the display name used for mention resolution.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
