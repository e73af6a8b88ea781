package models

import "time"

// Employee is the employees table row.
type Employee struct {
	EmployeeID     string  `db:"employee_id"`
	ExternalUserID string  `db:"external_user_id"`
	Email          string  `db:"email"`
	FirstName      string  `db:"first_name"`
	LastName       string  `db:"last_name"`
	Phone          *string `db:"phone"`
	JobTitle       string  `db:"job_title"`
	Department     *string `db:"department"`
	TimeZone       string  `db:"time_zone"`
	Status         string  `db:"status"`
	Presence       string  `db:"presence"`
	LastSeenAt     time.Time `db:"last_seen_at"`
	AuditFields
}
