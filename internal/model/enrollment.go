package model

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Status is the lifecycle label of an enrollment. Transitions are not constrained.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusDropped   Status = "DROPPED"
	StatusFailed    Status = "FAILED"
	StatusWithdrawn Status = "WITHDRAWN"
)

// Statuses lists every accepted status in declaration order.
var Statuses = []Status{StatusActive, StatusCompleted, StatusDropped, StatusFailed, StatusWithdrawn}

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Enrollment records a student's enrollment. Grade is nil until graded.
type Enrollment struct {
	ID             int64       `json:"id"`
	EnrollmentDate pgtype.Date `json:"enrollment_date"`
	Grade          *float64    `json:"grade"`
	Status         Status      `json:"status"`
	StudentID      *int64      `json:"student_id"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// CreateEnrollmentRequest is the payload for creating an enrollment.
type CreateEnrollmentRequest struct {
	EnrollmentDate pgtype.Date `json:"enrollment_date"`
	Grade          *float64    `json:"grade"`
	Status         Status      `json:"status" binding:"omitempty,oneof=ACTIVE COMPLETED DROPPED FAILED WITHDRAWN"`
	StudentID      *int64      `json:"student_id" binding:"omitempty,gt=0"`
}

// UpdateEnrollmentRequest is the payload for overwriting an enrollment by ID.
type UpdateEnrollmentRequest struct {
	ID int64 `json:"id" binding:"required,gt=0"`
	CreateEnrollmentRequest
}

// ToEnrollment converts the request into an unsaved Enrollment.
func (r *CreateEnrollmentRequest) ToEnrollment() *Enrollment {
	return &Enrollment{
		EnrollmentDate: r.EnrollmentDate,
		Grade:          r.Grade,
		Status:         r.Status,
		StudentID:      r.StudentID,
	}
}
