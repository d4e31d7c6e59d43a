package model

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Student represents an enrolled student. Department is nil when the student
// is not attached to any department.
type Student struct {
	ID          int64       `json:"id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	DateOfBirth pgtype.Date `json:"date_of_birth"`
	Address     string      `json:"address"`
	Department  *Department `json:"department"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DepartmentID returns the referenced department ID, or nil when unassigned.
func (s *Student) DepartmentID() *int64 {
	if s.Department == nil || s.Department.ID == 0 {
		return nil
	}
	id := s.Department.ID
	return &id
}

// CreateStudentRequest is the payload for creating a student.
type CreateStudentRequest struct {
	FirstName    string      `json:"first_name" binding:"required,notblank,max=100"`
	LastName     string      `json:"last_name" binding:"required,notblank,max=100"`
	Email        string      `json:"email" binding:"omitempty,email,max=255"`
	Phone        string      `json:"phone" binding:"max=30"`
	DateOfBirth  pgtype.Date `json:"date_of_birth"`
	Address      string      `json:"address" binding:"max=500"`
	DepartmentID *int64      `json:"department_id" binding:"omitempty,gt=0"`
}

// UpdateStudentRequest is the payload for overwriting a student by ID.
type UpdateStudentRequest struct {
	ID int64 `json:"id" binding:"required,gt=0"`
	CreateStudentRequest
}

// ToStudent builds a Student carrying only the department reference.
func (r *CreateStudentRequest) ToStudent() *Student {
	s := &Student{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: r.DateOfBirth,
		Address:     r.Address,
	}
	if r.DepartmentID != nil {
		s.Department = &Department{ID: *r.DepartmentID}
	}
	return s
}
