package service

import (
	"errors"
	"fmt"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrInvalidStatus      = errors.New("invalid enrollment status")
	ErrExportFailed       = errors.New("export generation failed")
)

// NotFoundError names the missing record. It matches its entity's
// sentinel under errors.Is.
type NotFoundError struct {
	Entity string
	ID     int64
	kind   error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return e.kind }

func departmentNotFound(id int64) error {
	return &NotFoundError{Entity: "department", ID: id, kind: ErrDepartmentNotFound}
}

func studentNotFound(id int64) error {
	return &NotFoundError{Entity: "student", ID: id, kind: ErrStudentNotFound}
}

func enrollmentNotFound(id int64) error {
	return &NotFoundError{Entity: "enrollment", ID: id, kind: ErrEnrollmentNotFound}
}
