package model

import "time"

// Department is an academic department. Students reference it by ID.
type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	Head      string    `json:"head"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDepartmentRequest is the payload for creating a department.
type CreateDepartmentRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=150"`
	Location string `json:"location" binding:"max=150"`
	Phone    string `json:"phone" binding:"max=30"`
	Head     string `json:"head" binding:"max=150"`
}

// UpdateDepartmentRequest is the payload for overwriting a department by ID.
type UpdateDepartmentRequest struct {
	ID int64 `json:"id" binding:"required,gt=0"`
	CreateDepartmentRequest
}
