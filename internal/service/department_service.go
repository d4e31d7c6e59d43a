package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/repository"
)

type DepartmentService interface {
	GetAllDepartments(ctx context.Context) ([]model.Department, error)
	GetDepartmentByID(ctx context.Context, id int64) (*model.Department, error)
	SaveDepartment(ctx context.Context, department *model.Department) (*model.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}

type departmentService struct {
	departmentRepo repository.DepartmentRepository
	log            zerolog.Logger
}

func NewDepartmentService(departmentRepo repository.DepartmentRepository, log zerolog.Logger) DepartmentService {
	return &departmentService{
		departmentRepo: departmentRepo,
		log:            log.With().Str("component", "department_service").Logger(),
	}
}

func (s *departmentService) GetAllDepartments(ctx context.Context) ([]model.Department, error) {
	return s.departmentRepo.FindAll(ctx)
}

func (s *departmentService) GetDepartmentByID(ctx context.Context, id int64) (*model.Department, error) {
	department, err := s.departmentRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, departmentNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return department, nil
}

// SaveDepartment inserts a department without ID or overwrites the one with
// the same ID. The returned record carries the server-assigned fields.
func (s *departmentService) SaveDepartment(ctx context.Context, department *model.Department) (*model.Department, error) {
	if err := s.departmentRepo.Save(ctx, department); err != nil {
		s.log.Error().Err(err).Int64("id", department.ID).Msg("failed to save department")
		return nil, err
	}
	return department, nil
}

func (s *departmentService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departmentRepo.DeleteByID(ctx, id)
}
