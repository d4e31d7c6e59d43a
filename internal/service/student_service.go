package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/repository"
)

type StudentService interface {
	GetAllStudents(ctx context.Context) ([]model.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*model.Student, error)
	SaveStudent(ctx context.Context, student *model.Student) (*model.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentService struct {
	studentRepo repository.StudentRepository
	log         zerolog.Logger
}

func NewStudentService(studentRepo repository.StudentRepository, log zerolog.Logger) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) GetAllStudents(ctx context.Context) ([]model.Student, error) {
	return s.studentRepo.FindAll(ctx)
}

// GetStudentByID fails with ErrStudentNotFound when the ID is unknown, the
// same contract the department and enrollment lookups follow.
func (s *studentService) GetStudentByID(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, studentNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}

// SaveStudent persists the student and re-reads it so the result carries the
// referenced department.
func (s *studentService) SaveStudent(ctx context.Context, student *model.Student) (*model.Student, error) {
	if err := s.studentRepo.Save(ctx, student); err != nil {
		if !errors.Is(err, repository.ErrInvalidReference) {
			s.log.Error().Err(err).Int64("id", student.ID).Msg("failed to save student")
		}
		return nil, err
	}
	return s.GetStudentByID(ctx, student.ID)
}

func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.studentRepo.DeleteByID(ctx, id)
}
