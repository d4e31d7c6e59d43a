package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/repository"
)

type EnrollmentService interface {
	GetAllEnrollments(ctx context.Context) ([]model.Enrollment, error)
	GetEnrollmentByID(ctx context.Context, id int64) (*model.Enrollment, error)
	SaveEnrollment(ctx context.Context, enrollment *model.Enrollment) (*model.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id int64) error
}

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	log            zerolog.Logger
}

func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, log zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		log:            log.With().Str("component", "enrollment_service").Logger(),
	}
}

func (s *enrollmentService) GetAllEnrollments(ctx context.Context) ([]model.Enrollment, error) {
	return s.enrollmentRepo.FindAll(ctx)
}

func (s *enrollmentService) GetEnrollmentByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, enrollmentNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// SaveEnrollment accepts any grade, including none. An empty status means ACTIVE.
func (s *enrollmentService) SaveEnrollment(ctx context.Context, enrollment *model.Enrollment) (*model.Enrollment, error) {
	if enrollment.Status == "" {
		enrollment.Status = model.StatusActive
	}
	if !enrollment.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, enrollment.Status)
	}

	if err := s.enrollmentRepo.Save(ctx, enrollment); err != nil {
		if !errors.Is(err, repository.ErrInvalidReference) {
			s.log.Error().Err(err).Int64("id", enrollment.ID).Msg("failed to save enrollment")
		}
		return nil, err
	}
	return enrollment, nil
}

func (s *enrollmentService) DeleteEnrollment(ctx context.Context, id int64) error {
	return s.enrollmentRepo.DeleteByID(ctx, id)
}
