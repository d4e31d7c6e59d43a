package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/academia-backend/internal/model"
)

type EnrollmentRepository interface {
	FindAll(ctx context.Context) ([]model.Enrollment, error)
	FindByID(ctx context.Context, id int64) (*model.Enrollment, error)
	Save(ctx context.Context, enrollment *model.Enrollment) error
	DeleteByID(ctx context.Context, id int64) error
}

type enrollmentRepository struct {
	db *pgxpool.Pool
}

func NewEnrollmentRepository(db *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

var enrollmentColumns = []string{"id", "enrollment_date", "grade", "status", "student_id", "created_at", "updated_at"}

func selectEnrollments() squirrel.SelectBuilder {
	return psql.Select(enrollmentColumns...).From("enrollments").OrderBy("id")
}

func insertEnrollment(e *model.Enrollment) squirrel.InsertBuilder {
	return psql.Insert("enrollments").
		Columns("enrollment_date", "grade", "status", "student_id").
		Values(e.EnrollmentDate, e.Grade, string(e.Status), e.StudentID).
		Suffix("RETURNING id, created_at, updated_at")
}

func upsertEnrollment(e *model.Enrollment) squirrel.InsertBuilder {
	return psql.Insert("enrollments").
		Columns("id", "enrollment_date", "grade", "status", "student_id").
		Values(e.ID, e.EnrollmentDate, e.Grade, string(e.Status), e.StudentID).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET enrollment_date = EXCLUDED.enrollment_date, grade = EXCLUDED.grade, status = EXCLUDED.status,
			    student_id = EXCLUDED.student_id, updated_at = CURRENT_TIMESTAMP
			RETURNING id, created_at, updated_at`)
}

func deleteEnrollment(id int64) squirrel.DeleteBuilder {
	return psql.Delete("enrollments").Where(squirrel.Eq{"id": id})
}

func (r *enrollmentRepository) FindAll(ctx context.Context) ([]model.Enrollment, error) {
	query, args, err := selectEnrollments().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build enrollment select: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.EnrollmentDate, &e.Grade, &e.Status, &e.StudentID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (r *enrollmentRepository) FindByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	query, args, err := selectEnrollments().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build enrollment select: %w", err)
	}

	e := &model.Enrollment{}
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&e.ID, &e.EnrollmentDate, &e.Grade, &e.Status, &e.StudentID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return e, nil
}

func (r *enrollmentRepository) Save(ctx context.Context, e *model.Enrollment) error {
	if e.ID == 0 {
		query, args, err := insertEnrollment(e).ToSql()
		if err != nil {
			return fmt.Errorf("build enrollment insert: %w", err)
		}
		return translateError(r.db.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt))
	}

	query, args, err := upsertEnrollment(e).ToSql()
	if err != nil {
		return fmt.Errorf("build enrollment upsert: %w", err)
	}
	return translateError(upsertWithID(ctx, r.db, "enrollments", e.ID, query, args, &e.ID, &e.CreatedAt, &e.UpdatedAt))
}

func (r *enrollmentRepository) DeleteByID(ctx context.Context, id int64) error {
	query, args, err := deleteEnrollment(id).ToSql()
	if err != nil {
		return fmt.Errorf("build enrollment delete: %w", err)
	}
	_, err = r.db.Exec(ctx, query, args...)
	return err
}
