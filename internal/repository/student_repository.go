package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/academia-backend/internal/model"
)

type StudentRepository interface {
	FindAll(ctx context.Context) ([]model.Student, error)
	FindByID(ctx context.Context, id int64) (*model.Student, error)
	Save(ctx context.Context, student *model.Student) error
	DeleteByID(ctx context.Context, id int64) error
}

type studentRepository struct {
	db *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) StudentRepository {
	return &studentRepository{db: db}
}

var studentColumns = []string{
	"s.id", "s.first_name", "s.last_name", "s.email", "s.phone", "s.date_of_birth", "s.address",
	"s.created_at", "s.updated_at",
	"d.id", "d.name", "d.location", "d.phone", "d.head", "d.created_at", "d.updated_at",
}

func selectStudents() squirrel.SelectBuilder {
	return psql.Select(studentColumns...).
		From("students s").
		LeftJoin("departments d ON d.id = s.department_id").
		OrderBy("s.id")
}

func insertStudent(s *model.Student) squirrel.InsertBuilder {
	return psql.Insert("students").
		Columns("first_name", "last_name", "email", "phone", "date_of_birth", "address", "department_id").
		Values(s.FirstName, s.LastName, s.Email, s.Phone, s.DateOfBirth, s.Address, s.DepartmentID()).
		Suffix("RETURNING id, created_at, updated_at")
}

func upsertStudent(s *model.Student) squirrel.InsertBuilder {
	return psql.Insert("students").
		Columns("id", "first_name", "last_name", "email", "phone", "date_of_birth", "address", "department_id").
		Values(s.ID, s.FirstName, s.LastName, s.Email, s.Phone, s.DateOfBirth, s.Address, s.DepartmentID()).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, email = EXCLUDED.email,
			    phone = EXCLUDED.phone, date_of_birth = EXCLUDED.date_of_birth, address = EXCLUDED.address,
			    department_id = EXCLUDED.department_id, updated_at = CURRENT_TIMESTAMP
			RETURNING id, created_at, updated_at`)
}

func deleteStudent(id int64) squirrel.DeleteBuilder {
	return psql.Delete("students").Where(squirrel.Eq{"id": id})
}

// scanStudent reads one joined row. The department columns are all NULL when
// the student has no department.
func scanStudent(row pgx.Row) (*model.Student, error) {
	var (
		s    model.Student
		dept struct {
			ID        *int64
			Name      *string
			Location  *string
			Phone     *string
			Head      *string
			CreatedAt *time.Time
			UpdatedAt *time.Time
		}
	)
	err := row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.DateOfBirth, &s.Address,
		&s.CreatedAt, &s.UpdatedAt,
		&dept.ID, &dept.Name, &dept.Location, &dept.Phone, &dept.Head, &dept.CreatedAt, &dept.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dept.ID != nil {
		s.Department = &model.Department{
			ID:        *dept.ID,
			Name:      deref(dept.Name),
			Location:  deref(dept.Location),
			Phone:     deref(dept.Phone),
			Head:      deref(dept.Head),
			CreatedAt: derefTime(dept.CreatedAt),
			UpdatedAt: derefTime(dept.UpdatedAt),
		}
	}
	return &s, nil
}

func (r *studentRepository) FindAll(ctx context.Context) ([]model.Student, error) {
	query, args, err := selectStudents().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student select: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

func (r *studentRepository) FindByID(ctx context.Context, id int64) (*model.Student, error) {
	query, args, err := selectStudents().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student select: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return s, nil
}

// Save inserts or overwrites the student row. Only the department reference
// is written; callers re-read the student to get the joined department.
func (r *studentRepository) Save(ctx context.Context, s *model.Student) error {
	if s.ID == 0 {
		query, args, err := insertStudent(s).ToSql()
		if err != nil {
			return fmt.Errorf("build student insert: %w", err)
		}
		return translateError(r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
	}

	query, args, err := upsertStudent(s).ToSql()
	if err != nil {
		return fmt.Errorf("build student upsert: %w", err)
	}
	return translateError(upsertWithID(ctx, r.db, "students", s.ID, query, args, &s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *studentRepository) DeleteByID(ctx context.Context, id int64) error {
	query, args, err := deleteStudent(id).ToSql()
	if err != nil {
		return fmt.Errorf("build student delete: %w", err)
	}
	_, err = r.db.Exec(ctx, query, args...)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
