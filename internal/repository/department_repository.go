package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/academia-backend/internal/model"
)

type DepartmentRepository interface {
	FindAll(ctx context.Context) ([]model.Department, error)
	FindByID(ctx context.Context, id int64) (*model.Department, error)
	Save(ctx context.Context, department *model.Department) error
	DeleteByID(ctx context.Context, id int64) error
}

type departmentRepository struct {
	db *pgxpool.Pool
}

func NewDepartmentRepository(db *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{db: db}
}

var departmentColumns = []string{"id", "name", "location", "phone", "head", "created_at", "updated_at"}

func selectDepartments() squirrel.SelectBuilder {
	return psql.Select(departmentColumns...).From("departments").OrderBy("id")
}

func insertDepartment(d *model.Department) squirrel.InsertBuilder {
	return psql.Insert("departments").
		Columns("name", "location", "phone", "head").
		Values(d.Name, d.Location, d.Phone, d.Head).
		Suffix("RETURNING id, created_at, updated_at")
}

func upsertDepartment(d *model.Department) squirrel.InsertBuilder {
	return psql.Insert("departments").
		Columns("id", "name", "location", "phone", "head").
		Values(d.ID, d.Name, d.Location, d.Phone, d.Head).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, location = EXCLUDED.location, phone = EXCLUDED.phone,
			    head = EXCLUDED.head, updated_at = CURRENT_TIMESTAMP
			RETURNING id, created_at, updated_at`)
}

func deleteDepartment(id int64) squirrel.DeleteBuilder {
	return psql.Delete("departments").Where(squirrel.Eq{"id": id})
}

func (r *departmentRepository) FindAll(ctx context.Context) ([]model.Department, error) {
	query, args, err := selectDepartments().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build department select: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := []model.Department{}
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Location, &d.Phone, &d.Head, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *departmentRepository) FindByID(ctx context.Context, id int64) (*model.Department, error) {
	query, args, err := selectDepartments().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build department select: %w", err)
	}

	d := &model.Department{}
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&d.ID, &d.Name, &d.Location, &d.Phone, &d.Head, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return d, nil
}

// Save inserts the department when it has no ID and overwrites the row with
// the same ID otherwise.
func (r *departmentRepository) Save(ctx context.Context, d *model.Department) error {
	if d.ID == 0 {
		query, args, err := insertDepartment(d).ToSql()
		if err != nil {
			return fmt.Errorf("build department insert: %w", err)
		}
		return translateError(r.db.QueryRow(ctx, query, args...).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt))
	}

	query, args, err := upsertDepartment(d).ToSql()
	if err != nil {
		return fmt.Errorf("build department upsert: %w", err)
	}
	return translateError(upsertWithID(ctx, r.db, "departments", d.ID, query, args, &d.ID, &d.CreatedAt, &d.UpdatedAt))
}

func (r *departmentRepository) DeleteByID(ctx context.Context, id int64) error {
	query, args, err := deleteDepartment(id).ToSql()
	if err != nil {
		return fmt.Errorf("build department delete: %w", err)
	}
	_, err = r.db.Exec(ctx, query, args...)
	return err
}
