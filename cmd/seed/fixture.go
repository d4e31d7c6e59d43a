package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/service"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Fixture is the on-disk seed format. Records refer to each other by key,
// since IDs are only known after insertion.
type Fixture struct {
	Departments []DepartmentFixture `yaml:"departments"`
	Students    []StudentFixture    `yaml:"students"`
	Enrollments []EnrollmentFixture `yaml:"enrollments"`
}

type DepartmentFixture struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
	Phone    string `yaml:"phone"`
	Head     string `yaml:"head"`
}

type StudentFixture struct {
	Key         string `yaml:"key"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Email       string `yaml:"email"`
	Phone       string `yaml:"phone"`
	DateOfBirth string `yaml:"date_of_birth"`
	Address     string `yaml:"address"`
	Department  string `yaml:"department"`
}

type EnrollmentFixture struct {
	Student        string   `yaml:"student"`
	EnrollmentDate string   `yaml:"enrollment_date"`
	Grade          *float64 `yaml:"grade"`
	Status         string   `yaml:"status"`
}

// LoadFixture decodes a fixture and checks that every reference resolves.
func LoadFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	departments := make(map[string]bool, len(f.Departments))
	for _, d := range f.Departments {
		if d.Key == "" {
			return fmt.Errorf("department %q has no key", d.Name)
		}
		if departments[d.Key] {
			return fmt.Errorf("duplicate department key %q", d.Key)
		}
		departments[d.Key] = true
	}

	students := make(map[string]bool, len(f.Students))
	for _, s := range f.Students {
		if s.Department != "" && !departments[s.Department] {
			return fmt.Errorf("student %q references unknown department %q", s.Key, s.Department)
		}
		if _, err := parseDate(s.DateOfBirth); err != nil {
			return fmt.Errorf("student %q: %w", s.Key, err)
		}
		if s.Key != "" {
			if students[s.Key] {
				return fmt.Errorf("duplicate student key %q", s.Key)
			}
			students[s.Key] = true
		}
	}

	for i, e := range f.Enrollments {
		if e.Student != "" && !students[e.Student] {
			return fmt.Errorf("enrollment %d references unknown student %q", i, e.Student)
		}
		if e.Status != "" && !model.Status(e.Status).Valid() {
			return fmt.Errorf("enrollment %d has invalid status %q", i, e.Status)
		}
		if _, err := parseDate(e.EnrollmentDate); err != nil {
			return fmt.Errorf("enrollment %d: %w", i, err)
		}
	}
	return nil
}

// Seeder saves fixture records through the services, in dependency order.
type Seeder struct {
	Departments service.DepartmentService
	Students    service.StudentService
	Enrollments service.EnrollmentService
}

// Summary counts the records a seed run created.
type Summary struct {
	Departments int
	Students    int
	Enrollments int
}

func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Summary, error) {
	var sum Summary

	departmentIDs := make(map[string]int64, len(f.Departments))
	for _, d := range f.Departments {
		saved, err := s.Departments.SaveDepartment(ctx, &model.Department{
			Name:     d.Name,
			Location: d.Location,
			Phone:    d.Phone,
			Head:     d.Head,
		})
		if err != nil {
			return sum, fmt.Errorf("save department %q: %w", d.Key, err)
		}
		departmentIDs[d.Key] = saved.ID
		sum.Departments++
	}

	studentIDs := make(map[string]int64, len(f.Students))
	for _, st := range f.Students {
		dob, _ := parseDate(st.DateOfBirth)
		student := &model.Student{
			FirstName:   st.FirstName,
			LastName:    st.LastName,
			Email:       st.Email,
			Phone:       st.Phone,
			DateOfBirth: dob,
			Address:     st.Address,
		}
		if st.Department != "" {
			student.Department = &model.Department{ID: departmentIDs[st.Department]}
		}
		saved, err := s.Students.SaveStudent(ctx, student)
		if err != nil {
			return sum, fmt.Errorf("save student %q: %w", st.Key, err)
		}
		if st.Key != "" {
			studentIDs[st.Key] = saved.ID
		}
		sum.Students++
	}

	for i, e := range f.Enrollments {
		date, _ := parseDate(e.EnrollmentDate)
		enrollment := &model.Enrollment{
			EnrollmentDate: date,
			Grade:          e.Grade,
			Status:         model.Status(e.Status),
		}
		if e.Student != "" {
			id := studentIDs[e.Student]
			enrollment.StudentID = &id
		}
		if _, err := s.Enrollments.SaveEnrollment(ctx, enrollment); err != nil {
			return sum, fmt.Errorf("save enrollment %d: %w", i, err)
		}
		sum.Enrollments++
	}

	return sum, nil
}

// parseDate accepts an empty string as an absent date.
func parseDate(s string) (pgtype.Date, error) {
	if s == "" {
		return pgtype.Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return pgtype.Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}
