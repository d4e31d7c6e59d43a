package service

import (
	"context"
	"sort"
	"time"

	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/repository"
)

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	departments map[int64]model.Department
	nextID      int64
	saveErr     error
	findAllErr  error
	deleted     []int64
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{departments: make(map[int64]model.Department), nextID: 1}
}

func (m *mockDepartmentRepo) FindAll(_ context.Context) ([]model.Department, error) {
	if m.findAllErr != nil {
		return nil, m.findAllErr
	}
	result := make([]model.Department, 0, len(m.departments))
	for _, d := range m.departments {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockDepartmentRepo) FindByID(_ context.Context, id int64) (*model.Department, error) {
	d, ok := m.departments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (m *mockDepartmentRepo) Save(_ context.Context, d *model.Department) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if d.ID == 0 {
		d.ID = m.nextID
		d.CreatedAt = time.Now()
	}
	if d.ID >= m.nextID {
		m.nextID = d.ID + 1
	}
	d.UpdatedAt = time.Now()
	m.departments[d.ID] = *d
	return nil
}

func (m *mockDepartmentRepo) DeleteByID(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.departments, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students    map[int64]model.Student
	departments *mockDepartmentRepo
	nextID      int64
	saveErr     error
	findAllErr  error
}

func newMockStudentRepo(departments *mockDepartmentRepo) *mockStudentRepo {
	return &mockStudentRepo{students: make(map[int64]model.Student), departments: departments, nextID: 1}
}

func (m *mockStudentRepo) FindAll(_ context.Context) ([]model.Student, error) {
	if m.findAllErr != nil {
		return nil, m.findAllErr
	}
	result := make([]model.Student, 0, len(m.students))
	for _, s := range m.students {
		result = append(result, m.withDepartment(s))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStudentRepo) FindByID(_ context.Context, id int64) (*model.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s = m.withDepartment(s)
	return &s, nil
}

// withDepartment mimics the LEFT JOIN done by the real repository.
func (m *mockStudentRepo) withDepartment(s model.Student) model.Student {
	if s.Department == nil {
		return s
	}
	if d, ok := m.departments.departments[s.Department.ID]; ok {
		s.Department = &d
	} else {
		s.Department = nil
	}
	return s
}

func (m *mockStudentRepo) Save(_ context.Context, s *model.Student) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if ref := s.DepartmentID(); ref != nil {
		if _, ok := m.departments.departments[*ref]; !ok {
			return repository.ErrInvalidReference
		}
	}
	if s.ID == 0 {
		s.ID = m.nextID
	}
	if s.ID >= m.nextID {
		m.nextID = s.ID + 1
	}
	stored := *s
	if ref := s.DepartmentID(); ref != nil {
		stored.Department = &model.Department{ID: *ref}
	}
	m.students[s.ID] = stored
	return nil
}

func (m *mockStudentRepo) DeleteByID(_ context.Context, id int64) error {
	delete(m.students, id)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[int64]model.Enrollment
	nextID      int64
	saves       int
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[int64]model.Enrollment), nextID: 1}
}

func (m *mockEnrollmentRepo) FindAll(_ context.Context) ([]model.Enrollment, error) {
	result := make([]model.Enrollment, 0, len(m.enrollments))
	for _, e := range m.enrollments {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockEnrollmentRepo) FindByID(_ context.Context, id int64) (*model.Enrollment, error) {
	e, ok := m.enrollments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (m *mockEnrollmentRepo) Save(_ context.Context, e *model.Enrollment) error {
	m.saves++
	if e.ID == 0 {
		e.ID = m.nextID
	}
	if e.ID >= m.nextID {
		m.nextID = e.ID + 1
	}
	m.enrollments[e.ID] = *e
	return nil
}

func (m *mockEnrollmentRepo) DeleteByID(_ context.Context, id int64) error {
	delete(m.enrollments, id)
	return nil
}
