package handler

import (
	"bytes"
	"context"

	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/service"
)

// ── Mock DepartmentService ──

type mockDepartmentService struct {
	departments map[int64]model.Department
	nextID      int64
	err         error
	saved       *model.Department
	deletedID   int64
}

func newMockDepartmentService() *mockDepartmentService {
	return &mockDepartmentService{departments: make(map[int64]model.Department), nextID: 1}
}

func (m *mockDepartmentService) GetAllDepartments(_ context.Context) ([]model.Department, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]model.Department, 0, len(m.departments))
	for id := int64(1); id < m.nextID; id++ {
		if d, ok := m.departments[id]; ok {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDepartmentService) GetDepartmentByID(_ context.Context, id int64) (*model.Department, error) {
	d, ok := m.departments[id]
	if !ok {
		return nil, service.ErrDepartmentNotFound
	}
	return &d, nil
}

func (m *mockDepartmentService) SaveDepartment(_ context.Context, d *model.Department) (*model.Department, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved = d
	if d.ID == 0 {
		d.ID = m.nextID
	}
	if d.ID >= m.nextID {
		m.nextID = d.ID + 1
	}
	m.departments[d.ID] = *d
	return d, nil
}

func (m *mockDepartmentService) DeleteDepartment(_ context.Context, id int64) error {
	m.deletedID = id
	delete(m.departments, id)
	return m.err
}

// ── Mock StudentService ──

type mockStudentService struct {
	students map[int64]model.Student
	err      error
	saved    *model.Student
}

func newMockStudentService() *mockStudentService {
	return &mockStudentService{students: make(map[int64]model.Student)}
}

func (m *mockStudentService) GetAllStudents(_ context.Context) ([]model.Student, error) {
	result := make([]model.Student, 0, len(m.students))
	for _, s := range m.students {
		result = append(result, s)
	}
	return result, m.err
}

func (m *mockStudentService) GetStudentByID(_ context.Context, id int64) (*model.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, service.ErrStudentNotFound
	}
	return &s, nil
}

func (m *mockStudentService) SaveStudent(_ context.Context, s *model.Student) (*model.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved = s
	if s.ID == 0 {
		s.ID = int64(len(m.students) + 1)
	}
	m.students[s.ID] = *s
	return s, nil
}

func (m *mockStudentService) DeleteStudent(_ context.Context, id int64) error {
	delete(m.students, id)
	return m.err
}

// ── Mock EnrollmentService ──

type mockEnrollmentService struct {
	enrollments map[int64]model.Enrollment
	err         error
}

func newMockEnrollmentService() *mockEnrollmentService {
	return &mockEnrollmentService{enrollments: make(map[int64]model.Enrollment)}
}

func (m *mockEnrollmentService) GetAllEnrollments(_ context.Context) ([]model.Enrollment, error) {
	result := make([]model.Enrollment, 0, len(m.enrollments))
	for _, e := range m.enrollments {
		result = append(result, e)
	}
	return result, m.err
}

func (m *mockEnrollmentService) GetEnrollmentByID(_ context.Context, id int64) (*model.Enrollment, error) {
	e, ok := m.enrollments[id]
	if !ok {
		return nil, service.ErrEnrollmentNotFound
	}
	return &e, nil
}

func (m *mockEnrollmentService) SaveEnrollment(_ context.Context, e *model.Enrollment) (*model.Enrollment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if e.Status == "" {
		e.Status = model.StatusActive
	}
	if e.ID == 0 {
		e.ID = int64(len(m.enrollments) + 1)
	}
	m.enrollments[e.ID] = *e
	return e, nil
}

func (m *mockEnrollmentService) DeleteEnrollment(_ context.Context, id int64) error {
	delete(m.enrollments, id)
	return m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	content  []byte
	filename string
	err      error
}

func (m *mockExportService) ExportStudents(_ context.Context) (*bytes.Buffer, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return bytes.NewBuffer(m.content), m.filename, nil
}
