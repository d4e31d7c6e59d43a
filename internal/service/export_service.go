package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

const studentsSheet = "Students"

var studentExportHeaders = []string{
	"ID", "First Name", "Last Name", "Email", "Phone", "Date of Birth", "Address", "Department",
}

// ExportService renders records into downloadable spreadsheets.
type ExportService interface {
	ExportStudents(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	studentService StudentService
	log            zerolog.Logger
	now            func() time.Time
}

func NewExportService(studentService StudentService, log zerolog.Logger) ExportService {
	return &exportService{
		studentService: studentService,
		log:            log.With().Str("component", "export_service").Logger(),
		now:            time.Now,
	}
}

// ExportStudents writes every student to a single-sheet workbook and returns
// it with a dated file name.
func (s *exportService) ExportStudents(ctx context.Context) (*bytes.Buffer, string, error) {
	students, err := s.studentService.GetAllStudents(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", studentsSheet); err != nil {
		s.log.Error().Err(err).Msg("failed to name sheet")
		return nil, "", ErrExportFailed
	}

	if err := writeStudentHeader(f); err != nil {
		s.log.Error().Err(err).Msg("failed to write header")
		return nil, "", ErrExportFailed
	}

	for i, st := range students {
		row := studentExportRow(st)
		if err := f.SetSheetRow(studentsSheet, rowCell(i+2), &row); err != nil {
			s.log.Error().Err(err).Int64("student_id", st.ID).Msg("failed to write row")
			return nil, "", ErrExportFailed
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.log.Error().Err(err).Msg("failed to write workbook")
		return nil, "", ErrExportFailed
	}

	filename := fmt.Sprintf("students_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// writeStudentHeader writes the bold header row and sets column widths.
func writeStudentHeader(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	header := make([]any, len(studentExportHeaders))
	for i, h := range studentExportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(studentsSheet, "A1", &header); err != nil {
		return err
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(studentExportHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(studentsSheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(studentsSheet, "A", "A", 8); err != nil {
		return err
	}
	return f.SetColWidth(studentsSheet, "B", "H", 20)
}

// rowCell returns the first cell of a 1-based row.
func rowCell(row int) string {
	return fmt.Sprintf("A%d", row)
}

func studentExportRow(st model.Student) []any {
	dob := ""
	if st.DateOfBirth.Valid {
		dob = st.DateOfBirth.Time.Format("2006-01-02")
	}
	department := ""
	if st.Department != nil {
		department = st.Department.Name
	}
	return []any{st.ID, st.FirstName, st.LastName, st.Email, st.Phone, dob, st.Address, department}
}
