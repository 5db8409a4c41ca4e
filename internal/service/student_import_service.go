package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/pkg/spreadsheet"
)

var (
	// ErrUnsupportedSpreadsheet indicates the upload is not an xlsx workbook.
	ErrUnsupportedSpreadsheet = errors.New("upload is not an xlsx workbook")
	// ErrImportTooLarge indicates the upload exceeds the configured size.
	ErrImportTooLarge = errors.New("file exceeds maximum allowed size")
)

// StudentImportColumns is the expected header of an import workbook.
var StudentImportColumns = []string{"name", "email", "grade", "section", "admission_date"}

// ImportRowError reports why a workbook row was not imported. Row numbers are
// one-based and count the header.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportReport summarises an import run.
type ImportReport struct {
	Imported []uint           `json:"imported"`
	Failed   []ImportRowError `json:"failed"`
}

// StudentImportService creates students from an uploaded workbook.
type StudentImportService interface {
	Import(ctx context.Context, data []byte) (ImportReport, error)
	MaxBytes() int64
}

type studentImportService struct {
	students *StudentService
	maxBytes int64
	logger   zerolog.Logger
}

// NewStudentImportService constructs the import service. Uploads above maxSizeMB are rejected.
func NewStudentImportService(students *StudentService, maxSizeMB int, logger zerolog.Logger) StudentImportService {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &studentImportService{
		students: students,
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
		logger:   logger.With().Str("component", "student_import_service").Logger(),
	}
}

func (s *studentImportService) MaxBytes() int64 { return s.maxBytes }

// Import creates one student per data row. Invalid rows are reported and do not
// stop the run; storage failures abort it.
func (s *studentImportService) Import(ctx context.Context, data []byte) (ImportReport, error) {
	if int64(len(data)) > s.maxBytes {
		return ImportReport{}, ErrImportTooLarge
	}
	// Some writers order zip entries so that sniffing stops at the container.
	mime := mimetype.Detect(data)
	if !mime.Is(spreadsheet.ContentType) && !mime.Is("application/zip") {
		return ImportReport{}, ErrUnsupportedSpreadsheet
	}

	rows, err := spreadsheet.ReadRows(bytes.NewReader(data))
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: %v", ErrUnsupportedSpreadsheet, err)
	}

	report := ImportReport{Imported: []uint{}, Failed: []ImportRowError{}}
	for i, row := range rows {
		if i == 0 || blankRow(row) {
			continue
		}

		student := models.Student{
			Name:          cell(row, 0),
			Email:         cell(row, 1),
			Grade:         models.Grade(cell(row, 2)),
			Section:       models.Section(strings.ToUpper(cell(row, 3))),
			AdmissionDate: cell(row, 4),
		}

		created, err := s.students.Create(ctx, student)
		if err != nil {
			if IsValidationError(err) {
				report.Failed = append(report.Failed, ImportRowError{Row: i + 1, Message: err.Error()})
				continue
			}
			return report, err
		}
		report.Imported = append(report.Imported, created.ID)
	}

	s.logger.Info().Int("imported", len(report.Imported)).Int("failed", len(report.Failed)).Msg("students imported")
	return report, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
