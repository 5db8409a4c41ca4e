package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/events"
	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/observability"
	"github.com/noah-isme/schoolboard-api/internal/repository"
	"github.com/noah-isme/schoolboard-api/pkg/spreadsheet"
)

// MarkResult reports the row a mark landed on.
type MarkResult struct {
	ID      uint `json:"id"`
	Created bool `json:"created"`
}

// BulkResult reports how many rows a bulk update touched.
type BulkResult struct {
	Date     string                  `json:"date"`
	Status   models.AttendanceStatus `json:"status"`
	Affected int64                   `json:"affected"`
}

// AttendanceService covers the day-oriented attendance screen.
type AttendanceService interface {
	ListByDate(ctx context.Context, date string) ([]models.AttendanceView, error)
	BulkUpdate(ctx context.Context, req repository.BulkAttendanceUpdate) (BulkResult, error)
	Mark(ctx context.Context, mark repository.AttendanceMark) (MarkResult, error)
	ExportDay(ctx context.Context, date string) ([]byte, error)
}

type attendanceService struct {
	repo     repository.AttendanceRepository
	listener ChangeListener
	logger   zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo repository.AttendanceRepository, listener ChangeListener, logger zerolog.Logger) AttendanceService {
	if listener == nil {
		listener = ChangeListeners(nil)
	}
	return &attendanceService{
		repo:     repo,
		listener: listener,
		logger:   logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) ListByDate(ctx context.Context, date string) ([]models.AttendanceView, error) {
	if date == "" {
		return s.repo.List(ctx)
	}
	return s.repo.ListByDate(ctx, date)
}

func (s *attendanceService) BulkUpdate(ctx context.Context, req repository.BulkAttendanceUpdate) (BulkResult, error) {
	affected, err := s.repo.BulkUpdateStatus(ctx, req)
	if err != nil {
		return BulkResult{}, err
	}

	observability.RecordWrites().WithLabelValues(models.EntityAttendance, events.ActionBulkUpdated).Inc()
	s.listener.RecordChanged(ctx, events.RecordChange{
		Entity:   models.EntityAttendance,
		Action:   events.ActionBulkUpdated,
		Affected: affected,
	})
	s.logger.Info().Str("date", req.Date).Str("status", string(req.Status)).Int64("affected", affected).Msg("attendance bulk updated")

	return BulkResult{Date: req.Date, Status: req.Status, Affected: affected}, nil
}

func (s *attendanceService) Mark(ctx context.Context, mark repository.AttendanceMark) (MarkResult, error) {
	id, created, err := s.repo.Mark(ctx, mark)
	if err != nil {
		return MarkResult{}, err
	}

	action := events.ActionUpdated
	if created {
		action = events.ActionCreated
	}
	observability.RecordWrites().WithLabelValues(models.EntityAttendance, action).Inc()
	s.listener.RecordChanged(ctx, events.RecordChange{Entity: models.EntityAttendance, Action: action, ID: id})

	return MarkResult{ID: id, Created: created}, nil
}

var attendanceExportHeader = []string{"id", "student_id", "student_name", "class_id", "date", "status"}

func (s *attendanceService) ExportDay(ctx context.Context, date string) ([]byte, error) {
	rows, err := s.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	cells := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []interface{}{row.ID, row.StudentID, row.StudentName, row.ClassID, row.Date, string(row.Status)})
	}

	sheet := "Attendance"
	if date != "" {
		sheet = "Attendance " + date
	}
	data, err := spreadsheet.Write(sheet, attendanceExportHeader, cells)
	if err != nil {
		return nil, fmt.Errorf("export attendance: %w", err)
	}
	return data, nil
}
