package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

// AttendanceMark requests a status for one student on one date.
type AttendanceMark struct {
	StudentID uint                    `json:"student_id" validate:"required"`
	ClassID   uint                    `json:"class_id" validate:"required"`
	Date      string                  `json:"date" validate:"required,datetime=2006-01-02"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=PRESENT ABSENT LATE"`
}

// BulkAttendanceUpdate sets one status on every row of a date.
type BulkAttendanceUpdate struct {
	Date   string                  `json:"date" validate:"required,datetime=2006-01-02"`
	Status models.AttendanceStatus `json:"status" validate:"required,oneof=PRESENT ABSENT LATE"`
}

// AttendanceRepository provides access to attendance rows, listed with the
// student's name.
type AttendanceRepository interface {
	List(ctx context.Context) ([]models.AttendanceView, error)
	ListByDate(ctx context.Context, date string) ([]models.AttendanceView, error)
	GetByID(ctx context.Context, id uint) (models.Attendance, bool, error)
	Create(ctx context.Context, attendance models.Attendance) (uint, error)
	Update(ctx context.Context, id uint, patch models.AttendancePatch) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	// BulkUpdateStatus never creates rows for students missing on that date.
	BulkUpdateStatus(ctx context.Context, req BulkAttendanceUpdate) (int64, error)
	// Mark updates the first row recorded for the student on that date, or
	// creates one when none exists.
	Mark(ctx context.Context, mark AttendanceMark) (uint, bool, error)
}

type attendanceRepository struct {
	crud     crud[models.Attendance, *models.Attendance]
	store    store.Store
	students store.Table[models.Student]
}

// NewAttendanceRepository constructs an attendance repository.
func NewAttendanceRepository(s store.Store, validate *validator.Validate) AttendanceRepository {
	return &attendanceRepository{
		crud:     newCrud[models.Attendance, *models.Attendance](s.Attendance(), validate),
		store:    s,
		students: s.Students(),
	}
}

func (r *attendanceRepository) List(ctx context.Context) ([]models.AttendanceView, error) {
	return r.listWhere(ctx, func(models.Attendance) bool { return true })
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date string) ([]models.AttendanceView, error) {
	return r.listWhere(ctx, func(a models.Attendance) bool { return a.Date == date })
}

func (r *attendanceRepository) listWhere(ctx context.Context, keep func(models.Attendance) bool) ([]models.AttendanceView, error) {
	rows, err := r.crud.list(ctx)
	if err != nil {
		return nil, err
	}
	names, err := studentNames(ctx, r.students)
	if err != nil {
		return nil, err
	}

	views := make([]models.AttendanceView, 0, len(rows))
	for _, row := range rows {
		if !keep(row) {
			continue
		}
		views = append(views, models.AttendanceView{Attendance: row, StudentName: names.lookup(row.StudentID)})
	}
	return views, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id uint) (models.Attendance, bool, error) {
	return r.crud.get(ctx, id)
}

func (r *attendanceRepository) Create(ctx context.Context, attendance models.Attendance) (uint, error) {
	return r.crud.create(ctx, attendance)
}

func (r *attendanceRepository) Update(ctx context.Context, id uint, patch models.AttendancePatch) (bool, error) {
	return r.crud.update(ctx, id, patch)
}

func (r *attendanceRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.crud.delete(ctx, id)
}

func (r *attendanceRepository) BulkUpdateStatus(ctx context.Context, req BulkAttendanceUpdate) (int64, error) {
	if err := r.crud.validate.StructCtx(ctx, req); err != nil {
		return 0, err
	}
	return r.store.BulkSetAttendanceStatus(ctx, req.Date, req.Status)
}

func (r *attendanceRepository) Mark(ctx context.Context, mark AttendanceMark) (uint, bool, error) {
	if err := r.crud.validate.StructCtx(ctx, mark); err != nil {
		return 0, false, err
	}

	rows, err := r.crud.list(ctx)
	if err != nil {
		return 0, false, err
	}
	for _, row := range rows {
		if row.StudentID == mark.StudentID && row.Date == mark.Date {
			status := mark.Status
			if _, err := r.crud.update(ctx, row.ID, models.AttendancePatch{Status: &status}); err != nil {
				return 0, false, err
			}
			return row.ID, false, nil
		}
	}

	id, err := r.crud.create(ctx, models.Attendance{
		StudentID: mark.StudentID,
		ClassID:   mark.ClassID,
		Date:      mark.Date,
		Status:    mark.Status,
	})
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
