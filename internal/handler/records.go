package handler

import (
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/service"
)

// NewStudentHandler serves /students.
func NewStudentHandler(svc *service.StudentService, logger zerolog.Logger) *RecordHandler[models.Student, models.StudentPatch, models.Student] {
	return NewRecordHandler[models.Student, models.StudentPatch, models.Student](svc, "student", "students", logger)
}

// NewTeacherHandler serves /teachers.
func NewTeacherHandler(svc *service.TeacherService, logger zerolog.Logger) *RecordHandler[models.Teacher, models.TeacherPatch, models.Teacher] {
	return NewRecordHandler[models.Teacher, models.TeacherPatch, models.Teacher](svc, "teacher", "teachers", logger)
}

// NewClassHandler serves /classes.
func NewClassHandler(svc *service.ClassService, logger zerolog.Logger) *RecordHandler[models.Class, models.ClassPatch, models.ClassView] {
	return NewRecordHandler[models.Class, models.ClassPatch, models.ClassView](svc, "class", "classes", logger)
}

// NewAttendanceRecordHandler serves the per-row /attendance routes.
func NewAttendanceRecordHandler(svc *service.AttendanceRecords, logger zerolog.Logger) *RecordHandler[models.Attendance, models.AttendancePatch, models.AttendanceView] {
	return NewRecordHandler[models.Attendance, models.AttendancePatch, models.AttendanceView](svc, "attendance", "attendance", logger)
}

// NewExamResultHandler serves /exam-results.
func NewExamResultHandler(svc *service.ExamResultService, logger zerolog.Logger) *RecordHandler[models.ExamResult, models.ExamResultPatch, models.ExamResultView] {
	return NewRecordHandler[models.ExamResult, models.ExamResultPatch, models.ExamResultView](svc, "exam_result", "exam_results", logger)
}

// NewFeeHandler serves /fees.
func NewFeeHandler(svc *service.FeeService, logger zerolog.Logger) *RecordHandler[models.Fee, models.FeePatch, models.FeeView] {
	return NewRecordHandler[models.Fee, models.FeePatch, models.FeeView](svc, "fee", "fees", logger)
}
