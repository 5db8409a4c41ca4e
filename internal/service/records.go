package service

import (
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/repository"
)

// Record services for each entity.
type (
	StudentService    = RecordService[models.Student, models.StudentPatch, models.Student]
	TeacherService    = RecordService[models.Teacher, models.TeacherPatch, models.Teacher]
	ClassService      = RecordService[models.Class, models.ClassPatch, models.ClassView]
	AttendanceRecords = RecordService[models.Attendance, models.AttendancePatch, models.AttendanceView]
	ExamResultService = RecordService[models.ExamResult, models.ExamResultPatch, models.ExamResultView]
	FeeService        = RecordService[models.Fee, models.FeePatch, models.FeeView]
)

// NewStudentService constructs the student record service.
func NewStudentService(repo repository.StudentRepository, listener ChangeListener, logger zerolog.Logger) *StudentService {
	cleaner := newTextCleaner()
	svc := newRecordService[models.Student, models.StudentPatch, models.Student](models.EntityStudent, repo, listener, logger)
	svc.clean = func(s *models.Student) {
		cleaner.textPtr(&s.Name)
		cleaner.emailPtr(&s.Email)
	}
	svc.cleanPatch = func(p *models.StudentPatch) {
		cleaner.textPtr(p.Name)
		cleaner.emailPtr(p.Email)
	}
	return svc
}

// NewTeacherService constructs the teacher record service.
func NewTeacherService(repo repository.TeacherRepository, listener ChangeListener, logger zerolog.Logger) *TeacherService {
	cleaner := newTextCleaner()
	svc := newRecordService[models.Teacher, models.TeacherPatch, models.Teacher](models.EntityTeacher, repo, listener, logger)
	svc.clean = func(t *models.Teacher) {
		cleaner.textPtr(&t.Name)
		cleaner.emailPtr(&t.Email)
		cleaner.textPtr(&t.Specialization)
	}
	svc.cleanPatch = func(p *models.TeacherPatch) {
		cleaner.textPtr(p.Name)
		cleaner.emailPtr(p.Email)
		cleaner.textPtr(p.Specialization)
	}
	return svc
}

// NewClassService constructs the class record service.
func NewClassService(repo repository.ClassRepository, listener ChangeListener, logger zerolog.Logger) *ClassService {
	cleaner := newTextCleaner()
	svc := newRecordService[models.Class, models.ClassPatch, models.ClassView](models.EntityClass, repo, listener, logger)
	svc.clean = func(c *models.Class) { cleaner.textPtr(&c.Subject) }
	svc.cleanPatch = func(p *models.ClassPatch) { cleaner.textPtr(p.Subject) }
	return svc
}

// NewAttendanceRecords constructs the attendance record service.
func NewAttendanceRecords(repo repository.AttendanceRepository, listener ChangeListener, logger zerolog.Logger) *AttendanceRecords {
	return newRecordService[models.Attendance, models.AttendancePatch, models.AttendanceView](models.EntityAttendance, repo, listener, logger)
}

// NewExamResultService constructs the exam result record service.
func NewExamResultService(repo repository.ExamResultRepository, listener ChangeListener, logger zerolog.Logger) *ExamResultService {
	return newRecordService[models.ExamResult, models.ExamResultPatch, models.ExamResultView](models.EntityExamResult, repo, listener, logger)
}

// NewFeeService constructs the fee record service.
func NewFeeService(repo repository.FeeRepository, listener ChangeListener, logger zerolog.Logger) *FeeService {
	return newRecordService[models.Fee, models.FeePatch, models.FeeView](models.EntityFee, repo, listener, logger)
}
