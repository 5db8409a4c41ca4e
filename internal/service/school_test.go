package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/events"
	"github.com/noah-isme/schoolboard-api/internal/repository"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

type school struct {
	store       store.Store
	students    repository.StudentRepository
	teachers    repository.TeacherRepository
	classes     repository.ClassRepository
	attendance  repository.AttendanceRepository
	examResults repository.ExamResultRepository
	fees        repository.FeeRepository
}

func newSchool(t *testing.T) school {
	t.Helper()
	s := store.NewMemory()
	validate := validator.New(validator.WithRequiredStructEnabled())
	return school{
		store:       s,
		students:    repository.NewStudentRepository(s, validate),
		teachers:    repository.NewTeacherRepository(s, validate),
		classes:     repository.NewClassRepository(s, validate),
		attendance:  repository.NewAttendanceRepository(s, validate),
		examResults: repository.NewExamResultRepository(s, validate),
		fees:        repository.NewFeeRepository(s, validate),
	}
}

func (s school) dashboardRepos() DashboardRepositories {
	return DashboardRepositories{
		Students:    s.students,
		Teachers:    s.teachers,
		Classes:     s.classes,
		Attendance:  s.attendance,
		ExamResults: s.examResults,
		Fees:        s.fees,
	}
}

func (s school) seedRepos() SeedRepositories {
	return SeedRepositories{
		Students:    s.students,
		Teachers:    s.teachers,
		Classes:     s.classes,
		Attendance:  s.attendance,
		ExamResults: s.examResults,
		Fees:        s.fees,
	}
}

type changeRecorder struct {
	changes []events.RecordChange
}

func (r *changeRecorder) RecordChanged(_ context.Context, change events.RecordChange) {
	r.changes = append(r.changes, change)
}

func (r *changeRecorder) actions() []string {
	actions := make([]string, 0, len(r.changes))
	for _, change := range r.changes {
		actions = append(actions, change.Entity+":"+change.Action)
	}
	return actions
}

var testLogger = zerolog.Nop()
