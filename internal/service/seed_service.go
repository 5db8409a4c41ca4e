package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/events"
	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/repository"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
var ErrSeedDisabled = errors.New("seeding is disabled")

const (
	seedRandomSource = 42
	seedFeeAmount    = 5000
)

var seedTeachers = []models.Teacher{
	{Name: "John Smith", Email: "john@school.com", Specialization: "Mathematics"},
	{Name: "Sarah Johnson", Email: "sarah@school.com", Specialization: "English"},
	{Name: "Michael Brown", Email: "michael@school.com", Specialization: "Science"},
}

var seedSubjects = []string{"Mathematics", "English", "Science"}

// SeedSummary counts the rows a seed run inserted.
type SeedSummary struct {
	Date        string `json:"date"`
	Teachers    int    `json:"teachers"`
	Students    int    `json:"students"`
	Classes     int    `json:"classes"`
	Attendance  int    `json:"attendance"`
	ExamResults int    `json:"exam_results"`
	Fees        int    `json:"fees"`
}

// SeedRepositories groups the repositories a seed run writes through.
type SeedRepositories struct {
	Students    repository.StudentRepository
	Teachers    repository.TeacherRepository
	Classes     repository.ClassRepository
	Attendance  repository.AttendanceRepository
	ExamResults repository.ExamResultRepository
	Fees        repository.FeeRepository
}

// SeedService fills the store with sample school data.
type SeedService interface {
	// Seed wipes the store and inserts a fresh data set.
	Seed(ctx context.Context) (SeedSummary, error)
	// SeedIfEmpty seeds only when the store holds no students.
	SeedIfEmpty(ctx context.Context) (SeedSummary, bool, error)
}

type seedService struct {
	store    store.Store
	repos    SeedRepositories
	enabled  bool
	students int
	listener ChangeListener
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSeedService constructs a seeding service that inserts the given number of students.
func NewSeedService(s store.Store, repos SeedRepositories, enabled bool, students int, listener ChangeListener, logger zerolog.Logger) SeedService {
	if students <= 0 {
		students = 100
	}
	if listener == nil {
		listener = ChangeListeners(nil)
	}
	return &seedService{
		store:    s,
		repos:    repos,
		enabled:  enabled,
		students: students,
		listener: listener,
		logger:   logger.With().Str("component", "seed_service").Logger(),
		now:      time.Now,
	}
}

func (s *seedService) SeedIfEmpty(ctx context.Context) (SeedSummary, bool, error) {
	if !s.enabled {
		return SeedSummary{}, false, ErrSeedDisabled
	}
	existing, err := s.repos.Students.List(ctx)
	if err != nil {
		return SeedSummary{}, false, err
	}
	if len(existing) > 0 {
		return SeedSummary{}, false, nil
	}
	summary, err := s.Seed(ctx)
	if err != nil {
		return SeedSummary{}, false, err
	}
	return summary, true, nil
}

func (s *seedService) Seed(ctx context.Context) (SeedSummary, error) {
	if !s.enabled {
		return SeedSummary{}, ErrSeedDisabled
	}
	if err := s.store.Reset(ctx); err != nil {
		return SeedSummary{}, fmt.Errorf("reset store: %w", err)
	}

	// The store has been wiped, so listeners hear about it even if an insert fails.
	var summary SeedSummary
	defer func() {
		s.listener.RecordChanged(ctx, events.RecordChange{
			Entity:   "all",
			Action:   events.ActionSeeded,
			Affected: int64(summary.Teachers + summary.Students + summary.Classes + summary.Attendance + summary.ExamResults + summary.Fees),
		})
	}()

	rng := rand.New(rand.NewSource(seedRandomSource))
	today := s.now()
	summary.Date = today.Format(models.DateLayout)
	daysAgo := func(max int) string {
		return today.AddDate(0, 0, -rng.Intn(max)).Format(models.DateLayout)
	}

	teacherIDs := make([]uint, 0, len(seedTeachers))
	for _, teacher := range seedTeachers {
		teacher.JoinDate = daysAgo(365)
		id, err := s.repos.Teachers.Create(ctx, teacher)
		if err != nil {
			return summary, fmt.Errorf("seed teacher: %w", err)
		}
		teacherIDs = append(teacherIDs, id)
	}
	summary.Teachers = len(teacherIDs)

	studentIDs := make([]uint, 0, s.students)
	for i := 1; i <= s.students; i++ {
		id, err := s.repos.Students.Create(ctx, models.Student{
			Name:          fmt.Sprintf("Student %d", i),
			Email:         fmt.Sprintf("student%d@school.com", i),
			Grade:         models.Grades[rng.Intn(len(models.Grades))],
			Section:       models.Sections[rng.Intn(len(models.Sections))],
			AdmissionDate: daysAgo(365),
		})
		if err != nil {
			return summary, fmt.Errorf("seed student: %w", err)
		}
		studentIDs = append(studentIDs, id)
	}
	summary.Students = len(studentIDs)

	classIDs := make([]uint, 0, len(models.Grades)*len(models.Sections)*len(seedSubjects))
	for _, grade := range models.Grades {
		for _, section := range models.Sections {
			for _, subject := range seedSubjects {
				id, err := s.repos.Classes.Create(ctx, models.Class{
					Grade:     grade,
					Section:   section,
					Subject:   subject,
					TeacherID: teacherIDs[rng.Intn(len(teacherIDs))],
				})
				if err != nil {
					return summary, fmt.Errorf("seed class: %w", err)
				}
				classIDs = append(classIDs, id)
			}
		}
	}
	summary.Classes = len(classIDs)

	dueDate := today.AddDate(0, 0, 30).Format(models.DateLayout)
	for _, studentID := range studentIDs {
		status := models.AttendancePresent
		if rng.Float64() <= 0.1 {
			status = models.AttendanceAbsent
		}
		if _, err := s.repos.Attendance.Create(ctx, models.Attendance{
			StudentID: studentID,
			ClassID:   classIDs[rng.Intn(len(classIDs))],
			Date:      summary.Date,
			Status:    status,
		}); err != nil {
			return summary, fmt.Errorf("seed attendance: %w", err)
		}
		summary.Attendance++

		if _, err := s.repos.ExamResults.Create(ctx, models.ExamResult{
			StudentID: studentID,
			ClassID:   classIDs[rng.Intn(len(classIDs))],
			ExamDate:  daysAgo(30),
			Marks:     rng.Intn(30) + 70,
		}); err != nil {
			return summary, fmt.Errorf("seed exam result: %w", err)
		}
		summary.ExamResults++

		feeStatus := models.FeePending
		if rng.Float64() > 0.3 {
			feeStatus = models.FeePaid
		}
		if _, err := s.repos.Fees.Create(ctx, models.Fee{
			StudentID: studentID,
			Amount:    seedFeeAmount,
			DueDate:   dueDate,
			Status:    feeStatus,
		}); err != nil {
			return summary, fmt.Errorf("seed fee: %w", err)
		}
		summary.Fees++
	}

	s.logger.Info().
		Int("teachers", summary.Teachers).
		Int("students", summary.Students).
		Int("classes", summary.Classes).
		Msg("school data seeded")

	return summary, nil
}
