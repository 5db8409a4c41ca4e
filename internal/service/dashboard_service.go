package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/schoolboard-api/internal/events"
	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/repository"
)

const dashboardCachePrefix = "dashboard:summary:"

// AttendanceSummary counts the attendance rows of one day. Rate is the share
// of rows marked PRESENT or LATE, in percent.
type AttendanceSummary struct {
	Date    string  `json:"date"`
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Late    int     `json:"late"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

// FeeStatusTotal aggregates the fees sharing a status.
type FeeStatusTotal struct {
	Status models.FeeStatus `json:"status"`
	Count  int              `json:"count"`
	Amount int64            `json:"amount"`
}

// DashboardSummary is the payload of the home screen metrics.
type DashboardSummary struct {
	TotalStudents int               `json:"total_students"`
	TotalTeachers int               `json:"total_teachers"`
	TotalClasses  int               `json:"total_classes"`
	AverageMarks  float64           `json:"average_marks"`
	Attendance    AttendanceSummary `json:"attendance"`
	Fees          []FeeStatusTotal  `json:"fees"`
	GeneratedAt   time.Time         `json:"generated_at"`
}

// DashboardRepositories groups the repositories the dashboard reads from.
type DashboardRepositories struct {
	Students    repository.StudentRepository
	Teachers    repository.TeacherRepository
	Classes     repository.ClassRepository
	Attendance  repository.AttendanceRepository
	ExamResults repository.ExamResultRepository
	Fees        repository.FeeRepository
}

// DashboardService aggregates school wide metrics. It also listens for record
// changes to drop cached summaries.
type DashboardService interface {
	Summary(ctx context.Context, date string) (DashboardSummary, error)
	RecordChanged(ctx context.Context, change events.RecordChange)
}

type dashboardService struct {
	repos    DashboardRepositories
	cache    *redis.Client
	cacheTTL time.Duration
	tracer   trace.Tracer
	logger   zerolog.Logger
	now      func() time.Time
}

// NewDashboardService builds the dashboard aggregator. A nil cache disables caching.
func NewDashboardService(repos DashboardRepositories, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		repos:    repos,
		cache:    cache,
		cacheTTL: ttl,
		tracer:   otel.Tracer("github.com/noah-isme/schoolboard-api/internal/service/dashboard"),
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
		now:      time.Now,
	}
}

func (s *dashboardService) Summary(ctx context.Context, date string) (DashboardSummary, error) {
	if date == "" {
		date = s.now().Format(models.DateLayout)
	}

	ctx, span := s.tracer.Start(ctx, "dashboard.summary", trace.WithAttributes(attribute.String("dashboard.date", date)))
	defer span.End()

	cacheKey := dashboardCachePrefix + date
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var summary DashboardSummary
			if unmarshalErr := json.Unmarshal([]byte(cached), &summary); unmarshalErr == nil {
				span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
				s.logger.Debug().Str("date", date).Msg("dashboard cache hit")
				return summary, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	summary, err := s.build(ctx, date)
	if err != nil {
		span.RecordError(err)
		return DashboardSummary{}, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return summary, nil
}

func (s *dashboardService) build(ctx context.Context, date string) (DashboardSummary, error) {
	students, err := s.repos.Students.List(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	teachers, err := s.repos.Teachers.List(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	classes, err := s.repos.Classes.List(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	attendance, err := s.repos.Attendance.ListByDate(ctx, date)
	if err != nil {
		return DashboardSummary{}, err
	}
	results, err := s.repos.ExamResults.List(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	fees, err := s.repos.Fees.List(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}

	summary := DashboardSummary{
		TotalStudents: len(students),
		TotalTeachers: len(teachers),
		TotalClasses:  len(classes),
		Attendance:    summarizeAttendance(date, attendance),
		Fees:          summarizeFees(fees),
		GeneratedAt:   s.now().UTC(),
	}

	if len(results) > 0 {
		var total int
		for _, result := range results {
			total += result.Marks
		}
		summary.AverageMarks = float64(total) / float64(len(results))
	}

	return summary, nil
}

func summarizeAttendance(date string, rows []models.AttendanceView) AttendanceSummary {
	summary := AttendanceSummary{Date: date, Total: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceAbsent:
			summary.Absent++
		case models.AttendanceLate:
			summary.Late++
		}
	}
	if summary.Total > 0 {
		summary.Rate = float64(summary.Present+summary.Late) / float64(summary.Total) * 100
	}
	return summary
}

func summarizeFees(fees []models.FeeView) []FeeStatusTotal {
	totals := make([]FeeStatusTotal, 0, len(models.FeeStatuses))
	index := make(map[models.FeeStatus]int, len(models.FeeStatuses))
	for _, status := range models.FeeStatuses {
		index[status] = len(totals)
		totals = append(totals, FeeStatusTotal{Status: status})
	}
	for _, fee := range fees {
		i, ok := index[fee.Status]
		if !ok {
			continue
		}
		totals[i].Count++
		totals[i].Amount += fee.Amount
	}
	return totals
}

// RecordChanged drops every cached summary.
func (s *dashboardService) RecordChanged(ctx context.Context, change events.RecordChange) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, dashboardCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to scan dashboard cache")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Str("entity", change.Entity).Msg("failed to invalidate dashboard cache")
	}
}
