package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schoolboard-api/internal/repository"
	"github.com/noah-isme/schoolboard-api/internal/service"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

type testServices struct {
	store      store.Store
	students   *service.StudentService
	classes    *service.ClassService
	attendance service.AttendanceService
	records    *service.AttendanceRecords
	imports    service.StudentImportService
	seed       service.SeedService
	dashboard  service.DashboardService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	s := store.NewMemory()
	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.Nop()

	studentRepo := repository.NewStudentRepository(s, validate)
	teacherRepo := repository.NewTeacherRepository(s, validate)
	classRepo := repository.NewClassRepository(s, validate)
	attendanceRepo := repository.NewAttendanceRepository(s, validate)
	examResultRepo := repository.NewExamResultRepository(s, validate)
	feeRepo := repository.NewFeeRepository(s, validate)

	students := service.NewStudentService(studentRepo, nil, logger)
	return testServices{
		store:      s,
		students:   students,
		classes:    service.NewClassService(classRepo, nil, logger),
		attendance: service.NewAttendanceService(attendanceRepo, nil, logger),
		records:    service.NewAttendanceRecords(attendanceRepo, nil, logger),
		imports:    service.NewStudentImportService(students, 1, logger),
		seed: service.NewSeedService(s, service.SeedRepositories{
			Students:    studentRepo,
			Teachers:    teacherRepo,
			Classes:     classRepo,
			Attendance:  attendanceRepo,
			ExamResults: examResultRepo,
			Fees:        feeRepo,
		}, true, 5, nil, logger),
		dashboard: service.NewDashboardService(service.DashboardRepositories{
			Students:    studentRepo,
			Teachers:    teacherRepo,
			Classes:     classRepo,
			Attendance:  attendanceRepo,
			ExamResults: examResultRepo,
			Fees:        feeRepo,
		}, nil, 0, logger),
	}
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    map[string]any    `json:"meta"`
	Details map[string]string `json:"details"`
}

func jsonRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var env envelope
	decodeResponse(t, resp, &env)
	return resp, env
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
