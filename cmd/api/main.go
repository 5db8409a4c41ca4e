package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/config"
	"github.com/noah-isme/schoolboard-api/internal/database"
	"github.com/noah-isme/schoolboard-api/internal/events"
	"github.com/noah-isme/schoolboard-api/internal/handler"
	"github.com/noah-isme/schoolboard-api/internal/middleware"
	"github.com/noah-isme/schoolboard-api/internal/observability"
	"github.com/noah-isme/schoolboard-api/internal/repository"
	"github.com/noah-isme/schoolboard-api/internal/router"
	"github.com/noah-isme/schoolboard-api/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.AppEnv != "production" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx := context.Background()

	dataStore, err := database.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer dataStore.Close()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to nats")
		}
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(dataStore, validate)
	teacherRepo := repository.NewTeacherRepository(dataStore, validate)
	classRepo := repository.NewClassRepository(dataStore, validate)
	attendanceRepo := repository.NewAttendanceRepository(dataStore, validate)
	examResultRepo := repository.NewExamResultRepository(dataStore, validate)
	feeRepo := repository.NewFeeRepository(dataStore, validate)

	dashboardService := service.NewDashboardService(service.DashboardRepositories{
		Students:    studentRepo,
		Teachers:    teacherRepo,
		Classes:     classRepo,
		Attendance:  attendanceRepo,
		ExamResults: examResultRepo,
		Fees:        feeRepo,
	}, redisClient, cfg.DashboardCacheTTL, logger)

	var listeners service.ChangeListeners
	listeners = append(listeners, dashboardService)
	if redisClient != nil || natsConn != nil {
		listeners = append(listeners, events.NewPublisher(redisClient, cfg.EventsChannel, natsConn, logger))
	}

	studentService := service.NewStudentService(studentRepo, listeners, logger)
	teacherService := service.NewTeacherService(teacherRepo, listeners, logger)
	classService := service.NewClassService(classRepo, listeners, logger)
	attendanceRecords := service.NewAttendanceRecords(attendanceRepo, listeners, logger)
	examResultService := service.NewExamResultService(examResultRepo, listeners, logger)
	feeService := service.NewFeeService(feeRepo, listeners, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, listeners, logger)
	importService := service.NewStudentImportService(studentService, cfg.ImportMaxSizeMB, logger)
	seedService := service.NewSeedService(dataStore, service.SeedRepositories{
		Students:    studentRepo,
		Teachers:    teacherRepo,
		Classes:     classRepo,
		Attendance:  attendanceRepo,
		ExamResults: examResultRepo,
		Fees:        feeRepo,
	}, cfg.SeedEnabled, cfg.SeedStudents, listeners, logger)

	if cfg.SeedOnStart {
		summary, seeded, err := seedService.SeedIfEmpty(ctx)
		switch {
		case err != nil:
			logger.Error().Err(err).Msg("failed to seed store on start")
		case seeded:
			logger.Info().Int("students", summary.Students).Msg("store seeded on start")
		default:
			logger.Info().Msg("store already populated, skipping seed")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.ImportMaxSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	app.Get("/metrics", observability.MetricsHandler())
	router.Register(app, cfg, router.Dependencies{
		Students:          handler.NewStudentHandler(studentService, logger),
		Teachers:          handler.NewTeacherHandler(teacherService, logger),
		Classes:           handler.NewClassHandler(classService, logger),
		Attendance:        handler.NewAttendanceHandler(attendanceService, logger),
		AttendanceRecords: handler.NewAttendanceRecordHandler(attendanceRecords, logger),
		ExamResults:       handler.NewExamResultHandler(examResultService, logger),
		Fees:              handler.NewFeeHandler(feeService, logger),
		Dashboard:         handler.NewDashboardHandler(dashboardService, logger),
		StudentImport:     handler.NewStudentImportHandler(importService, logger),
		Seed:              handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret, cfg.RolesClaim),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Str("store", cfg.StoreDriver).Msg("server started")
	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
