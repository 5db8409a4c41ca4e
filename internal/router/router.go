package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/schoolboard-api/internal/config"
	"github.com/noah-isme/schoolboard-api/internal/handler"
	"github.com/noah-isme/schoolboard-api/internal/middleware"
)

// Registrar attaches a handler's routes to a group.
type Registrar interface {
	Register(router fiber.Router)
}

// Dependencies groups router dependencies for registration. Nil handlers are skipped.
type Dependencies struct {
	Students          Registrar
	Teachers          Registrar
	Classes           Registrar
	Attendance        *handler.AttendanceHandler
	AttendanceRecords Registrar
	ExamResults       Registrar
	Fees              Registrar
	Dashboard         *handler.DashboardHandler
	StudentImport     *handler.StudentImportHandler
	Seed              *handler.SeedHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = middleware.JWTProtected(cfg.JWTSecret, cfg.RolesClaim)
	}

	staff := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleTeacher)
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)

	api.Get("/me", jwtMiddleware, handler.Me)

	if deps.Dashboard != nil {
		deps.Dashboard.Register(api.Group("/dashboard", jwtMiddleware))
	}

	students := api.Group("/students", jwtMiddleware, staff)
	if deps.StudentImport != nil {
		students.Post("/import",
			adminOnly,
			middleware.RateLimit("student-import", cfg.ImportRateLimit, time.Minute),
			deps.StudentImport.Import,
		)
	}
	if deps.Students != nil {
		deps.Students.Register(students)
	}

	attendance := api.Group("/attendance", jwtMiddleware, staff)
	if deps.Attendance != nil {
		deps.Attendance.Register(attendance)
	}
	if deps.AttendanceRecords != nil {
		deps.AttendanceRecords.Register(attendance)
	}

	if deps.ExamResults != nil {
		examResults := api.Group("/exam-results", jwtMiddleware, middleware.RequireWriteRole(middleware.RoleAdmin, middleware.RoleTeacher))
		deps.ExamResults.Register(examResults)
	}

	if deps.Teachers != nil {
		deps.Teachers.Register(api.Group("/teachers", jwtMiddleware, adminOnly))
	}
	if deps.Classes != nil {
		deps.Classes.Register(api.Group("/classes", jwtMiddleware, adminOnly))
	}
	if deps.Fees != nil {
		deps.Fees.Register(api.Group("/fees", jwtMiddleware, adminOnly))
	}

	if deps.Seed != nil {
		deps.Seed.Register(api.Group("/admin/seed", jwtMiddleware, adminOnly))
	}
}
