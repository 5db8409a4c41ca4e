package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/repository"
	"github.com/noah-isme/schoolboard-api/internal/service"
	"github.com/noah-isme/schoolboard-api/internal/utils"
	"github.com/noah-isme/schoolboard-api/pkg/spreadsheet"
)

// AttendanceHandler serves the day-oriented attendance routes.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the attendance handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches the attendance routes. It must run before the per-row
// record routes so that /bulk and /export are not read as identifiers.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/export", h.export)
	router.Put("/bulk", h.bulk)
	router.Post("/mark", h.mark)
}

func (h *AttendanceHandler) list(c *fiber.Ctx) error {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
	}

	rows, err := h.service.ListByDate(c.UserContext(), date)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list attendance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list attendance")
	}

	return utils.OK(c, rows, "attendance retrieved", fiber.Map{"count": len(rows), "date": date})
}

func (h *AttendanceHandler) bulk(c *fiber.Ctx) error {
	var payload repository.BulkAttendanceUpdate
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.BulkUpdate(c.UserContext(), payload)
	if err != nil {
		if service.IsValidationError(err) {
			return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to bulk update attendance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update attendance")
	}

	return utils.SendSuccess(c, "attendance updated", result)
}

func (h *AttendanceHandler) mark(c *fiber.Ctx) error {
	var payload repository.AttendanceMark
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Mark(c.UserContext(), payload)
	if err != nil {
		if service.IsValidationError(err) {
			return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to mark attendance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to mark attendance")
	}

	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return utils.SendSuccessWithStatus(c, status, "attendance marked", result)
}

func (h *AttendanceHandler) export(c *fiber.Ctx) error {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
	}

	data, err := h.service.ExportDay(c.UserContext(), date)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to export attendance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to export attendance")
	}

	name := "attendance.xlsx"
	if date != "" {
		name = fmt.Sprintf("attendance-%s.xlsx", date)
	}
	c.Set(fiber.HeaderContentType, spreadsheet.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}
