package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/service"
	"github.com/noah-isme/schoolboard-api/internal/utils"
)

// StudentImportHandler accepts workbook uploads of students.
type StudentImportHandler struct {
	service service.StudentImportService
	logger  zerolog.Logger
}

// NewStudentImportHandler constructs the import handler.
func NewStudentImportHandler(service service.StudentImportService, logger zerolog.Logger) *StudentImportHandler {
	return &StudentImportHandler{
		service: service,
		logger:  logger.With().Str("component", "student_import_handler").Logger(),
	}
}

// Import handles a multipart upload with the workbook in the "file" field.
func (h *StudentImportHandler) Import(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}
	if file.Size > h.service.MaxBytes() {
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file too large")
	}

	handle, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read file")
	}
	defer handle.Close()

	data, err := io.ReadAll(io.LimitReader(handle, h.service.MaxBytes()+1))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read file")
	}

	report, err := h.service.Import(c.UserContext(), data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImportTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file too large")
		case errors.Is(err, service.ErrUnsupportedSpreadsheet):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "file must be an xlsx workbook")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to import students")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to import students")
		}
	}

	requestLogger(h.logger, c).Info().Int("imported", len(report.Imported)).Int("failed", len(report.Failed)).Msg("student import completed")
	return utils.OK(c, report, "students imported", fiber.Map{"imported": len(report.Imported), "failed": len(report.Failed)})
}
