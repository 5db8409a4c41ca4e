package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/service"
	"github.com/noah-isme/schoolboard-api/internal/utils"
)

// DashboardHandler serves the home screen metrics.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("", h.summary)
}

func (h *DashboardHandler) summary(c *fiber.Ctx) error {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
	}

	summary, err := h.service.Summary(c.UserContext(), date)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", summary)
}
