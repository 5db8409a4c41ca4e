package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/service"
	"github.com/noah-isme/schoolboard-api/internal/utils"
)

// SeedHandler exposes the sample data tooling.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("", h.seed)
}

func (h *SeedHandler) seed(c *fiber.Ctx) error {
	summary, err := h.service.Seed(c.UserContext())
	if err != nil {
		if errors.Is(err, service.ErrSeedDisabled) {
			return utils.SendError(c, fiber.StatusForbidden, "seeding disabled")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("seed operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "seed operation failed")
	}

	return utils.SendSuccess(c, "school data seeded", summary)
}
