package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/service"
	"github.com/noah-isme/schoolboard-api/internal/utils"
)

// RecordService is the service surface the record handler drives.
type RecordService[T any, P any, V any] interface {
	List(ctx context.Context) ([]V, error)
	Get(ctx context.Context, id uint) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id uint, patch P) (T, error)
	Delete(ctx context.Context, id uint) error
}

// RecordHandler serves the CRUD routes of one entity.
type RecordHandler[T any, P any, V any] struct {
	service  RecordService[T, P, V]
	plural   string
	singular string
	logger   zerolog.Logger
}

// NewRecordHandler constructs a record handler. The names are used in response
// messages, for example "students retrieved" or "student created".
func NewRecordHandler[T any, P any, V any](svc RecordService[T, P, V], singular, plural string, logger zerolog.Logger) *RecordHandler[T, P, V] {
	return &RecordHandler[T, P, V]{
		service:  svc,
		plural:   plural,
		singular: singular,
		logger:   logger.With().Str("component", singular+"_handler").Logger(),
	}
}

// Register attaches the CRUD routes. PUT and PATCH both apply partial updates.
func (h *RecordHandler[T, P, V]) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *RecordHandler[T, P, V]) list(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msgf("failed to list %s", h.plural)
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list "+h.plural)
	}

	return utils.OK(c, items, h.plural+" retrieved", fiber.Map{"count": len(items)})
}

func (h *RecordHandler[T, P, V]) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	record, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, "failed to load "+h.singular)
	}

	return utils.SendSuccess(c, h.singular+" retrieved", record)
}

func (h *RecordHandler[T, P, V]) create(c *fiber.Ctx) error {
	var payload T
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return h.fail(c, err, "failed to create "+h.singular)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, h.singular+" created", record)
}

func (h *RecordHandler[T, P, V]) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var patch P
	if err := c.BodyParser(&patch); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return h.fail(c, err, "failed to update "+h.singular)
	}

	return utils.SendSuccess(c, h.singular+" updated", record)
}

func (h *RecordHandler[T, P, V]) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err, "failed to delete "+h.singular)
	}

	return utils.SendSuccess(c, h.singular+" deleted", fiber.Map{"id": id})
}

func (h *RecordHandler[T, P, V]) fail(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		return utils.SendError(c, fiber.StatusNotFound, h.singular+" not found")
	case service.IsValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}
