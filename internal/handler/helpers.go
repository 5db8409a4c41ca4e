package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/schoolboard-api/internal/middleware"
	"github.com/noah-isme/schoolboard-api/internal/models"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

// parseDateQuery returns the trimmed date query value. An empty value is allowed.
func parseDateQuery(c *fiber.Ctx, key string) (string, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return "", errors.New("invalid date")
	}
	return value, nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// validationDetails maps each failing field to the rule it broke.
func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		rule := fieldErr.Tag()
		if fieldErr.Param() != "" {
			rule += "=" + fieldErr.Param()
		}
		details[fieldErr.Field()] = rule
	}
	return details
}
