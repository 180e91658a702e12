package handlers

import (
	"errors"
	"strconv"

	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// respondError renders service errors with their HTTP status. Anything it
// does not recognise is logged and reported as a 500 with the fallback
// message.
func respondError(c *fiber.Ctx, log *logrus.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrMovieNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found")
	case errors.Is(err, services.ErrEntityNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Entity not found")
	case errors.Is(err, services.ErrEntityInUse):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Entity cannot be deleted because it is associated with movies.")
	case errors.Is(err, services.ErrStorageDisabled):
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Poster storage is not configured")
	}

	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error(fallback)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback)
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// queryID parses an optional id filter; an absent or empty value is 0.
func queryID(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
