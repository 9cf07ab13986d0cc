package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func JSONSuccess(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(fiber.Map{"status": "ok", "data": payload})
}

func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": msg})
}

// ErrorStatus maps the domain error taxonomy to HTTP statuses.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrUnsupportedType),
		errors.Is(err, ErrDuplicateItem):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// JSONFromError renders err with its mapped status.
func JSONFromError(c *fiber.Ctx, err error) error {
	return JSONError(c, ErrorStatus(err), err.Error())
}
