package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/dailycare/internal/services"
)

// mapServiceError translates expected service-layer failures into HTTP
// errors. Anything it does not recognize bubbles up as a generic 500.
func mapServiceError(err error) error {
	var notFound *services.ProductNotFoundError
	var noStock *services.InsufficientStockError
	var badTransition *services.InvalidTransitionError

	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrUnregisteredPhone):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrOTPExpired),
		errors.Is(err, services.ErrEmptyCart):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.As(err, &noStock):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &badTransition):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return err
}
