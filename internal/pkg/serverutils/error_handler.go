package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/pkg/backend"
)

// ErrorHandlerMiddleware converts errors returned by controllers into the
// response envelope. Every failure becomes dismissible portal state; nothing
// escapes as an unhandled panic or a bare 500 page.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *RequestValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ValidationErrorResponse("Validation failed", validationErr.Fields))
		}

		if apiErr, ok := backend.AsAPIError(err); ok {
			// Non-2xx from the verification backend: pass the status through
			// with the backend's detail (or the generic fallback).
			return ctx.Status(apiErr.StatusCode).
				JSON(ErrorResponse(apiErr.StatusCode, apiErr.UserMessage()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).
				JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		// Transport failures and anything unexpected: the backend is
		// unreachable as far as the user is concerned.
		log.Error("HTTP", "Unhandled request error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusBadGateway).
			JSON(ErrorResponse(fiber.StatusBadGateway, "Verification service is unreachable. Please try again."))
	}
}
