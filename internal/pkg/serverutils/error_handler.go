package serverutils

import (
	"errors"

	"tenx-cards-be/internal/pkg/logger"
	"tenx-cards-be/internal/service"
	"tenx-cards-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// standard response envelope. Upstream AI failures are logged with full
// detail server-side but answered with generic messages; provider responses
// never reach the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(Response[map[string]string]{
				Success: false,
				Message: "Validation failed",
				Data:    validationErr.Fields,
				Code:    fiber.StatusBadRequest,
			})
		}

		var svcErr *service.Error
		if errors.As(err, &svcErr) {
			return ctx.Status(svcErr.Code).JSON(ErrorResponse(svcErr.Code, svcErr.Message))
		}

		if llmErr, ok := llm.AsError(err); ok {
			log.Error("http", "AI gateway error", map[string]interface{}{
				"kind":   llmErr.Kind.String(),
				"status": llmErr.Status,
				"error":  llmErr.Message,
				"path":   ctx.Path(),
			})
			switch llmErr.Kind {
			case llm.KindRateLimit:
				return ctx.Status(fiber.StatusTooManyRequests).
					JSON(ErrorResponse(fiber.StatusTooManyRequests, "AI service is busy, please try again later"))
			case llm.KindModelUnavailable:
				return ctx.Status(fiber.StatusBadGateway).
					JSON(ErrorResponse(fiber.StatusBadGateway, "AI service is temporarily unavailable"))
			default:
				return ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(fiber.StatusInternalServerError, "Failed to generate flashcards"))
			}
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("http", "Unhandled error", map[string]interface{}{
			"error": err.Error(),
			"path":  ctx.Path(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
