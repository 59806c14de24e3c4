package serverutils

import (
	"errors"

	"coursehub-be/internal/pkg/apperror"
	"coursehub-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders any error returned further down the chain
// as a BaseResponse. Unknown errors become a generic 500 and are logged.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, log, err)
	}
}

func WriteError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
	}

	status := apperror.StatusCode(err)

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", appErr.Message, map[string]interface{}{
				"path":  ctx.Path(),
				"error": appErr.Unwrap(),
			})
		}
		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
	}

	if status == fiber.StatusInternalServerError {
		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err,
		})
		return ctx.Status(status).JSON(ErrorResponse(status, "internal server error"))
	}

	// Bare sentinel.
	return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
}
