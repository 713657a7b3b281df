package serverutils

import (
	"errors"

	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders any error returned down the chain as a BaseResponse.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, log, err)
	}
}

// WriteError maps err to a status code and structured error body.
func WriteError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	if appErr, ok := apperror.From(err); ok {
		status := apperror.HTTPStatus(appErr.Kind)
		if status >= fiber.StatusInternalServerError && log != nil {
			log.Error("HTTP", appErr.Message, map[string]interface{}{
				"error":  err.Error(),
				"kind":   string(appErr.Kind),
				"path":   ctx.Path(),
				"method": ctx.Method(),
			})
		}

		errType := appErr.Type
		if errType == "" {
			errType = string(appErr.Kind)
		}
		return ctx.Status(status).JSON(DetailedErrorResponse(status, ErrorBody{
			Message: appErr.Message,
			Type:    errType,
			Details: appErr.Details,
		}))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	if log != nil {
		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"error":  err.Error(),
			"path":   ctx.Path(),
			"method": ctx.Method(),
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(DetailedErrorResponse(fiber.StatusInternalServerError, ErrorBody{
		Message: err.Error(),
		Type:    string(apperror.KindInternal),
	}))
}
