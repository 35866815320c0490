package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userhub/internal/users/adapters/http/middleware"
	"userhub/internal/users/app/dto"
	"userhub/pkg/apierrors"
	"userhub/pkg/logger"
)

// NewErrorHandler создает единый обработчик ошибок HTTP сервера.
// Это единственное место, где ошибки превращаются в конверт ответа:
// доменные ошибки (*apierrors.APIError) сохраняют свой код, сообщение
// и детали; протокольные (*fiber.Error) - код и сообщение; все
// остальное отдается как 500 с общим сообщением.
func NewErrorHandler() fiber.ErrorHandler {
	return func(ctx fiber.Ctx, err error) error {
		requestCtx := middleware.RequestContext(ctx)
		log := logger.Log(requestCtx)

		code := fiber.StatusInternalServerError
		message := apierrors.DefaultMessage
		var details any

		var fiberErr *fiber.Error
		switch apiErr, ok := apierrors.As(err); {
		case ok:
			code = apiErr.Code
			message = apiErr.Message
			details = apiErr.Details
			log.Error(requestCtx, "request failed with domain error",
				domainErrorFields(code, message)...)
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
			log.Error(requestCtx, "request failed with protocol error",
				zap.Int("status", code), zap.String("message", message))
		default:
			details = err.Error()
			log.Error(requestCtx, "unhandled error", zap.Error(err), zap.Stack("stack"))
		}

		resp := dto.NewErrorResponse(message, code, details)
		if err := ctx.Status(code).JSON(resp); err != nil {
			return fmt.Errorf("error sending error response: %w", err)
		}
		return nil
	}
}

// domainErrorFields добавляет трассировку стека только для доменных
// ошибок с кодом 500; остальные классифицированные ошибки логируются
// без нее.
func domainErrorFields(code int, message string) []zap.Field {
	fields := []zap.Field{
		zap.Int("status", code),
		zap.String("message", message),
	}
	if code == fiber.StatusInternalServerError {
		fields = append(fields, zap.Stack("stack"))
	}
	return fields
}
