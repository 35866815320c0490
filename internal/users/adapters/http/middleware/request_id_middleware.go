// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"userhub/pkg/logger"
)

// HeaderRequestID - HTTP заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// RequestContextKey - ключ в Locals, под которым хранится контекст
// запроса с идентификатором и логгером.
const RequestContextKey = "requestContext"

// NewRequestIDMiddleware создает промежуточное ПО, привязывающее
// идентификатор запроса к контексту. Идентификатор берется из
// заголовка клиента или генерируется, и всегда возвращается в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		requestCtx := logger.NewRequestIDContext(ctx.Context(), requestID)
		ctx.Locals(RequestContextKey, requestCtx)
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}

// RequestContext извлекает контекст запроса из Locals; если промежуточное
// ПО не выполнялось, возвращается базовый контекст запроса.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(RequestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
