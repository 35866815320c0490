// Package http содержит компоненты HTTP сервера сервиса пользователей.
package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userhub/internal/users/adapters/http/middleware"
	"userhub/internal/users/app/dto"
	"userhub/internal/users/ports/api"
	"userhub/pkg/logger"
)

// Константы сообщений для логирования и ответов.
const (
	LogHandlerListUsers  = "handling list users request"
	LogHandlerGetUser    = "handling get user request"
	LogHandlerCreateUser = "handling create user request"
	LogHandlerDeleteUser = "handling delete user request"
	LogHandlerHealth     = "handling health check request"

	ErrMsgInvalidUserID      = "Invalid user identifier."
	ErrMsgInvalidRequestBody = "Invalid request body."

	MsgOK       = "OK"
	MsgCreated  = "CREATED"
	MsgAccepted = "ACCEPTED"
)

// Handler обработчик HTTP-запросов для работы с пользователями.
// Обработчики не перехватывают ошибки: они возвращают их наверх,
// где единый обработчик превращает их в конверт ответа.
type Handler struct {
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика пользователей.
func NewHandler(userUseCase api.UserUseCase) *Handler {
	return &Handler{
		userUseCase: userUseCase,
	}
}

// ListUsers обрабатывает запрос на получение списка всех пользователей.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(requestCtx, LogHandlerListUsers)

	users, err := h.userUseCase.ListAllUsers(requestCtx)
	if err != nil {
		return err
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewResponse(MsgOK, fiber.StatusOK, users)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetUser обрабатывает запрос на получение пользователя по идентификатору.
func (h *Handler) GetUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetUser"))
	log.Debug(requestCtx, LogHandlerGetUser)

	userID, err := strconv.ParseInt(ctx.Params("user_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidUserID, zap.String("user_id", ctx.Params("user_id")))
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	user, err := h.userUseCase.GetUser(requestCtx, userID)
	if err != nil {
		return err
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewResponse(MsgOK, fiber.StatusOK, user)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateUser обрабатывает запрос на создание нового пользователя.
// Тело разбирается в свободную форму: проверка обязательных полей и
// правил выполняется слоем валидации, а не разбором JSON.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(requestCtx, LogHandlerCreateUser)

	payload := make(map[string]any)
	if err := ctx.Bind().Body(&payload); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	req, err := dto.NewUserCreateRequest(payload)
	if err != nil {
		return err
	}

	user, err := h.userUseCase.CreateUser(requestCtx, req)
	if err != nil {
		return err
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewResponse(MsgCreated, fiber.StatusCreated, user)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteUser обрабатывает запрос на удаление пользователя.
// Ответ всегда 202 с признаком удаления; отсутствие записи ошибкой
// не считается.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteUser"))
	log.Debug(requestCtx, LogHandlerDeleteUser)

	userID, err := strconv.ParseInt(ctx.Params("user_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidUserID, zap.String("user_id", ctx.Params("user_id")))
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	deleted, err := h.userUseCase.DeleteUser(requestCtx, userID)
	if err != nil {
		return err
	}

	if err := ctx.Status(fiber.StatusAccepted).JSON(dto.NewResponse(MsgAccepted, fiber.StatusAccepted, deleted)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Health обрабатывает запрос проверки работоспособности сервиса.
func (h *Handler) Health(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Health"))
	log.Debug(requestCtx, LogHandlerHealth)

	if err := h.userUseCase.HealthCheck(requestCtx); err != nil {
		return err
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.NewResponse(MsgOK, fiber.StatusOK, fiber.Map{"healthy": true})); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
