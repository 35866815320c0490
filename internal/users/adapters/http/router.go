package http

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"userhub/internal/users/adapters/http/middleware"
	"userhub/internal/users/ports/api"
)

// NewApp создает HTTP сервер с единым обработчиком ошибок и настроенной
// маршрутизацией.
func NewApp(userUseCase api.UserUseCase, readTimeout, writeTimeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		ErrorHandler: NewErrorHandler(),
	})

	SetupRouter(app, userUseCase)

	return app
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, userUseCase api.UserUseCase) {
	userHandler := NewHandler(userUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	apiV1.Get("/health", userHandler.Health)

	// Маршруты пользователей.
	userRoutes := apiV1.Group("/users")
	userRoutes.Get("/", userHandler.ListUsers)
	userRoutes.Post("/", userHandler.CreateUser)
	userRoutes.Get("/:user_id", userHandler.GetUser)
	userRoutes.Delete("/:user_id", userHandler.DeleteUser)

	// Обработчик для несуществующих маршрутов: та же форма конверта,
	// что и у остальных ошибок.
	app.Use(func(_ fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}
