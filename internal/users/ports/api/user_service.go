// Package api определяет порты прикладного слоя сервиса пользователей.
package api

import (
	"context"

	"userhub/internal/users/app/dto"
)

// UserUseCase определяет основной порт для пользовательских операций.
// DeleteUser возвращает признак удаления и намеренно не превращает
// отсутствие записи в ошибку - в отличие от GetUser.
type UserUseCase interface {
	ListAllUsers(ctx context.Context) ([]dto.UserView, error)

	GetUser(ctx context.Context, id int64) (*dto.UserView, error)

	CreateUser(ctx context.Context, req *dto.UserCreateRequest) (*dto.UserView, error)

	DeleteUser(ctx context.Context, id int64) (bool, error)

	HealthCheck(ctx context.Context) error
}
