// Package repositories определяет порты доступа к данным сервиса
// пользователей.
package repositories

import (
	"context"

	"userhub/internal/users/domain/entities"
)

// UserRepository определяет интерфейс операций над записями
// пользователей. GetUserByID возвращает (nil, nil) для отсутствующей
// записи: на этой границе отсутствие - обычный результат, а не ошибка;
// в доменную ошибку его превращает только сервисный слой.
type UserRepository interface {
	GetAllUsers(ctx context.Context) ([]entities.User, error)

	GetUserByID(ctx context.Context, id int64) (*entities.User, error)

	CreateUser(ctx context.Context, username, email string) (*entities.User, error)

	DeleteUser(ctx context.Context, id int64) (bool, error)

	HealthCheck(ctx context.Context) error
}
