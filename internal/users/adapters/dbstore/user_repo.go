// Package dbstore реализует репозиторий пользователей поверх
// абстракции базы данных.
package dbstore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"userhub/internal/users/domain/entities"
	"userhub/internal/users/ports/repositories"
	"userhub/pkg/dbclient"
	"userhub/pkg/logger"
)

// ErrUserReadBack сигнализирует о нарушении целостности: вставленная
// строка не найдена повторным чтением. Ошибка поднимается наверх,
// повторная попытка не выполняется.
var ErrUserReadBack = errors.New("user row missing after insert")

const (
	queryGetAllUsers = `SELECT id, username, email, is_active, created_at FROM users`

	queryGetUserByID = `SELECT id, username, email, is_active, created_at FROM users WHERE id = $1`

	queryInsertUser = `INSERT INTO users (username, email, is_active) VALUES ($1, $2, $3)`

	queryGetUserByNameEmail = `SELECT id, username, email, is_active, created_at FROM users WHERE username = $1 AND email = $2`

	queryDeleteUser = `DELETE FROM users WHERE id = $1`
)

const (
	errFetchAllUsers = "error fetching all users"
	errFetchUserByID = "error fetching user by id"
	errInsertUser    = "error creating user"
	errReadBackUser  = "error reading back created user"
	errDeleteUser    = "error deleting user"
	errMapUserRow    = "error mapping user row"
)

// UserRepository реализует repositories.UserRepository поверх
// dbclient.Client. Все запросы параметризованы; ошибки хранилища
// логируются и передаются наверх без изменений и без повторов.
type UserRepository struct {
	db dbclient.Client
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(db dbclient.Client) repositories.UserRepository {
	return &UserRepository{db: db}
}

// GetAllUsers возвращает всех пользователей в естественном порядке
// хранилища; пустой список, если пользователей нет.
func (r *UserRepository) GetAllUsers(ctx context.Context) ([]entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "GetAllUsers"))

	rows, err := r.db.FetchAll(ctx, queryGetAllUsers)
	if err != nil {
		log.Error(ctx, errFetchAllUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFetchAllUsers, err)
	}

	users, err := entities.UsersFromRows(rowMaps(rows))
	if err != nil {
		log.Error(ctx, errMapUserRow, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMapUserRow, err)
	}

	return users, nil
}

// GetUserByID возвращает пользователя по идентификатору или (nil, nil),
// если запись отсутствует. Отсутствие не является ошибкой.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "GetUserByID"))

	row, err := r.db.FetchOne(ctx, queryGetUserByID, id)
	if err != nil {
		log.Error(ctx, errFetchUserByID, zap.Error(err), zap.Int64("user_id", id))
		return nil, fmt.Errorf("%s: %w", errFetchUserByID, err)
	}
	if row == nil {
		return nil, nil
	}

	user, err := entities.UserFromRow(row)
	if err != nil {
		log.Error(ctx, errMapUserRow, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMapUserRow, err)
	}

	return user, nil
}

// CreateUser вставляет строку с is_active = true и перечитывает ее по
// паре (username, email), чтобы получить назначенные хранилищем id и
// created_at. Пустое перечитывание - ошибка целостности.
func (r *UserRepository) CreateUser(ctx context.Context, username, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "CreateUser"))

	if _, err := r.db.Execute(ctx, queryInsertUser, username, email, true); err != nil {
		log.Error(ctx, errInsertUser, zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("%s: %w", errInsertUser, err)
	}

	row, err := r.db.FetchOne(ctx, queryGetUserByNameEmail, username, email)
	if err != nil {
		log.Error(ctx, errReadBackUser, zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("%s: %w", errReadBackUser, err)
	}
	if row == nil {
		log.Error(ctx, ErrUserReadBack.Error(), zap.String("username", username), zap.String("email", email))
		return nil, fmt.Errorf("%s %q: %w", "creating user", username, ErrUserReadBack)
	}

	user, err := entities.UserFromRow(row)
	if err != nil {
		log.Error(ctx, errMapUserRow, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMapUserRow, err)
	}

	return user, nil
}

// DeleteUser удаляет пользователя и возвращает, была ли затронута
// хоть одна строка.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "DeleteUser"))

	affected, err := r.db.Execute(ctx, queryDeleteUser, id)
	if err != nil {
		log.Error(ctx, errDeleteUser, zap.Error(err), zap.Int64("user_id", id))
		return false, fmt.Errorf("%s: %w", errDeleteUser, err)
	}

	return affected > 0, nil
}

// HealthCheck проверяет доступность хранилища.
func (r *UserRepository) HealthCheck(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func rowMaps(rows []dbclient.Row) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		out[i] = row
	}
	return out
}
