// Package app реализует прикладной слой сервиса пользователей.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"userhub/internal/users/app/dto"
	"userhub/internal/users/ports/api"
	"userhub/internal/users/ports/repositories"
	"userhub/pkg/apierrors"
	"userhub/pkg/logger"
)

// Имя ресурса для сообщений об отсутствии.
const resourceUser = "User"

const (
	methodListAllUsers = "ListAllUsers"
	methodGetUser      = "GetUser"
	methodCreateUser   = "CreateUser"
	methodDeleteUser   = "DeleteUser"

	msgListingUsers  = "listing all users"
	msgUserListed    = "users successfully listed"
	msgFetchingUser  = "fetching user"
	msgUserNotFound  = "user not found"
	msgUserFetched   = "user successfully fetched"
	msgCreatingUser  = "creating user"
	msgUserCreated   = "user successfully created"
	msgDeletingUser  = "deleting user"
	msgUserDeleted   = "user delete finished"
	msgErrRepository = "repository call failed"

	errCtxListingUsers = "listing users"
	errCtxFetchingUser = "fetching user"
	errCtxCreatingUser = "creating user"
	errCtxDeletingUser = "deleting user"
)

// UserUseCaseImpl реализует интерфейс api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает новый экземпляр сервиса пользователей.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
	}
}

// ListAllUsers возвращает представления всех пользователей.
func (u *UserUseCaseImpl) ListAllUsers(ctx context.Context) ([]dto.UserView, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListAllUsers))
	log.Debug(ctx, msgListingUsers)

	users, err := u.userRepo.GetAllUsers(ctx)
	if err != nil {
		log.Error(ctx, msgErrRepository, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}

	log.Info(ctx, msgUserListed, zap.Int("count", len(users)))
	return dto.UserViewsFromEntities(users), nil
}

// GetUser возвращает представление пользователя по идентификатору.
// Отсутствие записи превращается здесь в доменную ошибку NotFound.
func (u *UserUseCaseImpl) GetUser(ctx context.Context, id int64) (*dto.UserView, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUser), zap.Int64("user_id", id))
	log.Debug(ctx, msgFetchingUser)

	user, err := u.userRepo.GetUserByID(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrRepository, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}

	if user == nil {
		log.Debug(ctx, msgUserNotFound)
		return nil, apierrors.NewNotFound(resourceUser, id)
	}

	log.Info(ctx, msgUserFetched)
	return dto.UserViewFromEntity(user), nil
}

// CreateUser создает пользователя и возвращает его представление.
func (u *UserUseCaseImpl) CreateUser(ctx context.Context, req *dto.UserCreateRequest) (*dto.UserView, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser), zap.String("username", req.Username))
	log.Debug(ctx, msgCreatingUser)

	user, err := u.userRepo.CreateUser(ctx, req.Username, req.Email)
	if err != nil {
		log.Error(ctx, msgErrRepository, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int64("user_id", user.ID))
	return dto.UserViewFromEntity(user), nil
}

// DeleteUser удаляет пользователя и возвращает признак удаления.
// Отсутствие записи здесь не ошибка - асимметрия с GetUser намеренная.
func (u *UserUseCaseImpl) DeleteUser(ctx context.Context, id int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.Int64("user_id", id))
	log.Debug(ctx, msgDeletingUser)

	deleted, err := u.userRepo.DeleteUser(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrRepository, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	log.Info(ctx, msgUserDeleted, zap.Bool("deleted", deleted))
	return deleted, nil
}

// HealthCheck проверяет доступность хранилища.
func (u *UserUseCaseImpl) HealthCheck(ctx context.Context) error {
	return u.userRepo.HealthCheck(ctx)
}
