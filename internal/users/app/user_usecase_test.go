package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"userhub/internal/users/app"
	"userhub/internal/users/app/dto"
	"userhub/internal/users/domain/entities"
	"userhub/pkg/apierrors"
	"userhub/pkg/logger"
)

var errRepo = errors.New("repository failure")

// MockUserRepository - мок репозитория пользователей.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetAllUsers(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, username, email string) (*entities.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	log, err := logger.NewLogger(logger.Development, "error")
	require.NoError(t, err)

	return logger.NewContext(context.Background(), log)
}

func sampleUser(id int64, username, email string) entities.User {
	return entities.User{
		ID:        id,
		Username:  username,
		Email:     email,
		IsActive:  true,
		CreatedAt: time.Date(2024, 9, 22, 15, 30, 45, 123000000, time.UTC),
	}
}

func TestListAllUsers(t *testing.T) {
	t.Run("successfully lists users", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("GetAllUsers", ctx).Return([]entities.User{
			sampleUser(1, "alice", "alice@example.com"),
			sampleUser(2, "bob", "bob@example.com"),
		}, nil)

		usecase := app.NewUserUseCase(repo)

		views, err := usecase.ListAllUsers(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "alice", views[0].Username)
		assert.Equal(t, int64(2), views[1].ID)
		repo.AssertExpectations(t)
	})

	t.Run("empty store returns an empty list", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("GetAllUsers", ctx).Return([]entities.User{}, nil)

		usecase := app.NewUserUseCase(repo)

		views, err := usecase.ListAllUsers(ctx)
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("GetAllUsers", ctx).Return(nil, errRepo)

		usecase := app.NewUserUseCase(repo)

		views, err := usecase.ListAllUsers(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, errRepo)
		assert.Nil(t, views)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("existing user is found", func(t *testing.T) {
		ctx := testContext(t)
		user := sampleUser(42, "alice", "alice@example.com")
		repo := new(MockUserRepository)
		repo.On("GetUserByID", ctx, int64(42)).Return(&user, nil)

		usecase := app.NewUserUseCase(repo)

		view, err := usecase.GetUser(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, int64(42), view.ID)
		assert.Equal(t, "alice@example.com", view.Email)
		assert.True(t, view.IsActive)
	})

	t.Run("missing user yields NotFound", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("GetUserByID", ctx, int64(99)).Return(nil, nil)

		usecase := app.NewUserUseCase(repo)

		view, err := usecase.GetUser(ctx, 99)
		require.Error(t, err)
		assert.Nil(t, view)

		apiErr, ok := apierrors.As(err)
		require.True(t, ok)
		assert.Equal(t, 404, apiErr.Code)
		assert.Equal(t, "User with identifier '99' not found.", apiErr.Message)
	})

	t.Run("repository error is not converted to NotFound", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("GetUserByID", ctx, int64(1)).Return(nil, errRepo)

		usecase := app.NewUserUseCase(repo)

		view, err := usecase.GetUser(ctx, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errRepo)
		assert.Nil(t, view)

		_, ok := apierrors.As(err)
		assert.False(t, ok)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("successfully creates user", func(t *testing.T) {
		ctx := testContext(t)
		user := sampleUser(7, "alice", "alice@example.com")
		repo := new(MockUserRepository)
		repo.On("CreateUser", ctx, "alice", "alice@example.com").Return(&user, nil)

		usecase := app.NewUserUseCase(repo)

		view, err := usecase.CreateUser(ctx, &dto.UserCreateRequest{
			Username: "alice",
			Email:    "alice@example.com",
		})
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, int64(7), view.ID)
		assert.Equal(t, "alice", view.Username)
		repo.AssertExpectations(t)
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("CreateUser", ctx, "alice", "alice@example.com").Return(nil, errRepo)

		usecase := app.NewUserUseCase(repo)

		view, err := usecase.CreateUser(ctx, &dto.UserCreateRequest{
			Username: "alice",
			Email:    "alice@example.com",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errRepo)
		assert.Nil(t, view)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("deleting an existing user returns true", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("DeleteUser", ctx, int64(1)).Return(true, nil)

		usecase := app.NewUserUseCase(repo)

		deleted, err := usecase.DeleteUser(ctx, 1)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("deleting a missing user is not an error", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("DeleteUser", ctx, int64(99)).Return(false, nil)

		usecase := app.NewUserUseCase(repo)

		deleted, err := usecase.DeleteUser(ctx, 99)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("DeleteUser", ctx, int64(1)).Return(false, errRepo)

		usecase := app.NewUserUseCase(repo)

		deleted, err := usecase.DeleteUser(ctx, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errRepo)
		assert.False(t, deleted)
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("reachable store", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("HealthCheck", ctx).Return(nil)

		usecase := app.NewUserUseCase(repo)
		assert.NoError(t, usecase.HealthCheck(ctx))
	})

	t.Run("unreachable store", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(MockUserRepository)
		repo.On("HealthCheck", ctx).Return(errRepo)

		usecase := app.NewUserUseCase(repo)
		assert.ErrorIs(t, usecase.HealthCheck(ctx), errRepo)
	})
}
