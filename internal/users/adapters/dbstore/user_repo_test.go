package dbstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/users/adapters/dbstore"
	"userhub/pkg/dbclient"
	"userhub/pkg/logger"
)

var errStore = errors.New("storage failure")

// fakeClient реализует dbclient.Client с заранее заданными ответами.
type fakeClient struct {
	executeAffected int64
	executeErr      error
	fetchAllRows    []dbclient.Row
	fetchAllErr     error
	fetchOneRow     dbclient.Row
	fetchOneErr     error
	pingErr         error

	executeSQL  string
	executeArgs []any
	fetchOneSQL string
	fetchAllSQL string
}

func (f *fakeClient) Connect(_ context.Context) error { return nil }
func (f *fakeClient) Close(_ context.Context) error   { return nil }
func (f *fakeClient) Ping(_ context.Context) error    { return f.pingErr }

func (f *fakeClient) Execute(_ context.Context, sql string, args ...any) (int64, error) {
	f.executeSQL = sql
	f.executeArgs = args
	return f.executeAffected, f.executeErr
}

func (f *fakeClient) FetchAll(_ context.Context, sql string, _ ...any) ([]dbclient.Row, error) {
	f.fetchAllSQL = sql
	return f.fetchAllRows, f.fetchAllErr
}

func (f *fakeClient) FetchOne(_ context.Context, sql string, _ ...any) (dbclient.Row, error) {
	f.fetchOneSQL = sql
	return f.fetchOneRow, f.fetchOneErr
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	log, err := logger.NewLogger(logger.Development, "error")
	require.NoError(t, err)

	return logger.NewContext(context.Background(), log)
}

func userRow(id int64, username, email string) dbclient.Row {
	return dbclient.Row{
		"id":         id,
		"username":   username,
		"email":      email,
		"is_active":  true,
		"created_at": time.Date(2024, 9, 22, 15, 30, 45, 0, time.UTC),
	}
}

func TestGetAllUsers(t *testing.T) {
	t.Run("успешное получение списка пользователей", func(t *testing.T) {
		client := &fakeClient{fetchAllRows: []dbclient.Row{
			userRow(1, "alice", "alice@example.com"),
			userRow(2, "bob", "bob@example.com"),
		}}
		repo := dbstore.NewUserRepository(client)

		users, err := repo.GetAllUsers(testContext(t))
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, int64(2), users[1].ID)
	})

	t.Run("пустое хранилище возвращает пустой список", func(t *testing.T) {
		repo := dbstore.NewUserRepository(&fakeClient{})

		users, err := repo.GetAllUsers(testContext(t))
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("ошибка хранилища передается наверх", func(t *testing.T) {
		repo := dbstore.NewUserRepository(&fakeClient{fetchAllErr: errStore})

		users, err := repo.GetAllUsers(testContext(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, errStore)
		assert.Nil(t, users)
	})
}

func TestGetUserByID(t *testing.T) {
	t.Run("существующий пользователь найден", func(t *testing.T) {
		client := &fakeClient{fetchOneRow: userRow(42, "alice", "alice@example.com")}
		repo := dbstore.NewUserRepository(client)

		user, err := repo.GetUserByID(testContext(t), 42)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(42), user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("отсутствующий пользователь не является ошибкой", func(t *testing.T) {
		repo := dbstore.NewUserRepository(&fakeClient{})

		user, err := repo.GetUserByID(testContext(t), 99)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("ошибка хранилища передается наверх", func(t *testing.T) {
		repo := dbstore.NewUserRepository(&fakeClient{fetchOneErr: errStore})

		user, err := repo.GetUserByID(testContext(t), 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errStore)
		assert.Nil(t, user)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("вставка и перечитывание созданного пользователя", func(t *testing.T) {
		client := &fakeClient{
			executeAffected: 1,
			fetchOneRow:     userRow(7, "alice", "alice@example.com"),
		}
		repo := dbstore.NewUserRepository(client)

		user, err := repo.CreateUser(testContext(t), "alice", "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(7), user.ID)
		assert.True(t, user.IsActive)
		assert.Equal(t, []any{"alice", "alice@example.com", true}, client.executeArgs)
	})

	t.Run("ошибка вставки передается наверх", func(t *testing.T) {
		repo := dbstore.NewUserRepository(&fakeClient{executeErr: errStore})

		user, err := repo.CreateUser(testContext(t), "alice", "alice@example.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, errStore)
		assert.Nil(t, user)
	})

	t.Run("пустое перечитывание считается нарушением целостности", func(t *testing.T) {
		client := &fakeClient{executeAffected: 1}
		repo := dbstore.NewUserRepository(client)

		user, err := repo.CreateUser(testContext(t), "alice", "alice@example.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, dbstore.ErrUserReadBack)
		assert.Nil(t, user)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("удаление существующего пользователя возвращает true", func(t *testing.T) {
		repo := dbstore.NewUserRepository(&fakeClient{executeAffected: 1})

		deleted, err := repo.DeleteUser(testContext(t), 1)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("удаление отсутствующего пользователя возвращает false", func(t *testing.T) {
		repo := dbstore.NewUserRepository(&fakeClient{executeAffected: 0})

		deleted, err := repo.DeleteUser(testContext(t), 99)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("ошибка хранилища передается наверх", func(t *testing.T) {
		repo := dbstore.NewUserRepository(&fakeClient{executeErr: errStore})

		deleted, err := repo.DeleteUser(testContext(t), 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errStore)
		assert.False(t, deleted)
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("доступное хранилище", func(t *testing.T) {
		repo := dbstore.NewUserRepository(&fakeClient{})
		assert.NoError(t, repo.HealthCheck(testContext(t)))
	})

	t.Run("недоступное хранилище", func(t *testing.T) {
		repo := dbstore.NewUserRepository(&fakeClient{pingErr: errStore})
		assert.ErrorIs(t, repo.HealthCheck(testContext(t)), errStore)
	})
}
