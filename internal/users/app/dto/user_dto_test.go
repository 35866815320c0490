package dto_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/users/app/dto"
	"userhub/internal/users/domain/entities"
	"userhub/pkg/apierrors"
	"userhub/pkg/validation"
)

func TestNewUserCreateRequest(t *testing.T) {
	t.Run("valid payload builds the request with exact values", func(t *testing.T) {
		req, err := dto.NewUserCreateRequest(map[string]any{
			"username": "alice",
			"email":    "a@x.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "a@x.com", req.Email)
	})

	t.Run("username of minimum allowed length passes", func(t *testing.T) {
		req, err := dto.NewUserCreateRequest(map[string]any{
			"username": "bob",
			"email":    "b@x.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "bob", req.Username)
	})

	t.Run("missing fields yield BadRequest listing them", func(t *testing.T) {
		req, err := dto.NewUserCreateRequest(map[string]any{})

		assert.Nil(t, req)
		apiErr, ok := apierrors.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, apiErr.Code)
		assert.Equal(t, "Missing required fields: email, username", apiErr.Message)
	})

	t.Run("violations are collected for every field, not just the first", func(t *testing.T) {
		req, err := dto.NewUserCreateRequest(map[string]any{
			"username": "ab",
			"email":    "",
		})

		assert.Nil(t, req)
		apiErr, ok := apierrors.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, apiErr.Code)
		assert.Equal(t, apierrors.ValidationMessage, apiErr.Message)

		violations, ok := apiErr.Details.([]validation.Violation)
		require.True(t, ok)
		require.Len(t, violations, 2)

		var fieldNames []string
		for _, v := range violations {
			fieldNames = append(fieldNames, v.Field)
		}
		assert.Contains(t, fieldNames, "username")
		assert.Contains(t, fieldNames, "email")
	})

	t.Run("empty username yields both username violations", func(t *testing.T) {
		_, err := dto.NewUserCreateRequest(map[string]any{
			"username": "",
			"email":    "a@x.com",
		})

		apiErr, ok := apierrors.As(err)
		require.True(t, ok)

		violations, ok := apiErr.Details.([]validation.Violation)
		require.True(t, ok)
		require.Len(t, violations, 2)
		assert.Equal(t, "username", violations[0].Field)
		assert.Equal(t, "username", violations[1].Field)
	})
}

func TestUserView(t *testing.T) {
	user := &entities.User{
		ID:        42,
		Username:  "alice",
		Email:     "a@x.com",
		IsActive:  true,
		CreatedAt: time.Date(2024, 9, 22, 15, 30, 45, 123456789, time.UTC),
	}

	t.Run("view mirrors the entity", func(t *testing.T) {
		view := dto.UserViewFromEntity(user)

		assert.Equal(t, user.ID, view.ID)
		assert.Equal(t, user.Username, view.Username)
		assert.Equal(t, user.Email, view.Email)
		assert.Equal(t, user.IsActive, view.IsActive)
		assert.Equal(t, user.CreatedAt, view.CreatedAt.Time)
	})

	t.Run("Round-trip через JSON с усечением до миллисекунд", func(t *testing.T) {
		view := dto.UserViewFromEntity(user)

		data, err := json.Marshal(view)
		require.NoError(t, err)

		var decoded dto.UserView
		require.NoError(t, json.Unmarshal(data, &decoded))

		assert.Equal(t, view.ID, decoded.ID)
		assert.Equal(t, view.Username, decoded.Username)
		assert.Equal(t, view.Email, decoded.Email)
		assert.Equal(t, view.IsActive, decoded.IsActive)
		assert.Equal(t, view.CreatedAt.Truncate(time.Millisecond), decoded.CreatedAt.Time)
	})

	t.Run("key order follows field declaration order", func(t *testing.T) {
		data, err := json.Marshal(dto.UserViewFromEntity(user))
		require.NoError(t, err)

		expected := `{"id":42,"username":"alice","email":"a@x.com","is_active":true,"created_at":"2024-09-22T15:30:45.123Z"}`
		assert.Equal(t, expected, string(data))
	})

	t.Run("empty entity list is an empty view list", func(t *testing.T) {
		views := dto.UserViewsFromEntities(nil)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})
}
