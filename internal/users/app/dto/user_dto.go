// Package dto содержит объекты передачи данных сервиса пользователей:
// входящие запросы с валидацией на построении и исходящие представления.
package dto

import (
	"strings"

	"userhub/internal/users/domain/entities"
	"userhub/pkg/apierrors"
	"userhub/pkg/dttm"
	"userhub/pkg/validation"
)

// Минимальная длина имени пользователя.
const usernameMinLength = 3

// Правила валидации запроса на создание пользователя.
var userCreateRules = []validation.FieldRules{
	{Field: "username", Rules: []validation.Rule{validation.Required, validation.MinLength(usernameMinLength)}},
	{Field: "email", Rules: []validation.Rule{validation.Required}},
}

// UserCreateRequest - запрос на создание пользователя. Значение этого
// типа существует только после успешной валидации: построение и есть
// валидационный шлюз, частично проверенный запрос наружу не выходит.
type UserCreateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserCreateRequest строит запрос из разобранного тела.
// Сначала выполняется грубая проверка присутствия объявленных полей,
// затем все правила всех полей; нарушения собираются целиком.
func NewUserCreateRequest(payload map[string]any) (*UserCreateRequest, error) {
	declared := make([]string, 0, len(userCreateRules))
	for _, fr := range userCreateRules {
		declared = append(declared, fr.Field)
	}

	if missing := validation.MissingFields(declared, payload); len(missing) > 0 {
		return nil, apierrors.NewBadRequest("Missing required fields: "+strings.Join(missing, ", "), nil)
	}

	if violations := validation.Evaluate(userCreateRules, payload); len(violations) > 0 {
		return nil, apierrors.NewValidationError(violations)
	}

	username, _ := payload["username"].(string)
	email, _ := payload["email"].(string)

	return &UserCreateRequest{Username: username, Email: email}, nil
}

// UserView - транспортное представление пользователя. Отдельный тип,
// чтобы форма хранения могла меняться, не меняя форму ответа.
type UserView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt dttm.Time `json:"created_at"`
}

// UserViewFromEntity превращает доменную сущность в представление.
func UserViewFromEntity(user *entities.User) *UserView {
	return &UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: dttm.Time{Time: user.CreatedAt},
	}
}

// UserViewsFromEntities превращает список сущностей в список представлений.
func UserViewsFromEntities(users []entities.User) []UserView {
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, *UserViewFromEntity(&users[i]))
	}
	return views
}
