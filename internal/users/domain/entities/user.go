// Package entities содержит доменные сущности сервиса пользователей.
package entities

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки построения сущности из строки результата.
var (
	ErrMissingRowField = errors.New("row is missing a required field")
	ErrInvalidRowField = errors.New("row field has an unexpected type")
)

// User представляет запись пользователя. ID и CreatedAt назначаются
// только хранилищем и после создания не изменяются.
type User struct {
	ID        int64
	Username  string
	Email     string
	IsActive  bool
	CreatedAt time.Time
}

// UserFromRow строит сущность из строки результата запроса.
func UserFromRow(row map[string]any) (*User, error) {
	var user User
	var err error

	if user.ID, err = int64Field(row, "id"); err != nil {
		return nil, err
	}
	if user.Username, err = stringField(row, "username"); err != nil {
		return nil, err
	}
	if user.Email, err = stringField(row, "email"); err != nil {
		return nil, err
	}
	if user.IsActive, err = boolField(row, "is_active"); err != nil {
		return nil, err
	}
	if user.CreatedAt, err = timeField(row, "created_at"); err != nil {
		return nil, err
	}

	return &user, nil
}

// UsersFromRows строит список сущностей из строк результата запроса.
func UsersFromRows(rows []map[string]any) ([]User, error) {
	users := make([]User, 0, len(rows))
	for _, row := range rows {
		user, err := UserFromRow(row)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func int64Field(row map[string]any, name string) (int64, error) {
	value, ok := row[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingRowField, name)
	}
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: %q (%T)", ErrInvalidRowField, name, value)
	}
}

func stringField(row map[string]any, name string) (string, error) {
	value, ok := row[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingRowField, name)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q (%T)", ErrInvalidRowField, name, value)
	}
	return s, nil
}

func boolField(row map[string]any, name string) (bool, error) {
	value, ok := row[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrMissingRowField, name)
	}
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q (%T)", ErrInvalidRowField, name, value)
	}
	return b, nil
}

func timeField(row map[string]any, name string) (time.Time, error) {
	value, ok := row[name]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMissingRowField, name)
	}
	t, ok := value.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q (%T)", ErrInvalidRowField, name, value)
	}
	return t, nil
}
