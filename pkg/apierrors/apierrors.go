// Package apierrors определяет семейство доменных ошибок, несущих
// собственный HTTP-статус, сообщение и диагностические детали.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Сообщения по умолчанию.
const (
	DefaultMessage         = "An unexpected error occurred."
	DefaultNotFoundMessage = "Resource not found."
	DefaultBadRequest      = "Bad request."
	ValidationMessage      = "Validation errors occurred."
)

// APIError - доменная ошибка уровня API.
type APIError struct {
	Code    int
	Message string
	Details any
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	return e.Message
}

// New создает доменную ошибку с произвольным статусом.
func New(code int, message string, details any) *APIError {
	if message == "" {
		message = DefaultMessage
	}
	return &APIError{Code: code, Message: message, Details: details}
}

// NewNotFound создает ошибку 404 для отсутствующего ресурса.
func NewNotFound(resource string, identifier any) *APIError {
	message := DefaultNotFoundMessage
	if resource != "" && identifier != nil {
		message = fmt.Sprintf("%s with identifier '%v' not found.", resource, identifier)
	}
	return New(http.StatusNotFound, message, nil)
}

// NewBadRequest создает ошибку 400 для некорректного запроса.
func NewBadRequest(message string, details any) *APIError {
	if message == "" {
		message = DefaultBadRequest
	}
	return New(http.StatusBadRequest, message, details)
}

// NewValidationError создает ошибку 400 со списком нарушений валидации.
func NewValidationError(details any) *APIError {
	return New(http.StatusBadRequest, ValidationMessage, details)
}

// NewUnauthorized создает ошибку 401.
func NewUnauthorized(action string) *APIError {
	message := "Unauthorized to perform this action."
	if action != "" {
		message = "Unauthorized to perform action: " + action + "."
	}
	return New(http.StatusUnauthorized, message, nil)
}

// NewForbidden создает ошибку 403.
func NewForbidden(action string) *APIError {
	message := "Action is forbidden."
	if action != "" {
		message = "Action '" + action + "' is forbidden."
	}
	return New(http.StatusForbidden, message, nil)
}

// NewConflict создает ошибку 409.
func NewConflict(resource string) *APIError {
	message := "Conflict detected."
	if resource != "" {
		message = "Conflict detected for resource: " + resource + "."
	}
	return New(http.StatusConflict, message, nil)
}

// As извлекает APIError из цепочки ошибок.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
