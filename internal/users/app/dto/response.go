package dto

import (
	"userhub/pkg/dttm"
)

// Response - единый конверт успешного ответа. Порядок ключей в JSON
// повторяет порядок объявления полей.
type Response struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

// ErrorResponse расширяет конверт диагностическими деталями;
// пустые детали в ответ не попадают.
type ErrorResponse struct {
	Response
	Details any `json:"details,omitempty"`
}

// NewResponse собирает конверт успешного ответа. Функция чистая:
// payload не инспектируется, только сериализуется.
func NewResponse(message string, status int, data any) Response {
	return Response{
		Timestamp: dttm.NowLocal(),
		Status:    status,
		Message:   message,
		Data:      data,
	}
}

// NewErrorResponse собирает конверт ответа с ошибкой.
func NewErrorResponse(message string, status int, details any) ErrorResponse {
	return ErrorResponse{
		Response: Response{
			Timestamp: dttm.NowLocal(),
			Status:    status,
			Message:   message,
			Data:      nil,
		},
		Details: details,
	}
}
