package serverutils

import "github.com/gofiber/fiber/v2"

type ErrorBody struct {
	Message string                 `json:"message"`
	Type    string                 `json:"type,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// BaseResponse is the envelope of every API response.
type BaseResponse[T any] struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    T          `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
		Error:   &ErrorBody{Message: message},
	}
}

func DetailedErrorResponse(code int, body ErrorBody) BaseResponse[any] {
	return BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: body.Message,
		Error:   &body,
	}
}
