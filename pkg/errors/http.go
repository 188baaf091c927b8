package errors

import (
	"errors"
	"net/http"
)

const genericMessage = "An unexpected error occurred"

var statusByType = map[ErrorType]int{
	ErrorTypeNotFound:            http.StatusNotFound,
	ErrorTypeInvalidRequest:      http.StatusBadRequest,
	ErrorTypeConflict:            http.StatusConflict,
	ErrorTypeUnauthorized:        http.StatusUnauthorized,
	ErrorTypeDatabaseError:       http.StatusInternalServerError,
	ErrorTypeInternalServerError: http.StatusInternalServerError,
}

func HTTPStatusCode(err error) int {
	if status, ok := statusByType[GetErrorType(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetHumanReadableMessage returns the message safe to show an API caller.
// Server-side failures always collapse to a generic message.
func GetHumanReadableMessage(err error) string {
	if HTTPStatusCode(err) >= http.StatusInternalServerError {
		return genericMessage
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return genericMessage
}
