package errors

import (
	"context"
	"errors"
	"net/http"
)

// statusByCode maps error codes to HTTP status codes.
var statusByCode = map[Code]int{
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidGridSize:  http.StatusBadRequest,
	ErrCodeInvalidTheme:     http.StatusUnprocessableEntity,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeThemeNotFound:    http.StatusNotFound,
	ErrCodeUnderfilledGroup: http.StatusInternalServerError,
	ErrCodeNetwork:          http.StatusBadGateway,
	ErrCodeTimeout:          http.StatusGatewayTimeout,
	ErrCodeUnsupported:      http.StatusNotImplemented,
}

// HTTPStatus returns the HTTP status code for err.
// Errors without a known code map to 500, context deadlines to 504.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if status, ok := statusByCode[GetCode(err)]; ok {
		return status
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
