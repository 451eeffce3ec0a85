package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"grid size", New(ErrCodeInvalidGridSize, MsgOddTileCount), http.StatusBadRequest},
		{"bad input", New(ErrCodeInvalidInput, "rowSize must be an integer"), http.StatusBadRequest},
		{"theme not found", New(ErrCodeThemeNotFound, "Theme 'x' not found"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", New(ErrCodeThemeNotFound, "x")), http.StatusNotFound},
		{"missing fixture", New(ErrCodeFileNotFound, "fixture"), http.StatusInternalServerError},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
