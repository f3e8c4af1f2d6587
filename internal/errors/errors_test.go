package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "http error passes through",
			err:            NewHTTPError(http.StatusBadRequest, "custom message"),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "custom message",
		},
		{
			name:           "wrapped http error passes through",
			err:            fmt.Errorf("handler: %w", BadRequest("wrapped message")),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "wrapped message",
		},
		{
			name:           "job not found",
			err:            ErrJobNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "application not found",
			err:            ErrApplicationNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "not authorized",
			err:            ErrNotAuthorized,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "role gates map to forbidden",
			err:            ErrJobSeekerOnly,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "gorm record not found",
			err:            gorm.ErrRecordNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "duplicate key is the caller's fault",
			err:            gorm.ErrDuplicatedKey,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "duplicate field entered",
		},
		{
			name:           "wrapped duplicate key still maps",
			err:            fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "duplicate field entered",
		},
		{
			name:           "unknown errors hide details",
			err:            fmt.Errorf("dial tcp: connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, httpErr.Message)
			}
		})
	}
}
