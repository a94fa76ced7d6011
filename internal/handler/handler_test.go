package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-tms-api/internal/model"
	"go-tms-api/pkg/apierror"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"api error", apierror.NotFound("Project", 3), http.StatusNotFound, "NOT_FOUND", "Project with ID 3 was not found."},
		{"wrapped api error", fmt.Errorf("load: %w", apierror.Unauthorized()), http.StatusUnauthorized, "UNAUTHORIZED", "You don't have access to this resource"},
		{"invalid token", model.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED", "You don't have access to this resource"},
		{"conflict sentinel", fmt.Errorf("insert: %w", model.ErrAlreadyExists), http.StatusConflict, "ALREADY_EXISTS", "Resource already exists"},
		{"unclassified", errors.New("connection reset by peer"), http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body model.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.message, body.Message)
			assert.NotContains(t, body.Details, "connection reset")
		})
	}
}

func TestDecodeJSON_BodyLimit(t *testing.T) {
	body := `{"login":"alice","password":"` + strings.Repeat("p", 256) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 64)

	var payload model.LoginRequest
	err := decodeJSON(req, &payload)

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.HTTPStatus)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", apiErr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/login/token", strings.NewReader("{"))
	err = decodeJSON(req, &payload)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
}

func TestParseExpiresIn(t *testing.T) {
	ttl, err := parseExpiresIn("")
	require.NoError(t, err)
	assert.Zero(t, ttl)

	ttl, err = parseExpiresIn("3600")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	_, err = parseExpiresIn("-1")
	require.Error(t, err)

	_, err = parseExpiresIn("soon")
	require.Error(t, err)

	ttl, err = parseExpiresIn("99999999999999999")
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestValidateBody(t *testing.T) {
	require.NoError(t, validateBody(model.LoginRequest{Login: "alice", Password: "secret"}))

	err := validateBody(model.SignupRequest{Username: "alice", Password: "short"})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	assert.Equal(t, "password: must be at least 8 characters", apiErr.Details)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://tms.example/"})

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://TMS.example")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://other.example")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}
