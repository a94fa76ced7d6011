package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageTemplates(t *testing.T) {
	t.Parallel()

	notFound := NotFound("Project", 42)
	require.Equal(t, "Project with ID 42 was not found.", notFound.Message)
	require.Equal(t, http.StatusNotFound, notFound.HTTPStatus)
	require.Equal(t, "NOT_FOUND", notFound.Code)

	exists := AlreadyExists("Translation", 7)
	require.Equal(t, "Translation with ID 7 already exists.", exists.Message)
	require.Equal(t, http.StatusConflict, exists.HTTPStatus)

	unique := AlreadyExistsWith("Language", "code")
	require.Equal(t, "Language with the same code already exists.", unique.Message)
	require.Equal(t, http.StatusConflict, unique.HTTPStatus)

	tooLarge := PayloadTooLarge(1024)
	require.Equal(t, http.StatusRequestEntityTooLarge, tooLarge.HTTPStatus)
	require.Equal(t, "PAYLOAD_TOO_LARGE", tooLarge.Code)

	unauthorized := Unauthorized()
	require.Equal(t, http.StatusUnauthorized, unauthorized.HTTPStatus)
}

func TestErrorFormattingAndUnwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("create project: %w", BadRequest("invalid JSON body", "name"))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "BAD_REQUEST: invalid JSON body (name)", apiErr.Error())

	var nilErr *APIError
	require.Equal(t, "", nilErr.Error())
}
