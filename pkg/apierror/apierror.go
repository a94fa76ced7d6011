package apierror

import (
	"fmt"
	"net/http"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// NotFound reports that no entity of the given type has the given id.
func NotFound(entity string, id int64) *APIError {
	return New("NOT_FOUND", fmt.Sprintf("%s with ID %d was not found.", entity, id), "", http.StatusNotFound)
}

// AlreadyExists reports an identifier collision for the given entity type.
func AlreadyExists(entity string, id int64) *APIError {
	return New("ALREADY_EXISTS", fmt.Sprintf("%s with ID %d already exists.", entity, id), "", http.StatusConflict)
}

// AlreadyExistsWith reports a collision on a unique field other than the ID.
func AlreadyExistsWith(entity string, field string) *APIError {
	return New("ALREADY_EXISTS", fmt.Sprintf("%s with the same %s already exists.", entity, field), "", http.StatusConflict)
}

func Unauthorized() *APIError {
	return New("UNAUTHORIZED", "You don't have access to this resource", "", http.StatusUnauthorized)
}

func BadRequest(message string, details string) *APIError {
	return New("BAD_REQUEST", message, details, http.StatusBadRequest)
}

func PayloadTooLarge(limit int64) *APIError {
	return New("PAYLOAD_TOO_LARGE", fmt.Sprintf("request body exceeds %d bytes", limit), "", http.StatusRequestEntityTooLarge)
}
