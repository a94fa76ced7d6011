package model

import (
	"errors"
	"fmt"
)

var (
	// Persistence errors
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ConflictError names the key that collided with an existing row.
// It matches ErrAlreadyExists under errors.Is.
type ConflictError struct {
	Column string
	Value  string
}

func (e *ConflictError) Error() string {
	if e.Column == "" {
		return ErrAlreadyExists.Error()
	}
	return fmt.Sprintf("%s %q already exists", e.Column, e.Value)
}

func (e *ConflictError) Unwrap() error {
	return ErrAlreadyExists
}
