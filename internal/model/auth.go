package model

import (
	"context"
	"strings"
	"time"
)

// Principal is the identity carried by a validated bearer token.
type Principal struct {
	UserID   string `json:"userid"`
	Username string `json:"sub"`
	Email    string `json:"email"`
	TokenID  string `json:"jti"`
}

type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type principalContextKey struct{}

func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(*Principal)
	return principal, ok && principal != nil
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Username       string  `json:"username" validate:"required,max=64"`
	Password       string  `json:"password" validate:"required,min=8,max=128"`
	FirstName      *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	MiddleName     *string `json:"middleName,omitempty" validate:"omitempty,max=100"`
	LastName       *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	ProfilePicture []byte  `json:"profilePicture,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

// ToUser maps signup data onto a new, unsaved user.
func (r SignupRequest) ToUser() User {
	return User{
		Username:       strings.TrimSpace(r.Username),
		FirstName:      r.FirstName,
		MiddleName:     r.MiddleName,
		LastName:       r.LastName,
		Email:          r.Email,
		ProfilePicture: r.ProfilePicture,
	}
}
