package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go-tms-api/internal/model"
)

type tokenValidator interface {
	Validate(tokenString string) (*model.Principal, error)
}

type AuthMiddleware struct {
	validator tokenValidator
}

func NewAuthMiddleware(validator tokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token's principal in the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
			writeUnauthorized(w, "missing or invalid authorization header")
			return
		}

		token := strings.TrimSpace(header[7:])
		principal, err := m.validator.Validate(token)
		if err != nil {
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(model.WithPrincipal(r.Context(), principal)))
	})
}

func PrincipalFromContext(r *http.Request) (*model.Principal, bool) {
	return model.PrincipalFromContext(r.Context())
}

// VerifyOwner reports whether the authenticated principal is the user with
// requestedUserID. A missing principal or a non-numeric identity never matches.
func VerifyOwner(principal *model.Principal, requestedUserID int64) bool {
	if principal == nil {
		return false
	}

	userID, err := strconv.ParseInt(principal.UserID, 10, 64)
	if err != nil {
		return false
	}

	return userID == requestedUserID
}

func writeUnauthorized(w http.ResponseWriter, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Code:    "UNAUTHORIZED",
		Message: "You don't have access to this resource",
		Details: details,
	})
}
