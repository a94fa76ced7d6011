package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-tms-api/internal/model"
)

const (
	MinSigningKeyLength = 32
	DefaultTokenTTL     = 864000 * time.Second
)

type tokenClaims struct {
	Email  string `json:"email"`
	UserID string `json:"userid"`
	jwt.RegisteredClaims
}

// TokenService issues and validates stateless HS256 bearer tokens.
type TokenService struct {
	key        []byte
	issuer     string
	audience   string
	defaultTTL time.Duration
	maxTTL     time.Duration
	now        func() time.Time
}

func NewTokenService(key string, issuer string, audience string, defaultTTL time.Duration, maxTTL time.Duration) (*TokenService, error) {
	if len(key) < MinSigningKeyLength {
		return nil, fmt.Errorf("signing key must be at least %d characters long", MinSigningKeyLength)
	}
	if strings.TrimSpace(issuer) == "" || strings.TrimSpace(audience) == "" {
		return nil, errors.New("token issuer and audience are required")
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	if maxTTL < defaultTTL {
		maxTTL = defaultTTL
	}

	return &TokenService{
		key:        []byte(key),
		issuer:     issuer,
		audience:   audience,
		defaultTTL: defaultTTL,
		maxTTL:     maxTTL,
		now:        time.Now,
	}, nil
}

// SetClock replaces the time source used for issuing and validating.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

// Issue signs a token for principal. A non-positive ttl selects the default;
// ttl above the configured maximum is clamped.
func (s *TokenService) Issue(principal model.Principal, ttl time.Duration) (model.IssuedToken, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if ttl > s.maxTTL {
		ttl = s.maxTTL
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)

	claims := tokenClaims{
		Email:  principal.Email,
		UserID: principal.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principal.Username,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return model.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	return model.IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Validate checks signature, issuer, audience and expiry. Every failure is
// reported as model.ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (*model.Principal, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	return &model.Principal{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Email:    claims.Email,
		TokenID:  claims.ID,
	}, nil
}
