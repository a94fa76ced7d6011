package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-tms-api/internal/model"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	tokens, err := NewTokenService(testSigningKey, "tms-api", "tms-frontend", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return tokens
}

func testPrincipal() model.Principal {
	return model.Principal{UserID: "42", Username: "alice", Email: "alice@example.com"}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	tokens := newTestTokenService(t)

	issued, err := tokens.Issue(testPrincipal(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)

	principal, err := tokens.Validate(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "42", principal.UserID)
	assert.Equal(t, "alice", principal.Username)
	assert.Equal(t, "alice@example.com", principal.Email)
	assert.NotEmpty(t, principal.TokenID)
}

func TestTokenService_ClaimsCarryIssuerAndAudience(t *testing.T) {
	tokens := newTestTokenService(t)

	issued, err := tokens.Issue(testPrincipal(), time.Minute)
	require.NoError(t, err)

	var claims tokenClaims
	_, _, err = jwt.NewParser().ParseUnverified(issued.Token, &claims)
	require.NoError(t, err)

	assert.Equal(t, "tms-api", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"tms-frontend"}, claims.Audience)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenService_TTLDefaultAndClamp(t *testing.T) {
	tokens := newTestTokenService(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens.SetClock(func() time.Time { return now })

	issued, err := tokens.Issue(testPrincipal(), -5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), issued.ExpiresAt)

	issued, err = tokens.Issue(testPrincipal(), 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), issued.ExpiresAt)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	tokens := newTestTokenService(t)
	now := time.Now()
	tokens.SetClock(func() time.Time { return now })

	issued, err := tokens.Issue(testPrincipal(), time.Minute)
	require.NoError(t, err)

	tokens.SetClock(func() time.Time { return now.Add(2 * time.Minute) })
	_, err = tokens.Validate(issued.Token)
	assert.True(t, errors.Is(err, model.ErrInvalidToken))
}

func TestTokenService_RejectsTamperedSignature(t *testing.T) {
	tokens := newTestTokenService(t)

	issued, err := tokens.Issue(testPrincipal(), time.Minute)
	require.NoError(t, err)

	parts := strings.Split(issued.Token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	mid := len(sig) / 2
	if sig[mid] == 'A' {
		sig[mid] = 'B'
	} else {
		sig[mid] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tokens.Validate(tampered)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestTokenService_RejectsForeignIssuerAndKey(t *testing.T) {
	tokens := newTestTokenService(t)

	other, err := NewTokenService(testSigningKey, "someone-else", "tms-frontend", time.Hour, time.Hour)
	require.NoError(t, err)
	issued, err := other.Issue(testPrincipal(), time.Minute)
	require.NoError(t, err)
	_, err = tokens.Validate(issued.Token)
	assert.ErrorIs(t, err, model.ErrInvalidToken)

	otherKey, err := NewTokenService(strings.Repeat("z", 40), "tms-api", "tms-frontend", time.Hour, time.Hour)
	require.NoError(t, err)
	issued, err = otherKey.Issue(testPrincipal(), time.Minute)
	require.NoError(t, err)
	_, err = tokens.Validate(issued.Token)
	assert.ErrorIs(t, err, model.ErrInvalidToken)

	_, err = tokens.Validate("not-a-token")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService("short", "tms-api", "tms-frontend", time.Hour, time.Hour)
	require.Error(t, err)

	_, err = NewTokenService(testSigningKey, " ", "tms-frontend", time.Hour, time.Hour)
	require.Error(t, err)

	tokens, err := NewTokenService(testSigningKey, "tms-api", "tms-frontend", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, tokens.defaultTTL)
	assert.Equal(t, DefaultTokenTTL, tokens.maxTTL)
}
