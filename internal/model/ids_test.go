package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	t.Run("parses within the width of the key type", func(t *testing.T) {
		id16, err := ParseID[int16]("32767")
		require.NoError(t, err)
		require.Equal(t, int16(32767), id16)

		id64, err := ParseID[int64](" 9000000000 ")
		require.NoError(t, err)
		require.Equal(t, int64(9000000000), id64)
	})

	t.Run("rejects values that overflow the key type", func(t *testing.T) {
		_, err := ParseID[int16]("40000")
		require.Error(t, err)

		_, err = ParseID[int32]("3000000000")
		require.Error(t, err)
	})

	t.Run("rejects non numeric input", func(t *testing.T) {
		_, err := ParseID[int64]("abc")
		require.Error(t, err)
	})
}

func TestUserPrincipal(t *testing.T) {
	t.Parallel()

	email := "alice@example.com"
	principal := User{ID: 7, Username: "alice", Email: &email}.Principal()
	require.Equal(t, "7", principal.UserID)
	require.Equal(t, "alice", principal.Username)
	require.Equal(t, email, principal.Email)

	require.Empty(t, User{ID: 8, Username: "bob"}.Principal().Email)
}

func TestPrincipalContext(t *testing.T) {
	t.Parallel()

	_, ok := PrincipalFromContext(context.Background())
	require.False(t, ok)

	ctx := WithPrincipal(context.Background(), &Principal{UserID: "3"})
	principal, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "3", principal.UserID)

	_, ok = PrincipalFromContext(WithPrincipal(context.Background(), nil))
	require.False(t, ok)
}

func TestSignupRequestToUser(t *testing.T) {
	t.Parallel()

	first := "Alice"
	user := SignupRequest{Username: "  alice ", Password: "secret-password", FirstName: &first}.ToUser()
	require.Equal(t, "alice", user.Username)
	require.Equal(t, &first, user.FirstName)
	require.Zero(t, user.ID)
}
