//go:build integration

package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"go-tms-api/internal/database"
	"go-tms-api/internal/model"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, database.Options{URL: url, MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(ctx))

	_, err = db.Pool.Exec(ctx, `TRUNCATE audit_entries, chat_messages, chats, translation_votes, translations,
		source_strings, languages, projects, user_logins, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

func TestStoreLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewStore(db.Pool, UsersTable)
	owner, err := users.Insert(ctx, model.User{Username: "owner"})
	require.NoError(t, err)
	require.NotZero(t, owner.ID)
	require.False(t, owner.CreatedAt.IsZero())

	projects := NewStore(db.Pool, ProjectsTable)

	_, err = projects.FindByID(ctx, 100)
	require.ErrorIs(t, err, model.ErrNotFound)

	created, err := projects.Insert(ctx, model.Project{ID: 100, Name: "Docs", CreatedBy: owner.ID})
	require.NoError(t, err)
	require.Equal(t, int32(100), created.ID)

	_, err = projects.Insert(ctx, model.Project{ID: 100, Name: "Other", CreatedBy: owner.ID})
	require.True(t, errors.Is(err, model.ErrAlreadyExists))

	found, err := projects.FindByID(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, "Docs", found.Name)

	found.Name = "Documentation"
	require.NoError(t, projects.Update(ctx, found))

	listed, err := projects.ListBy(ctx, RelationCreatedBy, owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Documentation", listed[0].Name)

	require.NoError(t, projects.Delete(ctx, 100))
	require.ErrorIs(t, projects.Delete(ctx, 100), model.ErrNotFound)
	require.ErrorIs(t, projects.Update(ctx, found), model.ErrNotFound)

	_, err = projects.Insert(ctx, model.Project{Name: "Orphan", CreatedBy: 9999})
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestUserRepositoryCredentials(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	repo := NewUserRepository(db.Pool)
	credentials := NewCredentialRepository(db.Pool)

	email := "Alice@Example.com"
	alice, err := repo.CreateWithCredential(ctx, model.User{Username: "alice", Email: &email}, "salt:key")
	require.NoError(t, err)

	_, err = repo.CreateWithCredential(ctx, model.User{Username: "ALICE"}, "salt:key")
	require.ErrorIs(t, err, model.ErrAlreadyExists)

	byEmail, err := repo.FindByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, alice.ID, byEmail.ID)

	stored, err := credentials.FindByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "salt:key", stored)

	require.NoError(t, credentials.Replace(ctx, alice.ID, "salt2:key2"))
	stored, err = credentials.FindByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "salt2:key2", stored)

	require.ErrorIs(t, credentials.Replace(ctx, 424242, "x:y"), model.ErrNotFound)
}

func TestStoreAssignedKeysSkipExplicitOnes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	languages := NewStore(db.Pool, LanguagesTable)

	explicit, err := languages.Insert(ctx, model.Language{ID: 1, Code: "de", Name: "German"})
	require.NoError(t, err)
	require.Equal(t, int16(1), explicit.ID)

	assigned, err := languages.Insert(ctx, model.Language{Code: "fr", Name: "French"})
	require.NoError(t, err)
	require.Equal(t, int16(2), assigned.ID)

	_, err = languages.Insert(ctx, model.Language{ID: 10, Code: "it", Name: "Italian"})
	require.NoError(t, err)

	// A lower explicit key must not move the sequence backwards.
	_, err = languages.Insert(ctx, model.Language{ID: 5, Code: "es", Name: "Spanish"})
	require.NoError(t, err)

	assigned, err = languages.Insert(ctx, model.Language{Code: "pl", Name: "Polish"})
	require.NoError(t, err)
	require.Equal(t, int16(11), assigned.ID)

	_, err = languages.Insert(ctx, model.Language{ID: 10, Code: "nl", Name: "Dutch"})
	var conflict *model.ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, "id", conflict.Column)
	require.Equal(t, "10", conflict.Value)

	_, err = languages.Insert(ctx, model.Language{Code: "pl", Name: "Polski"})
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, "code", conflict.Column)
}

func TestStoreUpdateKeepsCreateOnlyColumns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewStore(db.Pool, UsersTable)
	created, err := users.Insert(ctx, model.User{Username: "keeper"})
	require.NoError(t, err)

	first := "Kim"
	require.NoError(t, users.Update(ctx, model.User{ID: created.ID, Username: "keeper", FirstName: &first}))

	found, err := users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Kim", *found.FirstName)
	require.True(t, created.CreatedAt.Equal(found.CreatedAt))
}
