package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-tms-api/internal/model"
)

type UserRepository struct {
	pool  *pgxpool.Pool
	users *Store[model.User, int64]
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool, users: NewStore(pool, UsersTable)}
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	return r.users.FindByID(ctx, id)
}

// FindByLogin matches login against the username or the e-mail address.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (model.User, error) {
	var u model.User
	query := fmt.Sprintf(`SELECT id, %s FROM users
		 WHERE lower(username) = lower($1) OR lower(email) = lower($1)
		 ORDER BY lower(username) = lower($1) DESC, id
		 LIMIT 1`, strings.Join(UsersTable.Columns, ", "))

	err := r.pool.QueryRow(ctx, query, strings.TrimSpace(login)).Scan(UsersTable.Dest(&u)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by login: %w", err)
	}
	return u, nil
}

// CreateWithCredential inserts the user and its stored credential atomically.
// A username collision surfaces as model.ErrAlreadyExists.
func (r *UserRepository) CreateWithCredential(ctx context.Context, u model.User, credential string) (model.User, error) {
	var created model.User
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		stored, err := NewStore(tx, UsersTable).Insert(ctx, u)
		if err != nil {
			return err
		}

		if err := NewCredentialRepository(tx).Create(ctx, stored.ID, credential); err != nil {
			return err
		}

		created = stored
		return nil
	})
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}
