package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"go-tms-api/internal/model"
)

// CredentialRepository stores one salted password hash per user.
type CredentialRepository struct {
	db Querier
}

func NewCredentialRepository(db Querier) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Create(ctx context.Context, userID int64, credential string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_logins (user_id, password, updated_at) VALUES ($1, $2, $3)`,
		userID, credential, time.Now().UTC())
	if err != nil {
		return translateError("create credential", err)
	}
	return nil
}

func (r *CredentialRepository) FindByUserID(ctx context.Context, userID int64) (string, error) {
	var credential string
	err := r.db.QueryRow(ctx, `SELECT password FROM user_logins WHERE user_id = $1`, userID).Scan(&credential)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", model.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find credential: %w", err)
	}
	return credential, nil
}

// Replace swaps the stored credential for a freshly hashed one.
func (r *CredentialRepository) Replace(ctx context.Context, userID int64, credential string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_logins SET password = $2, updated_at = $3 WHERE user_id = $1`,
		userID, credential, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("replace credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
