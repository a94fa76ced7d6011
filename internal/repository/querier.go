package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"go-tms-api/internal/model"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx, so repositories can run
// inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// conflictDetail matches the DETAIL of a unique violation, e.g.
// "Key (lower(username))=(alice) already exists."
var conflictDetail = regexp.MustCompile(`^Key \((.+)\)=\((.*)\) already exists\.?$`)

// translateError maps PostgreSQL constraint violations onto model errors.
func translateError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, conflictFromDetail(pgErr.Detail))
		case foreignKeyViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, model.ErrInvalidInput)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func conflictFromDetail(detail string) *model.ConflictError {
	m := conflictDetail.FindStringSubmatch(detail)
	if m == nil {
		return &model.ConflictError{}
	}

	column := m[1]
	if open := strings.IndexByte(column, '('); open >= 0 && strings.HasSuffix(column, ")") {
		column = column[open+1 : len(column)-1]
	}

	return &model.ConflictError{Column: column, Value: m[2]}
}
