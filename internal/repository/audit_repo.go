package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-tms-api/internal/model"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_entries
		 (action, entity, entity_id, actor_user_id, actor_username, status, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(entry.Action), entry.Entity, entry.EntityID,
		nullIfEmpty(entry.Actor.UserID), nullIfEmpty(entry.Actor.Username),
		entry.Status, entry.OccurredAt)
	if err != nil {
		return fmt.Errorf("log audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	query = NormalizeAuditQuery(query)

	where := ""
	args := make([]any, 0, 3)
	if entity := strings.TrimSpace(query.Entity); entity != "" {
		where = "WHERE lower(entity) = lower($1)"
		args = append(args, entity)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM audit_entries "+where, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count audit entries: %w", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + query.Limit - 1) / query.Limit
	}
	meta := model.Meta{Page: query.Page, Limit: query.Limit, Total: total, TotalPages: totalPages}

	offset := (query.Page - 1) * query.Limit
	dataQuery := fmt.Sprintf(
		`SELECT id, action, entity, entity_id, COALESCE(actor_user_id, ''), COALESCE(actor_username, ''),
		        status, occurred_at
		 FROM audit_entries %s
		 ORDER BY occurred_at DESC, id DESC
		 LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, query.Limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &action, &e.Entity, &e.EntityID,
			&e.Actor.UserID, &e.Actor.Username, &e.Status, &e.OccurredAt); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = model.ChangeAction(action)
		e.OccurredAt = e.OccurredAt.UTC()
		entries = append(entries, e)
	}

	return entries, meta, rows.Err()
}

// NormalizeAuditQuery clamps paging parameters to their allowed range.
func NormalizeAuditQuery(query model.AuditQuery) model.AuditQuery {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = defaultAuditLimit
	}
	if query.Limit > maxAuditLimit {
		query.Limit = maxAuditLimit
	}
	return query
}

func nullIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
