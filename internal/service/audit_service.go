package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go-tms-api/internal/event"
	"go-tms-api/internal/model"
)

const auditWriteTimeout = 5 * time.Second

type auditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}

// AuditService records committed gateway mutations and announces them on the
// event bus. Recording is best effort and never fails the mutation.
type AuditService struct {
	store auditStore
	bus   event.Bus
}

func NewAuditService(store auditStore, bus event.Bus) *AuditService {
	return &AuditService{store: store, bus: bus}
}

func (s *AuditService) Record(ctx context.Context, change model.EntityChange) {
	if s == nil {
		return
	}

	now := time.Now().UTC()
	var actor model.AuditActor
	if principal, ok := model.PrincipalFromContext(ctx); ok {
		actor = model.AuditActor{UserID: principal.UserID, Username: principal.Username}
	}

	if s.store != nil {
		entry := model.AuditEntry{
			Action:     change.Action,
			Entity:     change.Entity,
			EntityID:   change.EntityID,
			Actor:      actor,
			Status:     "success",
			OccurredAt: now,
		}
		logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
		err := s.store.Log(logCtx, entry)
		cancel()
		if err != nil {
			slog.Warn("failed to record audit entry", "entity", change.Entity, "id", change.EntityID, "error", err)
		}
	}

	if s.bus != nil {
		s.bus.Publish(event.Event{
			ID:        uuid.NewString(),
			Type:      event.TypeFor(change.Action),
			Payload:   change,
			Timestamp: now.Format(time.RFC3339Nano),
			ActorID:   actor.UserID,
		})
	}
}

func (s *AuditService) List(ctx context.Context, query model.AuditQuery) (model.AuditPage, error) {
	entries, meta, err := s.store.Query(ctx, query)
	if err != nil {
		return model.AuditPage{}, err
	}

	return model.AuditPage{Entries: entries, Meta: meta}, nil
}
