package event

import "go-tms-api/internal/model"

type Type string

const (
	TypeEntityCreated Type = "entity.created"
	TypeEntityUpdated Type = "entity.updated"
	TypeEntityDeleted Type = "entity.deleted"
)

// TypeFor returns the event type published for a gateway mutation.
func TypeFor(action model.ChangeAction) Type {
	switch action {
	case model.ActionCreated:
		return TypeEntityCreated
	case model.ActionDeleted:
		return TypeEntityDeleted
	default:
		return TypeEntityUpdated
	}
}

type Event struct {
	ID        string             `json:"id"`
	Type      Type               `json:"type"`
	Payload   model.EntityChange `json:"payload"`
	Timestamp string             `json:"timestamp"`
	ActorID   string             `json:"actorId,omitempty"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}
