package model

import "time"

type ChangeAction string

const (
	ActionCreated ChangeAction = "created"
	ActionUpdated ChangeAction = "updated"
	ActionDeleted ChangeAction = "deleted"
)

// EntityChange describes one committed gateway mutation.
type EntityChange struct {
	Action   ChangeAction `json:"action"`
	Entity   string       `json:"entity"`
	EntityID int64        `json:"entityId"`
}

type AuditActor struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
}

type AuditEntry struct {
	ID         int64        `json:"id"`
	Action     ChangeAction `json:"action"`
	Entity     string       `json:"entity"`
	EntityID   int64        `json:"entityId"`
	Actor      AuditActor   `json:"actor"`
	Status     string       `json:"status"`
	OccurredAt time.Time    `json:"occurredAt"`
}

type AuditQuery struct {
	Entity string
	Page   int
	Limit  int
}

type AuditPage struct {
	Entries []AuditEntry `json:"entries"`
	Meta    Meta         `json:"meta"`
}
