// Package audit defines the security event trail for Loom auth.
//
// Identity protection deliberately hides failure detail from callers; the
// audit trail is where that detail survives. Stores are best-effort: a
// failed audit write never fails the operation that produced it.
package audit

import (
	"context"
	"time"
)

// Event is a single security event record.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`       // e.g. "auth.login.failure"
	ActorID   string    `json:"actor_id"`   // the identity value that was presented
	SubjectID string    `json:"subject_id"` // the affected item, when resolved
	Status    string    `json:"status"`     // "success" or "failure"
	Message   string    `json:"message"`    // specific code or human summary
	CreatedAt time.Time `json:"created_at"`
}

// Store persists audit events.
type Store interface {
	SaveEvent(ctx context.Context, e *Event) error
}
