// Package auth implements password authentication and the single-use,
// time-limited reset-token lifecycle for a schema-driven list.
//
// The package has two entry points: Authenticator runs the login flow and
// TokenManager runs token issuance, validation and redemption for one
// token purpose. Both resolve items by a configured identity field and
// verify secrets through a domain.Hasher.
//
// # Identity protection
//
// When Config.ProtectIdentities is set, no externally visible result
// distinguishes "no such identity" from "wrong secret" or "wrong token":
// failures collapse to CodeFailure (or to no code at all on the issuance
// path). The specific code is still logged and written to the audit trail.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/loomcms/loom/audit"
	"github.com/loomcms/loom/domain"
	"github.com/loomcms/loom/logger"
)

var tracer trace.Tracer = otel.Tracer("loom/auth")

// Config binds an auth component to one list.
type Config struct {
	// ListKey names the list the component operates on, e.g. "User".
	ListKey string

	// IdentityField is the unique lookup field, e.g. "email".
	IdentityField string

	// SecretField is the hashed credential field, e.g. "password".
	SecretField string

	// ProtectIdentities suppresses failure detail in external results to
	// prevent enumeration of valid identities.
	ProtectIdentities bool

	// Labels are used in human-readable error messages. Unset labels
	// fall back to "item"/"items".
	Labels ListLabels
}

// MessageLabels returns the configured labels with defaults filled in.
func (c Config) MessageLabels() ListLabels {
	l := c.Labels
	if l.Singular == "" {
		l.Singular = "item"
	}
	if l.Plural == "" {
		l.Plural = l.Singular + "s"
	}
	return l
}

// resolveIdentity looks up the item whose identity field equals the given
// value. Zero matches and multiple matches are failures; the identity
// field should be unique upstream but that is not enforced here, so the
// many-match case is reported rather than picked from.
func resolveIdentity(ctx context.Context, store domain.ItemStore, cfg Config, identity string) (domain.Item, Code, error) {
	items, err := store.FindMany(ctx, cfg.ListKey, map[string]any{cfg.IdentityField: identity})
	if err != nil {
		return nil, "", err
	}
	switch len(items) {
	case 0:
		return nil, CodeIdentityNotFound, nil
	case 1:
		return items[0], "", nil
	default:
		return nil, CodeMultipleIdentityMatches, nil
	}
}

// auditStoreOf extracts the audit capability from a store when it has one.
func auditStoreOf(store domain.ItemStore) audit.Store {
	if as, ok := store.(audit.Store); ok {
		return as
	}
	return nil
}

func saveEvent(ctx context.Context, store audit.Store, eventType, actorID, subjectID, status, message string) {
	if store == nil {
		return
	}
	err := store.SaveEvent(ctx, &audit.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		ActorID:   actorID,
		SubjectID: subjectID,
		Status:    status,
		Message:   message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logger.L().Warn("failed to save audit event",
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}
