// Package domain defines the storage and capability contracts for Loom's
// authentication layer.
//
// The auth components never own persistence: they read and write items
// through the ItemStore interface, compare secrets through the Hasher
// interface, and hand reset tokens to a TokenSender. Any backend can be
// plugged in; see the lgorm package for the GORM implementation.
package domain

import (
	"context"
	"time"
)

// Item is a single record from a schema-driven list. Lists are defined at
// runtime, so fields are dynamic; the auth layer only touches the identity,
// secret and token fields it was configured with.
type Item map[string]any

// ID returns the item's unique identifier, or "" when unset.
func (it Item) ID() string {
	return it.String("id")
}

// String returns the named field as a string, or "" when the field is
// missing, nil, or not a string.
func (it Item) String(field string) string {
	v, ok := it[field]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Time returns the named field as a timestamp, or nil when the field is
// missing or null. Backends may hand back time.Time, *time.Time or an
// RFC 3339 string depending on the driver.
func (it Item) Time(field string) *time.Time {
	v, ok := it[field]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return &parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return &parsed
		}
	}
	return nil
}

// ItemStore is the persistence contract the auth components operate
// against. Filters and update payloads are partial field mappings keyed by
// field name. Implementations are expected to serialize writes to a single
// record; the auth layer holds no locks of its own.
type ItemStore interface {
	// FindMany returns every item in the list whose fields equal the
	// filter values.
	FindMany(ctx context.Context, listKey string, filter map[string]any) ([]Item, error)

	// UpdateOne applies the partial data mapping to the item with the
	// given id and returns the updated item. A nil value clears a field.
	UpdateOne(ctx context.Context, listKey, id string, data map[string]any) (Item, error)
}

// Hasher defines the secret hashing and verification capability. The same
// contract covers login secrets and stored token digests.
type Hasher interface {
	Hash(secret string) (string, error)
	Compare(secret, hash string) bool
}

// TokenSender delivers a freshly issued token to the item's owner, e.g. as
// a password-reset link. Delivery runs after the token has been persisted;
// a delivery failure never rolls the token back.
type TokenSender interface {
	SendToken(ctx context.Context, itemID, identity, token string) error
}

// TokenSenderFunc adapts a plain function to the TokenSender interface.
type TokenSenderFunc func(ctx context.Context, itemID, identity, token string) error

func (f TokenSenderFunc) SendToken(ctx context.Context, itemID, identity, token string) error {
	return f(ctx, itemID, identity, token)
}
