// Package session issues and validates stateless session tokens for
// authenticated items.
//
// Sessions are JSON Web Tokens signed with HMAC-SHA256. The token carries
// the list key and item id, which is all the authenticatedItem query needs
// to resolve the current item. Transport (cookies, headers) is the
// caller's concern.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session describes an authenticated session decoded from a token.
type Session struct {
	ID        string    `json:"id"`
	ListKey   string    `json:"list_key"`
	ItemID    string    `json:"item_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionClaims struct {
	jwt.RegisteredClaims
	ListKey string `json:"listKey"`
}

// Manager creates and validates session tokens.
type Manager struct {
	signingKey []byte
	expiry     time.Duration
}

func NewManager(signingKey []byte, expiry time.Duration) *Manager {
	if expiry == 0 {
		expiry = 24 * time.Hour
	}
	return &Manager{signingKey: signingKey, expiry: expiry}
}

// StartSession mints a session token for the given item.
func (m *Manager) StartSession(listKey, itemID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   itemID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
		ListKey: listKey,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.signingKey)
}

// Validate parses and verifies a session token.
func (m *Manager) Validate(tokenStr string) (*Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("session: unexpected signing method %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("session: invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("session: invalid token")
	}

	sess := &Session{
		ID:      claims.ID,
		ListKey: claims.ListKey,
		ItemID:  claims.Subject,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}
