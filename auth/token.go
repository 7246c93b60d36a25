package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/loomcms/loom/audit"
	"github.com/loomcms/loom/domain"
	"github.com/loomcms/loom/logger"
)

// SecretPolicy validates a replacement secret before it is written during
// redemption, e.g. a password strength rule. A nil policy accepts any
// secret.
type SecretPolicy func(secret string) error

// SecretUpdateError reports that a token was redeemed but the subsequent
// secret update was rejected. The token is already consumed when this
// error is returned.
type SecretUpdateError struct {
	Err error
}

func (e *SecretUpdateError) Error() string {
	return fmt.Sprintf("auth: secret update failed: %v", e.Err)
}

func (e *SecretUpdateError) Unwrap() error { return e.Err }

// TokenManager runs the token lifecycle for one purpose on one list:
// issuance, validation, and redemption. The stored token field holds a
// digest of the token, never the token itself; the plaintext token only
// exists in the issuance result handed to the delivery side-channel.
type TokenManager struct {
	store   domain.ItemStore
	hasher  domain.Hasher
	cfg     Config
	purpose Purpose

	// validFor is the window within which an issued token may be
	// validated or redeemed.
	validFor time.Duration

	policy SecretPolicy
	audit  audit.Store
	now    func() time.Time
}

func NewTokenManager(store domain.ItemStore, hasher domain.Hasher, cfg Config, purpose Purpose, validForMins int) *TokenManager {
	if validForMins <= 0 {
		validForMins = 10
	}
	return &TokenManager{
		store:    store,
		hasher:   hasher,
		cfg:      cfg,
		purpose:  purpose,
		validFor: time.Duration(validForMins) * time.Minute,
		audit:    auditStoreOf(store),
		now:      time.Now,
	}
}

// SetSecretPolicy installs a strength rule for replacement secrets.
func (m *TokenManager) SetSecretPolicy(p SecretPolicy) { m.policy = p }

// Issue generates a fresh random token for the identified item, persists
// its digest with IssuedAt=now and a cleared RedeemedAt, and returns the
// plaintext token for delivery. Issuing again before redemption overwrites
// the previous token, invalidating it.
//
// Under identity protection a resolution failure yields Success=false with
// no code at all: callers render the same neutral response either way.
func (m *TokenManager) Issue(ctx context.Context, identity string) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "auth.TokenManager.Issue")
	defer span.End()

	item, code, err := resolveIdentity(ctx, m.store, m.cfg, identity)
	if err != nil {
		return Outcome{}, err
	}
	if code != "" {
		logger.L().Info("token issuance refused",
			zap.String("list", m.cfg.ListKey),
			zap.String("purpose", m.purpose.Name),
			zap.String("code", string(code)),
		)
		saveEvent(ctx, m.audit, "auth.token.issue", identity, "", "failure", string(code))
		if m.cfg.ProtectIdentities {
			return Outcome{Success: false}, nil
		}
		return failure(code), nil
	}

	token := uuid.New().String()
	digest, err := m.hasher.Hash(token)
	if err != nil {
		return Outcome{}, err
	}

	itemID := item.ID()
	_, err = m.store.UpdateOne(ctx, m.cfg.ListKey, itemID, map[string]any{
		m.purpose.TokenField:      digest,
		m.purpose.IssuedAtField:   m.now().UTC(),
		m.purpose.RedeemedAtField: nil,
	})
	if err != nil {
		return Outcome{}, err
	}

	saveEvent(ctx, m.audit, "auth.token.issue", identity, itemID, "success", m.purpose.Name)
	return Outcome{Success: true, ItemID: itemID, Token: token}, nil
}

// Validate checks a candidate token against the identified item. Checks
// run in a fixed order: not-set, mismatch, redeemed, expired. Mismatch is
// checked before the state checks so an attacker probing with wrong tokens
// learns nothing about redemption or expiry.
func (m *TokenManager) Validate(ctx context.Context, identity, candidate string) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "auth.TokenManager.Validate")
	defer span.End()

	item, code, err := resolveIdentity(ctx, m.store, m.cfg, identity)
	if err != nil {
		return Outcome{}, err
	}
	if code != "" {
		m.hasher.Compare(candidate, dummyHash)
		return m.fail(ctx, identity, "", code), nil
	}

	itemID := item.ID()
	digest := item.String(m.purpose.TokenField)
	if digest == "" {
		m.hasher.Compare(candidate, dummyHash)
		return m.fail(ctx, identity, itemID, CodeTokenNotSet), nil
	}
	if !m.hasher.Compare(candidate, digest) {
		return m.fail(ctx, identity, itemID, CodeTokenMismatch), nil
	}
	if item.Time(m.purpose.RedeemedAtField) != nil {
		return m.fail(ctx, identity, itemID, CodeTokenRedeemed), nil
	}
	issuedAt := item.Time(m.purpose.IssuedAtField)
	if issuedAt == nil || m.now().Sub(*issuedAt) > m.validFor {
		return m.fail(ctx, identity, itemID, CodeTokenExpired), nil
	}

	return Outcome{Success: true, Item: item, ItemID: itemID}, nil
}

// Redeem validates the token, consumes it, and applies the new secret.
//
// Consumption and the secret write are deliberately two separate writes:
// the secret policy may reject the replacement secret, and the token must
// still be spent so it cannot be retried. When that happens the returned
// Outcome reflects the successful validation while the error is a
// *SecretUpdateError.
func (m *TokenManager) Redeem(ctx context.Context, identity, candidate, newSecret string) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "auth.TokenManager.Redeem")
	defer span.End()

	out, err := m.Validate(ctx, identity, candidate)
	if err != nil || !out.Success {
		return out, err
	}

	// Write 1: mark the token redeemed. From here on the token is spent
	// regardless of what happens to the secret.
	_, err = m.store.UpdateOne(ctx, m.cfg.ListKey, out.ItemID, map[string]any{
		m.purpose.RedeemedAtField: m.now().UTC(),
	})
	if err != nil {
		return Outcome{}, err
	}
	saveEvent(ctx, m.audit, "auth.token.redeem", identity, out.ItemID, "success", m.purpose.Name)

	// Write 2: apply the replacement secret.
	if m.policy != nil {
		if perr := m.policy(newSecret); perr != nil {
			saveEvent(ctx, m.audit, "auth.secret.update", identity, out.ItemID, "failure", perr.Error())
			return out, &SecretUpdateError{Err: perr}
		}
	}
	digest, err := m.hasher.Hash(newSecret)
	if err != nil {
		return out, &SecretUpdateError{Err: err}
	}
	_, err = m.store.UpdateOne(ctx, m.cfg.ListKey, out.ItemID, map[string]any{
		m.cfg.SecretField: digest,
	})
	if err != nil {
		return out, &SecretUpdateError{Err: err}
	}

	return out, nil
}

func (m *TokenManager) fail(ctx context.Context, identity, itemID string, code Code) Outcome {
	logger.L().Info("token validation failed",
		zap.String("list", m.cfg.ListKey),
		zap.String("purpose", m.purpose.Name),
		zap.String("code", string(code)),
	)
	saveEvent(ctx, m.audit, "auth.token.validate", identity, itemID, "failure", string(code))

	if m.cfg.ProtectIdentities {
		return failure(CodeFailure)
	}
	return failure(code)
}
