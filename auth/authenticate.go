package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/loomcms/loom/audit"
	"github.com/loomcms/loom/domain"
	"github.com/loomcms/loom/logger"
)

// Authenticator runs the password login flow for one list: resolve the
// identity, verify the secret, and report a session-worthy outcome.
// Session creation itself belongs to the caller.
type Authenticator struct {
	store  domain.ItemStore
	hasher domain.Hasher
	cfg    Config
	audit  audit.Store
}

func NewAuthenticator(store domain.ItemStore, hasher domain.Hasher, cfg Config) *Authenticator {
	return &Authenticator{
		store:  store,
		hasher: hasher,
		cfg:    cfg,
		audit:  auditStoreOf(store),
	}
}

// Authenticate verifies the secret for the item identified by the identity
// value. A non-nil error means the item store failed; every credential
// problem is reported through the Outcome instead.
//
// On success the resolved item is returned so the caller can start a
// session for it.
func (a *Authenticator) Authenticate(ctx context.Context, identity, secret string) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "auth.Authenticate")
	defer span.End()

	item, code, err := resolveIdentity(ctx, a.store, a.cfg, identity)
	if err != nil {
		return Outcome{}, err
	}
	if code != "" {
		// Burn a compare anyway so resolution failures are not
		// observably faster than secret mismatches.
		a.hasher.Compare(secret, dummyHash)
		return a.fail(ctx, identity, "", code), nil
	}

	itemID := item.ID()
	hash := item.String(a.cfg.SecretField)
	if hash == "" {
		a.hasher.Compare(secret, dummyHash)
		return a.fail(ctx, identity, itemID, CodeSecretNotSet), nil
	}
	if !a.hasher.Compare(secret, hash) {
		return a.fail(ctx, identity, itemID, CodeSecretMismatch), nil
	}

	saveEvent(ctx, a.audit, "auth.login", identity, itemID, "success", "")
	return Outcome{Success: true, Item: item, ItemID: itemID}, nil
}

// fail records the specific code server-side and decides what the caller
// gets to see.
func (a *Authenticator) fail(ctx context.Context, identity, itemID string, code Code) Outcome {
	logger.L().Info("authentication failed",
		zap.String("list", a.cfg.ListKey),
		zap.String("code", string(code)),
	)
	saveEvent(ctx, a.audit, "auth.login", identity, itemID, "failure", string(code))

	if a.cfg.ProtectIdentities {
		return failure(CodeFailure)
	}
	return failure(code)
}
