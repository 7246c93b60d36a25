package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/loomcms/loom/domain"
)

func newTestTokenManager(store *mockStore, protect bool, validForMins int) *TokenManager {
	return NewTokenManager(store, testHasher(), testConfig(protect), PasswordReset, validForMins)
}

func TestIssueAndValidate(t *testing.T) {
	store := newMockStore(domain.Item{"id": "1", "email": "test@example.com"})
	m := newTestTokenManager(store, false, 60)

	t0 := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return t0 }
	ctx := context.Background()

	out, err := m.Issue(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("failed to issue: %v", err)
	}
	if !out.Success || out.Token == "" || out.ItemID != "1" {
		t.Fatalf("unexpected issue outcome: %+v", out)
	}
	token := out.Token

	// The stored field holds a digest, never the token itself.
	if stored := store.items["1"].String(PasswordReset.TokenField); stored == "" || stored == token {
		t.Errorf("expected stored digest distinct from token, got %q", stored)
	}

	// Just inside the window.
	m.now = func() time.Time { return t0.Add(59 * time.Minute) }
	if out, _ := m.Validate(ctx, "test@example.com", token); !out.Success {
		t.Errorf("expected success at +59m, got %+v", out)
	}

	// Wrong token inside the window.
	m.now = func() time.Time { return t0.Add(10 * time.Minute) }
	if out, _ := m.Validate(ctx, "test@example.com", "xyz"); out.Success || out.Code != CodeTokenMismatch {
		t.Errorf("expected TOKEN_MISMATCH, got %+v", out)
	}

	// Just outside the window.
	m.now = func() time.Time { return t0.Add(61 * time.Minute) }
	if out, _ := m.Validate(ctx, "test@example.com", token); out.Success || out.Code != CodeTokenExpired {
		t.Errorf("expected TOKEN_EXPIRED, got %+v", out)
	}
}

func TestReissueInvalidatesPreviousToken(t *testing.T) {
	store := newMockStore(domain.Item{"id": "1", "email": "test@example.com"})
	m := newTestTokenManager(store, false, 60)
	ctx := context.Background()

	first, err := m.Issue(ctx, "test@example.com")
	if err != nil || !first.Success {
		t.Fatalf("failed to issue: %+v err=%v", first, err)
	}
	second, err := m.Issue(ctx, "test@example.com")
	if err != nil || !second.Success {
		t.Fatalf("failed to reissue: %+v err=%v", second, err)
	}

	if out, _ := m.Validate(ctx, "test@example.com", first.Token); out.Success || out.Code != CodeTokenMismatch {
		t.Errorf("expected overwritten token to mismatch, got %+v", out)
	}
	if out, _ := m.Validate(ctx, "test@example.com", second.Token); !out.Success {
		t.Errorf("expected current token to validate, got %+v", out)
	}
}

func TestValidateTokenNotSet(t *testing.T) {
	store := newMockStore(domain.Item{"id": "1", "email": "test@example.com"})
	m := newTestTokenManager(store, false, 60)

	out, err := m.Validate(context.Background(), "test@example.com", "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Success || out.Code != CodeTokenNotSet {
		t.Errorf("expected TOKEN_NOT_SET, got %+v", out)
	}
}

func TestRedeem(t *testing.T) {
	hasher := testHasher()
	store := newMockStore(domain.Item{"id": "1", "email": "test@example.com"})
	m := NewTokenManager(store, hasher, testConfig(false), PasswordReset, 60)
	ctx := context.Background()

	issued, err := m.Issue(ctx, "test@example.com")
	if err != nil || !issued.Success {
		t.Fatalf("failed to issue: %+v err=%v", issued, err)
	}

	out, err := m.Redeem(ctx, "test@example.com", issued.Token, "newSecret456")
	if err != nil {
		t.Fatalf("failed to redeem: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected successful redemption, got %+v", out)
	}

	// The secret was replaced.
	if !hasher.Compare("newSecret456", store.items["1"].String("password")) {
		t.Error("expected new secret to be applied")
	}
	// RedeemedAt is set.
	if store.items["1"].Time(PasswordReset.RedeemedAtField) == nil {
		t.Error("expected RedeemedAt to be set")
	}

	// A second redemption with the same token fails closed.
	out, err = m.Redeem(ctx, "test@example.com", issued.Token, "another789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Success || out.Code != CodeTokenRedeemed {
		t.Errorf("expected TOKEN_REDEEMED, got %+v", out)
	}
}

func TestRedeemConsumesTokenWhenSecretRejected(t *testing.T) {
	hasher := testHasher()
	store := newMockStore(domain.Item{"id": "1", "email": "test@example.com"})
	m := NewTokenManager(store, hasher, testConfig(false), PasswordReset, 60)
	m.SetSecretPolicy(func(secret string) error {
		if len(secret) < 8 {
			return errors.New("secret must be at least 8 characters")
		}
		return nil
	})
	ctx := context.Background()

	issued, _ := m.Issue(ctx, "test@example.com")

	out, err := m.Redeem(ctx, "test@example.com", issued.Token, "short")
	var serr *SecretUpdateError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SecretUpdateError, got %v", err)
	}
	// Validation itself succeeded; the secret write is a distinct error.
	if !out.Success {
		t.Errorf("expected validation outcome to stand, got %+v", out)
	}
	// The secret was not applied.
	if store.items["1"].String("password") != "" {
		t.Error("expected secret to remain unset")
	}

	// The token is spent regardless.
	if out, _ := m.Validate(ctx, "test@example.com", issued.Token); out.Success || out.Code != CodeTokenRedeemed {
		t.Errorf("expected TOKEN_REDEEMED after failed secret update, got %+v", out)
	}
}

func TestIssueProtectIdentities(t *testing.T) {
	store := newMockStore(domain.Item{"id": "1", "email": "test@example.com"})
	m := newTestTokenManager(store, true, 60)

	// Suppressed-detail path: failure with no code at all.
	out, err := m.Issue(context.Background(), "nonexistent@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Success || out.Code != "" {
		t.Errorf("expected codeless failure, got %+v", out)
	}
	if store.lastEvent() == nil || store.lastEvent().Message != string(CodeIdentityNotFound) {
		t.Error("expected specific code in audit trail")
	}
}

func TestValidateProtectIdentities(t *testing.T) {
	store := newMockStore(domain.Item{"id": "1", "email": "test@example.com"})
	m := newTestTokenManager(store, true, 60)
	ctx := context.Background()

	issued, _ := m.Issue(ctx, "test@example.com")

	// Nonexistent identity and wrong token collapse to the same code.
	missing, _ := m.Validate(ctx, "nonexistent@example.com", issued.Token)
	wrong, _ := m.Validate(ctx, "test@example.com", "xyz")
	if missing.Code != CodeFailure || wrong.Code != CodeFailure {
		t.Errorf("expected FAILURE for both, got %q and %q", missing.Code, wrong.Code)
	}

	if out, _ := m.Validate(ctx, "test@example.com", issued.Token); !out.Success {
		t.Errorf("expected success with the real token, got %+v", out)
	}
}
