// Package loom wires the auth components together with sensible defaults.
package loom

import (
	"time"

	"github.com/loomcms/loom/auth"
	"github.com/loomcms/loom/config"
	"github.com/loomcms/loom/domain"
	"github.com/loomcms/loom/lgorm"
	"github.com/loomcms/loom/schema"
	"github.com/loomcms/loom/session"
)

// OpenStore opens the configured database and returns the item store.
func OpenStore(cfg *config.Config) (*lgorm.Store, error) {
	return lgorm.Open(cfg.DBType, cfg.DSN, nil)
}

// AuthConfig maps the loaded configuration onto an auth.Config.
func AuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		ListKey:           cfg.ListKey,
		IdentityField:     cfg.IdentityField,
		SecretField:       cfg.SecretField,
		ProtectIdentities: cfg.ProtectIdentities,
	}
}

// NewDefaultAuthenticator creates a password Authenticator with a bcrypt
// hasher at the configured work cost.
func NewDefaultAuthenticator(store domain.ItemStore, cfg *config.Config) *auth.Authenticator {
	return auth.NewAuthenticator(store, auth.NewBcryptHasher(cfg.BcryptWorkCost), AuthConfig(cfg))
}

// NewDefaultPasswordReset creates the TokenManager for the password-reset
// purpose with the configured validity window.
func NewDefaultPasswordReset(store domain.ItemStore, cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(store, auth.NewBcryptHasher(cfg.BcryptWorkCost),
		AuthConfig(cfg), auth.PasswordReset, cfg.TokensValidForMins)
}

// NewDefaultSessionManager creates a JWT session manager.
func NewDefaultSessionManager(cfg *config.Config) *session.Manager {
	return session.NewManager([]byte(cfg.SessionSecret), time.Duration(cfg.SessionMaxAge)*time.Second)
}

// AuthExtensions builds the two schema extensions (login + reset tokens)
// for the configured list.
func AuthExtensions(store domain.ItemStore, sender domain.TokenSender, cfg *config.Config) []schema.Extension {
	acfg := AuthConfig(cfg)
	names := schema.NamesForList(cfg.ListKey)
	return []schema.Extension{
		schema.BaseAuthSchema(NewDefaultAuthenticator(store, cfg), acfg, names),
		schema.PasswordResetSchema(NewDefaultPasswordReset(store, cfg), sender, acfg, names),
	}
}
