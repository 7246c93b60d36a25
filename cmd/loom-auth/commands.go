package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/loomcms/loom"
	"github.com/loomcms/loom/auth"
	"github.com/loomcms/loom/config"
	"github.com/loomcms/loom/session"
)

type CLI struct {
	cfg      *config.Config
	authn    *auth.Authenticator
	tokens   *auth.TokenManager
	sessions *session.Manager
}

func newCLI(cfg *config.Config) (*CLI, error) {
	store, err := loom.OpenStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &CLI{
		cfg:      cfg,
		authn:    loom.NewDefaultAuthenticator(store, cfg),
		tokens:   loom.NewDefaultPasswordReset(store, cfg),
		sessions: loom.NewDefaultSessionManager(cfg),
	}, nil
}

func (c *CLI) loginCommand(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: loom-auth login <identity> <secret>")
	}

	out, err := c.authn.Authenticate(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}
	if !out.Success {
		labels := loom.AuthConfig(c.cfg).MessageLabels()
		return fmt.Errorf("%s (%s)", auth.ErrorMessage(out.Code, c.cfg.IdentityField, c.cfg.SecretField, labels), out.Code)
	}

	token, err := c.sessions.StartSession(c.cfg.ListKey, out.ItemID)
	if err != nil {
		return err
	}
	fmt.Printf("authenticated item %s\nsession token: %s\n", out.ItemID, token)
	return nil
}

func (c *CLI) sendResetCommand(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: loom-auth send-reset <identity>")
	}

	out, err := c.tokens.Issue(context.Background(), args[0])
	if err != nil {
		return err
	}
	if !out.Success {
		if out.Code == "" {
			// Identity protection: report nothing distinguishable.
			fmt.Println("reset requested")
			return nil
		}
		return fmt.Errorf("reset refused (%s)", out.Code)
	}

	// The operator tool prints the token instead of delivering it.
	fmt.Printf("item: %s\ntoken: %s\n", out.ItemID, out.Token)
	return nil
}

func (c *CLI) validateTokenCommand(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: loom-auth validate-token <identity> <token>")
	}

	out, err := c.tokens.Validate(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("token invalid (%s)", out.Code)
	}
	fmt.Printf("token valid for item %s\n", out.ItemID)
	return nil
}

func (c *CLI) redeemTokenCommand(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: loom-auth redeem-token <identity> <token> <secret>")
	}

	out, err := c.tokens.Redeem(context.Background(), args[0], args[1], args[2])
	var serr *auth.SecretUpdateError
	if errors.As(err, &serr) {
		return fmt.Errorf("token redeemed but new secret rejected: %w", serr.Err)
	}
	if err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("redemption failed (%s)", out.Code)
	}
	fmt.Printf("secret updated for item %s\n", out.ItemID)
	return nil
}
