// loom-auth is an operator tool for the Loom auth layer. It runs directly
// against the configured item store, so it works without any transport in
// front of the framework.
package main

import (
	"fmt"
	"os"

	"github.com/loomcms/loom/config"
	"github.com/loomcms/loom/logger"
)

// Version is set at build time
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if cmd == "version" {
		fmt.Printf("loom-auth %s\n", Version)
		return
	}
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	cli, err := newCLI(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case "login":
		err = cli.loginCommand(args)
	case "send-reset":
		err = cli.sendResetCommand(args)
	case "validate-token":
		err = cli.validateTokenCommand(args)
	case "redeem-token":
		err = cli.redeemTokenCommand(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`loom-auth - Loom authentication operator tool

Usage:
  loom-auth <command> [arguments]

Commands:
  login <identity> <secret>                    Attempt a password login
  send-reset <identity>                        Issue a password-reset token
  validate-token <identity> <token>            Check a reset token
  redeem-token <identity> <token> <secret>     Redeem a reset token
  version                                      Print version
  help                                         Show this help

Configuration is read from the environment (DB_TYPE, DSN, LIST_KEY,
IDENTITY_FIELD, SECRET_FIELD, PROTECT_IDENTITIES, TOKENS_VALID_FOR_MINS,
SESSION_SECRET, LOG_LEVEL).`)
}
