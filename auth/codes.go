package auth

import "github.com/loomcms/loom/domain"

// Code identifies why an auth operation failed. Components always produce
// the specific code; whether it reaches the caller is decided by the
// identity-protection setting at the orchestration layer.
type Code string

const (
	// CodeFailure is the umbrella code surfaced externally when identity
	// protection suppresses detail.
	CodeFailure Code = "FAILURE"

	CodeIdentityNotFound        Code = "IDENTITY_NOT_FOUND"
	CodeMultipleIdentityMatches Code = "MULTIPLE_IDENTITY_MATCHES"
	CodeSecretNotSet            Code = "SECRET_NOT_SET"
	CodeSecretMismatch          Code = "SECRET_MISMATCH"
	CodeTokenNotSet             Code = "TOKEN_NOT_SET"
	CodeTokenMismatch           Code = "TOKEN_MISMATCH"
	CodeTokenExpired            Code = "TOKEN_EXPIRED"
	CodeTokenRedeemed           Code = "TOKEN_REDEEMED"
)

// Outcome is the tagged result of an auth operation.
//
// Success false with an empty Code is a valid terminal state: token
// issuance under identity protection reports failure without any detail at
// all. Callers must treat that distinctly from a failure carrying a code.
type Outcome struct {
	Success bool
	Code    Code
	Item    domain.Item
	ItemID  string
	Token   string
}

func failure(code Code) Outcome {
	return Outcome{Success: false, Code: code}
}
