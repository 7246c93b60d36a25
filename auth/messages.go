package auth

import "fmt"

// ListLabels carries the human-readable names of a list for use in error
// messages, e.g. {"user", "users"} for a User list.
type ListLabels struct {
	Singular string
	Plural   string
}

// ErrorMessage renders the human-readable message for a login failure
// code. Identity-protected lists only ever surface CodeFailure, whose text
// is identical regardless of the underlying cause.
func ErrorMessage(code Code, identityField, secretField string, labels ListLabels) string {
	switch code {
	case CodeIdentityNotFound:
		return fmt.Sprintf("The %s provided didn't identify any %s.", identityField, labels.Plural)
	case CodeMultipleIdentityMatches:
		return fmt.Sprintf("The %s provided identified more than one %s.", identityField, labels.Singular)
	case CodeSecretNotSet:
		return fmt.Sprintf("The %s identified has no %s set, so can not be authenticated.", labels.Singular, secretField)
	case CodeSecretMismatch:
		return fmt.Sprintf("The %s provided is incorrect.", secretField)
	}
	return "Authentication failed."
}

// TokenErrorMessage renders the human-readable message for a token
// issuance or redemption failure code.
func TokenErrorMessage(code Code, identityField string, labels ListLabels) string {
	switch code {
	case CodeIdentityNotFound:
		return fmt.Sprintf("The %s provided didn't identify any %s.", identityField, labels.Plural)
	case CodeMultipleIdentityMatches:
		return fmt.Sprintf("The %s provided identified more than one %s.", identityField, labels.Singular)
	case CodeTokenNotSet:
		return fmt.Sprintf("The %s identified has no auth token of this type set.", labels.Singular)
	case CodeTokenMismatch:
		return "The auth token provided didn't match."
	case CodeTokenExpired:
		return "The auth token provided has expired."
	case CodeTokenRedeemed:
		return "Auth tokens are single use and the auth token provided has already been redeemed."
	}
	return "Auth token redemption failed."
}
