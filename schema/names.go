package schema

import "fmt"

// Names holds the operation and type names the auth extension contributes
// for one list. They are derived from the list key so several lists can
// carry independent auth surfaces.
type Names struct {
	AuthenticatedItem string

	AuthenticateItemWithPassword          string
	ItemAuthenticationWithPasswordResult  string
	ItemAuthenticationWithPasswordSuccess string
	ItemAuthenticationWithPasswordFailure string

	SendItemPasswordResetLink       string
	SendItemPasswordResetLinkResult string

	ValidateItemPasswordResetToken       string
	ValidateItemPasswordResetTokenResult string

	RedeemItemPasswordResetToken       string
	RedeemItemPasswordResetTokenResult string
}

// NamesForList derives the wire names for a list key, e.g. "User" yields
// authenticateUserWithPassword, sendUserPasswordResetLink, and so on.
func NamesForList(listKey string) Names {
	return Names{
		AuthenticatedItem: "authenticatedItem",

		AuthenticateItemWithPassword:          fmt.Sprintf("authenticate%sWithPassword", listKey),
		ItemAuthenticationWithPasswordResult:  fmt.Sprintf("%sAuthenticationWithPasswordResult", listKey),
		ItemAuthenticationWithPasswordSuccess: fmt.Sprintf("%sAuthenticationWithPasswordSuccess", listKey),
		ItemAuthenticationWithPasswordFailure: fmt.Sprintf("%sAuthenticationWithPasswordFailure", listKey),

		SendItemPasswordResetLink:       fmt.Sprintf("send%sPasswordResetLink", listKey),
		SendItemPasswordResetLinkResult: fmt.Sprintf("Send%sPasswordResetLinkResult", listKey),

		ValidateItemPasswordResetToken:       fmt.Sprintf("validate%sPasswordResetToken", listKey),
		ValidateItemPasswordResetTokenResult: fmt.Sprintf("Validate%sPasswordResetTokenResult", listKey),

		RedeemItemPasswordResetToken:       fmt.Sprintf("redeem%sPasswordResetToken", listKey),
		RedeemItemPasswordResetTokenResult: fmt.Sprintf("Redeem%sPasswordResetTokenResult", listKey),
	}
}
