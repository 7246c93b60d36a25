package auth

// Purpose names a token workflow and fixes the three item fields it
// operates on. Several purposes (password reset, email verification, ...)
// can coexist on one list, each with its own field triple.
//
// Field names are derived once at construction so call sites never build
// them ad hoc.
type Purpose struct {
	Name            string
	TokenField      string
	IssuedAtField   string
	RedeemedAtField string
}

// NewPurpose derives the field triple for a named token purpose:
// {name}Token, {name}IssuedAt and {name}RedeemedAt.
func NewPurpose(name string) Purpose {
	return Purpose{
		Name:            name,
		TokenField:      name + "Token",
		IssuedAtField:   name + "IssuedAt",
		RedeemedAtField: name + "RedeemedAt",
	}
}

// PasswordReset is the stock purpose used by the password-reset flow.
var PasswordReset = NewPurpose("passwordReset")
