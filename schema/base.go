package schema

import (
	"fmt"

	"github.com/loomcms/loom/auth"
	"github.com/loomcms/loom/domain"
)

// AuthSuccess is the success shape of the password-authentication result
// union.
type AuthSuccess struct {
	SessionToken string      `json:"sessionToken"`
	Item         domain.Item `json:"item"`
}

// AuthFailure is the failure shape of the password-authentication result
// union.
type AuthFailure struct {
	Code    auth.Code `json:"code"`
	Message string    `json:"message"`
}

// BaseAuthSchema builds the extension carrying the password login mutation
// and the authenticatedItem query for one list.
func BaseAuthSchema(authn *auth.Authenticator, cfg auth.Config, names Names) Extension {
	typeDefs := fmt.Sprintf(`
      # Auth
      union AuthenticatedItem = %[1]s
      type Query {
        authenticatedItem: AuthenticatedItem
      }
      # Password auth
      type Mutation {
        %[2]s(%[3]s: String!, %[4]s: String!): %[5]s!
      }
      union %[5]s = %[6]s | %[7]s
      type %[6]s {
        sessionToken: String!
        item: %[1]s!
      }
      type %[7]s {
        code: PasswordAuthErrorCode!
        message: String!
      }
      enum PasswordAuthErrorCode {
        FAILURE
        IDENTITY_NOT_FOUND
        SECRET_NOT_SET
        MULTIPLE_IDENTITY_MATCHES
        SECRET_MISMATCH
      }
    `,
		cfg.ListKey,
		names.AuthenticateItemWithPassword,
		cfg.IdentityField,
		cfg.SecretField,
		names.ItemAuthenticationWithPasswordResult,
		names.ItemAuthenticationWithPasswordSuccess,
		names.ItemAuthenticationWithPasswordFailure,
	)

	labels := cfg.MessageLabels()

	return Extension{
		TypeDefs: typeDefs,
		Resolvers: map[string]map[string]Resolver{
			"Mutation": {
				names.AuthenticateItemWithPassword: func(root any, args map[string]any, rc *Context) (any, error) {
					identity := argString(args, cfg.IdentityField)
					secret := argString(args, cfg.SecretField)

					out, err := authn.Authenticate(rc.ctx(), identity, secret)
					if err != nil {
						return nil, err
					}
					if !out.Success {
						return AuthFailure{
							Code:    out.Code,
							Message: auth.ErrorMessage(out.Code, cfg.IdentityField, cfg.SecretField, labels),
						}, nil
					}

					token, err := rc.StartSession(cfg.ListKey, out.ItemID)
					if err != nil {
						return nil, err
					}
					return AuthSuccess{SessionToken: token, Item: out.Item}, nil
				},
			},
			"Query": {
				names.AuthenticatedItem: func(root any, args map[string]any, rc *Context) (any, error) {
					sess := rc.Session
					if sess == nil || sess.ItemID == "" || sess.ListKey == "" {
						return nil, nil
					}
					items, err := rc.Items.FindMany(rc.ctx(), sess.ListKey, map[string]any{"id": sess.ItemID})
					if err != nil {
						return nil, err
					}
					if len(items) == 0 {
						return nil, nil
					}
					return items[0], nil
				},
			},
		},
	}
}
