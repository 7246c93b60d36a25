package schema

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/loomcms/loom/auth"
	"github.com/loomcms/loom/domain"
	"github.com/loomcms/loom/logger"
)

// RedemptionFailure is the failure shape shared by the reset-token
// operations. A nil result means success.
type RedemptionFailure struct {
	Code    auth.Code `json:"code"`
	Message string    `json:"message"`
}

// PasswordResetSchema builds the extension carrying the reset-token
// lifecycle for one list: send link, validate token, redeem token.
func PasswordResetSchema(tokens *auth.TokenManager, sender domain.TokenSender, cfg auth.Config, names Names) Extension {
	typeDefs := fmt.Sprintf(`
      # Reset password
      type Mutation {
        %[1]s(%[3]s: String!): %[2]s
      }
      type %[2]s {
        code: PasswordResetRequestErrorCode!
        message: String!
      }
      enum PasswordResetRequestErrorCode {
        IDENTITY_NOT_FOUND
        MULTIPLE_IDENTITY_MATCHES
      }
      type Query {
        %[4]s(%[3]s: String!, token: String!): %[5]s
      }
      type %[5]s {
        code: PasswordResetRedemptionErrorCode!
        message: String!
      }
      type Mutation {
        %[6]s(%[3]s: String!, token: String!, %[8]s: String!): %[7]s
      }
      type %[7]s {
        code: PasswordResetRedemptionErrorCode!
        message: String!
      }
      enum PasswordResetRedemptionErrorCode {
        FAILURE
        IDENTITY_NOT_FOUND
        MULTIPLE_IDENTITY_MATCHES
        TOKEN_NOT_SET
        TOKEN_MISMATCH
        TOKEN_EXPIRED
        TOKEN_REDEEMED
      }
    `,
		names.SendItemPasswordResetLink,
		names.SendItemPasswordResetLinkResult,
		cfg.IdentityField,
		names.ValidateItemPasswordResetToken,
		names.ValidateItemPasswordResetTokenResult,
		names.RedeemItemPasswordResetToken,
		names.RedeemItemPasswordResetTokenResult,
		cfg.SecretField,
	)

	labels := cfg.MessageLabels()

	tokenFailure := func(code auth.Code) *RedemptionFailure {
		return &RedemptionFailure{
			Code:    code,
			Message: auth.TokenErrorMessage(code, cfg.IdentityField, labels),
		}
	}

	return Extension{
		TypeDefs: typeDefs,
		Resolvers: map[string]map[string]Resolver{
			"Mutation": {
				names.SendItemPasswordResetLink: func(root any, args map[string]any, rc *Context) (any, error) {
					identity := argString(args, cfg.IdentityField)

					out, err := tokens.Issue(rc.ctx(), identity)
					if err != nil {
						return nil, err
					}
					// Success can be false with no code: the
					// suppressed-detail path renders the same neutral
					// response as success.
					if !out.Success && out.Code != "" {
						return tokenFailure(out.Code), nil
					}
					if out.Success {
						if err := sender.SendToken(rc.ctx(), out.ItemID, identity, out.Token); err != nil {
							// The token is already persisted; delivery
							// failure must not unwind it.
							logger.L().Error("failed to send reset token",
								zap.String("list", cfg.ListKey),
								zap.Error(err),
							)
						}
					}
					return nil, nil
				},
				names.RedeemItemPasswordResetToken: func(root any, args map[string]any, rc *Context) (any, error) {
					identity := argString(args, cfg.IdentityField)
					token := argString(args, "token")
					secret := argString(args, cfg.SecretField)

					out, err := tokens.Redeem(rc.ctx(), identity, token, secret)
					var serr *auth.SecretUpdateError
					if errors.As(err, &serr) {
						// The token is spent; the secret problem is its
						// own error class, surfaced to the caller.
						return nil, serr
					}
					if err != nil {
						return nil, err
					}
					if !out.Success {
						return tokenFailure(out.Code), nil
					}
					return nil, nil
				},
			},
			"Query": {
				names.ValidateItemPasswordResetToken: func(root any, args map[string]any, rc *Context) (any, error) {
					identity := argString(args, cfg.IdentityField)
					token := argString(args, "token")

					out, err := tokens.Validate(rc.ctx(), identity, token)
					if err != nil {
						return nil, err
					}
					if !out.Success && out.Code != "" {
						return tokenFailure(out.Code), nil
					}
					return nil, nil
				},
			},
		},
	}
}
