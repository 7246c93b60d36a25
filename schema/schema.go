// Package schema exposes the auth operations as a schema extension: a
// type-definition string plus a resolver mapping keyed by type and field
// name, in the shape the Loom schema-stitching mechanism consumes.
//
// The package does not execute GraphQL itself. Resolvers follow the
// (root, args, context) calling convention, where the context carries the
// item store, the current session, and the session factory as explicit
// dependencies.
package schema

import (
	"context"

	"github.com/loomcms/loom/domain"
	"github.com/loomcms/loom/session"
)

// Resolver is a single field resolver.
type Resolver func(root any, args map[string]any, rc *Context) (any, error)

// Context carries the per-request collaborators a resolver may use.
type Context struct {
	// Ctx is the request context, propagated into item-store calls.
	Ctx context.Context

	// Items is the item store behind every configured list.
	Items domain.ItemStore

	// Session is the decoded session of the current request, or nil.
	Session *session.Session

	// StartSession mints a session token for an item after login.
	StartSession func(listKey, itemID string) (string, error)
}

func (rc *Context) ctx() context.Context {
	if rc.Ctx != nil {
		return rc.Ctx
	}
	return context.Background()
}

// Extension is a stitchable schema fragment: SDL type definitions plus the
// resolvers for them, keyed by type name then field name.
type Extension struct {
	TypeDefs  string
	Resolvers map[string]map[string]Resolver
}

func argString(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}
