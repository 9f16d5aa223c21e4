// Package tenant carries the authenticated caller through a request.
//
// The Context attached by the auth middleware is the only place domain code
// reads an organisation id from; request bodies and query strings are never
// trusted for it.
package tenant

import (
	"context"

	"hrms/utils"
)

type contextKey string

const tenantContextKey contextKey = "tenant_context"

// Context identifies the caller and the organisation they act within.
type Context struct {
	UserID uint `json:"userId"`
	OrgID  uint `json:"orgId"`
}

// WithContext stores the tenant context in ctx.
func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, tenantContextKey, tc)
}

// FromContext retrieves the tenant context from ctx.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(tenantContextKey).(Context)
	if !ok || tc.UserID == 0 || tc.OrgID == 0 {
		return Context{}, false
	}
	return tc, true
}

// Require is FromContext for callers that cannot proceed without a tenant.
func Require(ctx context.Context) (Context, error) {
	tc, ok := FromContext(ctx)
	if !ok {
		return Context{}, utils.NewUnauthenticatedError("Invalid user session.")
	}
	return tc, nil
}
