package httpapi

import (
	"context"

	"github.com/techup/travel-explorer-api/internal/domain"
)

type identityKey struct{}

// WithIdentity binds the authenticated caller to the request context.
// It is set exactly once per request, by the Authenticate middleware.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext reports the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	v, ok := ctx.Value(identityKey{}).(domain.Identity)
	return v, ok && v.UserID > 0
}
