package middleware

import (
	"context"

	"github.com/scms-platform/identity-service/internal/application/identity"
)

type claimsKey struct{}

// WithClaims stores verified token claims in the request context.
func WithClaims(ctx context.Context, claims identity.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims placed by the auth middleware.
// ok is false on routes the middleware does not guard.
func ClaimsFromContext(ctx context.Context) (identity.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(identity.TokenClaims)
	return claims, ok
}
