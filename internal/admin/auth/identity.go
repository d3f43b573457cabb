package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller as reported by the identity provider.
type Identity struct {
	// ExternalID is the token subject; it keys the internal user record.
	ExternalID string
	// Claims are the raw session claims.
	Claims jwt.MapClaims
}

type contextKey string

const (
	identityContextKey contextKey = "identity"
)

// NewContext returns a copy of ctx carrying identity.
func NewContext(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// FromContext returns the identity attached by the interceptor or middleware,
// or nil when the request is unauthenticated.
func FromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityContextKey).(*Identity)
	return identity
}
