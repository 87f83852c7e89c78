package auth

import (
	"context"
	"time"
)

// Claims is the verified identity of a request.
type Claims struct {
	UserID    int
	TokenID   string
	ExpiresAt time.Time
}

type contextKey string

const claimsKey contextKey = "evolvx-auth-claims"

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// UserIDFromContext returns the requester's user id, if the request was authenticated.
func UserIDFromContext(ctx context.Context) (int, bool) {
	claims, ok := FromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
