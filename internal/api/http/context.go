package http

import (
	"context"

	"segurauto-backend/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller attached to the request context by
// the auth middleware.
type Principal struct {
	UserID int64
	Email  string
	Role   domain.UserRole
}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated caller, or nil on
// unauthenticated requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
