package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated caller, threaded explicitly through request
// contexts instead of living in package-level state. Every write path scopes
// rows by CompanyID.
type Identity struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
