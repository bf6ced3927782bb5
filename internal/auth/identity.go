package auth

import (
	"context"

	"github.com/openboard/service-jobboard-go/pkg/apperr"
)

// Identity is the authenticated principal for the current request, derived
// from a verified access token. Nil means the request is anonymous.
type Identity struct {
	Username string
	IsAdmin  bool
}

type identityKey struct{}

// WithIdentity stores the caller identity in the request context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller identity, or nil for anonymous requests.
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// RequireLoggedIn rejects anonymous callers.
func RequireLoggedIn(id *Identity) error {
	if id == nil {
		return apperr.Unauthorized("login required")
	}
	return nil
}

// RequireAdmin rejects callers without the admin flag.
func RequireAdmin(id *Identity) error {
	if id == nil || !id.IsAdmin {
		return apperr.Unauthorized("admin privileges required")
	}
	return nil
}

// RequireOwnerOrAdmin allows admins and the user whose resource is being
// touched, nobody else.
func RequireOwnerOrAdmin(id *Identity, target string) error {
	if id == nil {
		return apperr.Unauthorized("login required")
	}
	if id.IsAdmin || id.Username == target {
		return nil
	}
	return apperr.Unauthorized("requires admin or account owner")
}
