package fileaccess

import (
	"context"
	"errors"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/contextkeys"
)

// ErrUnauthenticated is returned when a route that requires an actor is
// called without one.
var ErrUnauthenticated = errors.New("authentication required")

// Actor is the authenticated caller, resolved once per request and
// immutable for the request's lifetime. InstitutionID is set only for
// institution accounts and refers to the institution profile, not the
// user record.
type Actor struct {
	ID            string
	Role          models.UserRole
	InstitutionID string
}

func (a Actor) Authenticated() bool {
	return a.ID != ""
}

// IdentityResolver extracts the acting user from the request context.
type IdentityResolver interface {
	Resolve(ctx context.Context) (Actor, error)
}

// ContextIdentityResolver reads the actor the auth middleware stored in
// the request context.
type ContextIdentityResolver struct{}

func NewContextIdentityResolver() *ContextIdentityResolver {
	return &ContextIdentityResolver{}
}

func (r *ContextIdentityResolver) Resolve(ctx context.Context) (Actor, error) {
	claims, ok := ctx.Value(contextkeys.ActorContextKey).(*contextkeys.ActorClaims)
	if !ok || claims == nil || claims.UserID == "" {
		return Actor{}, ErrUnauthenticated
	}
	return Actor{
		ID:            claims.UserID,
		Role:          models.UserRole(claims.Role),
		InstitutionID: claims.InstitutionID,
	}, nil
}
