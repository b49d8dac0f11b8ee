package contextkeys

// Custom key type avoids collisions with other context values.
type contextKey string

// ActorContextKey holds the *ActorClaims the auth middleware resolved for
// the request.
const ActorContextKey = contextKey("actor")

// ActorClaims is the authenticated-user record carried through the
// request context. InstitutionID is set for institution accounts only.
type ActorClaims struct {
	UserID        string
	Role          string
	InstitutionID string
}
