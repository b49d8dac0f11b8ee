package fileaccess

import "errors"

var (
	// ErrInvalidLocator means the supplied locator cannot be normalized
	// to a canonical key. A client error, never a deny.
	ErrInvalidLocator = errors.New("invalid storage locator")

	// ErrObjectNotFound means authorization succeeded but the storage
	// backend has no object at the canonical key. Distinct from a deny.
	ErrObjectNotFound = errors.New("object not found in storage")
)

// AccessDeniedError is the terminal deny outcome. Reason is an internal
// audit code; responses to the caller must stay generic.
type AccessDeniedError struct {
	Reason Reason
}

func (e *AccessDeniedError) Error() string {
	return "access denied"
}

// IsAccessDenied reports whether err is a deny and returns its reason.
func IsAccessDenied(err error) (Reason, bool) {
	var denied *AccessDeniedError
	if errors.As(err, &denied) {
		return denied.Reason, true
	}
	return "", false
}
