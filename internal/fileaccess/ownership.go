package fileaccess

import (
	"strings"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

// Storage key classes. Every object key starts with one of these
// segments; the second segment encodes the owner.
const (
	keyClassUsers        = "users"
	keyClassInstitutions = "institutions"
	keyClassPublic       = "public"
)

// IsOwner reports whether the actor directly owns the object at the
// canonical key, from the key's structure alone. Pure function, no I/O;
// always checked before relationship resolution.
func IsOwner(actor Actor, key string) bool {
	class, owner, ok := splitKey(key)
	if !ok {
		return false
	}
	switch class {
	case keyClassUsers:
		return actor.ID != "" && owner == actor.ID
	case keyClassInstitutions:
		// Institution objects are owned by the institution, not by the
		// individual user record that uploaded them.
		return actor.Role == models.UserRoleInstitution && actor.InstitutionID != "" && owner == actor.InstitutionID
	}
	return false
}

// IsPublicKey reports whether the key belongs to the public object class.
func IsPublicKey(key string) bool {
	return strings.HasPrefix(key, keyClassPublic+"/")
}

// OwnerSegment returns the user id encoded in a users/-class key.
func OwnerSegment(key string) (string, bool) {
	class, owner, ok := splitKey(key)
	if !ok || class != keyClassUsers {
		return "", false
	}
	return owner, true
}

// splitKey extracts the class and owner segments. A well-formed owned key
// has at least class/owner/object.
func splitKey(key string) (class, owner string, ok bool) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
