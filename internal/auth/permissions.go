package auth

import (
	"errors"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

// IsModerationRole reports whether the role carries moderation rights.
func IsModerationRole(role models.UserRole) bool {
	return role == models.UserRoleAdmin || role == models.UserRoleModerator
}

// ValidateRole checks the role is one the system knows.
func ValidateRole(role models.UserRole) error {
	if !models.ValidUserRole(role) {
		return errors.New("invalid role")
	}
	return nil
}

// RegistrableRole reports whether an account with this role can be
// self-registered. Moderation accounts are seeded, never registered.
func RegistrableRole(role models.UserRole) bool {
	return role == models.UserRoleApplicant || role == models.UserRoleInstitution
}
