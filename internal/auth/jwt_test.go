package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)

	token, err := m.Generate("u1", models.UserRoleInstitution, "inst1")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.UserRoleInstitution, claims.Role)
	assert.Equal(t, "inst1", claims.InstitutionID)
}

func TestParseExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Generate("u1", models.UserRoleApplicant, "")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Minute)
	verifier := NewTokenManager("secret-b", time.Minute)

	token, err := issuer.Generate("u1", models.UserRoleApplicant, "")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)

	_, err := m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse battery", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, IsModerationRole(models.UserRoleAdmin))
	assert.True(t, IsModerationRole(models.UserRoleModerator))
	assert.False(t, IsModerationRole(models.UserRoleApplicant))

	assert.True(t, RegistrableRole(models.UserRoleApplicant))
	assert.True(t, RegistrableRole(models.UserRoleInstitution))
	assert.False(t, RegistrableRole(models.UserRoleAdmin))
}
