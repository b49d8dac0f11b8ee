package fileaccess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

func TestIsOwnerUserKeys(t *testing.T) {
	applicant := Actor{ID: "a1", Role: models.UserRoleApplicant}

	assert.True(t, IsOwner(applicant, "users/a1/documents/cv.pdf"))
	assert.False(t, IsOwner(applicant, "users/a2/documents/cv.pdf"))
	assert.False(t, IsOwner(Actor{}, "users/a1/documents/cv.pdf"), "anonymous actor owns nothing")
}

func TestIsOwnerInstitutionKeys(t *testing.T) {
	institution := Actor{ID: "u9", Role: models.UserRoleInstitution, InstitutionID: "inst1"}

	assert.True(t, IsOwner(institution, "institutions/inst1/logo.png"))
	assert.False(t, IsOwner(institution, "institutions/inst2/logo.png"))
	// The key encodes the institution profile id, never the user id.
	assert.False(t, IsOwner(institution, "institutions/u9/logo.png"))

	applicant := Actor{ID: "inst1", Role: models.UserRoleApplicant}
	assert.False(t, IsOwner(applicant, "institutions/inst1/logo.png"), "non-institution role never owns institution keys")
}

func TestIsOwnerMalformedKeys(t *testing.T) {
	actor := Actor{ID: "a1", Role: models.UserRoleApplicant}

	assert.False(t, IsOwner(actor, "users/a1"))
	assert.False(t, IsOwner(actor, "users"))
	assert.False(t, IsOwner(actor, "public/banners/x.png"))
	assert.False(t, IsOwner(actor, "other/a1/x.png"))
}

func TestIsPublicKey(t *testing.T) {
	assert.True(t, IsPublicKey("public/banners/welcome.png"))
	assert.False(t, IsPublicKey("users/a1/documents/cv.pdf"))
	assert.False(t, IsPublicKey("publicish/x.png"))
	assert.False(t, IsPublicKey("public"))
}

func TestOwnerSegment(t *testing.T) {
	owner, ok := OwnerSegment("users/a1/messages/t1/file.png")
	assert.True(t, ok)
	assert.Equal(t, "a1", owner)

	_, ok = OwnerSegment("institutions/inst1/logo.png")
	assert.False(t, ok)

	_, ok = OwnerSegment("users/a1")
	assert.False(t, ok)
}
