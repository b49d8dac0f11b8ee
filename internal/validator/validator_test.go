package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,is-user-role"`
	PostType string `json:"post_type" validate:"omitempty,is-post-type"`
}

func TestValidateOK(t *testing.T) {
	v := New()

	err := v.Validate(samplePayload{
		Email:    "dean@uni.edu",
		Role:     "institution",
		PostType: "scholarship",
	})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(samplePayload{Email: "not-an-email", Role: "applicant"})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "email")
	assert.Equal(t, "Must be a valid email address", verr.Errors["email"])
}

func TestValidateCustomRules(t *testing.T) {
	v := New()

	err := v.Validate(samplePayload{
		Email:    "dean@uni.edu",
		Role:     "superuser",
		PostType: "internship",
	})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Unknown user role", verr.Errors["role"])
	assert.Equal(t, "Unknown post type", verr.Errors["post_type"])
}

func TestValidateMissingRequired(t *testing.T) {
	v := New()

	err := v.Validate(samplePayload{})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "This field is required", verr.Errors["email"])
	assert.Equal(t, "This field is required", verr.Errors["role"])
}
