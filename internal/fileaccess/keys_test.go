package fileaccess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEquivalentLocators(t *testing.T) {
	n := NewKeyNormalizer("edumatch")

	want := "users/a1/documents/cv.pdf"
	locators := []string{
		"users/a1/documents/cv.pdf",
		"/users/a1/documents/cv.pdf",
		"s3://edumatch/users/a1/documents/cv.pdf",
		"r2://edumatch/users/a1/documents/cv.pdf",
		"https://edumatch.r2.cloudflarestorage.com/users/a1/documents/cv.pdf",
		"https://edumatch.r2.cloudflarestorage.com/users/a1/documents/cv.pdf?X-Amz-Signature=abc&X-Amz-Expires=300",
		"https://storage.example.com/edumatch/users/a1/documents/cv.pdf",
	}

	for _, locator := range locators {
		key, ok := n.Normalize(locator)
		require.True(t, ok, "locator %q should normalize", locator)
		assert.Equal(t, want, key, "locator %q", locator)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewKeyNormalizer("edumatch")

	key, ok := n.Normalize("s3://edumatch/users/a1/documents/cv.pdf")
	require.True(t, ok)

	again, ok := n.Normalize(key)
	require.True(t, ok)
	assert.Equal(t, key, again)
}

func TestNormalizeMalformed(t *testing.T) {
	n := NewKeyNormalizer("edumatch")

	for _, locator := range []string{
		"",
		"   ",
		"/",
		"s3://",
		"s3://bucketonly",
		"../etc/passwd",
		"users/../../etc/passwd",
		"..",
	} {
		_, ok := n.Normalize(locator)
		assert.False(t, ok, "locator %q should be rejected", locator)
	}
}

func TestNormalizeKeepsForeignPathStyleBucket(t *testing.T) {
	n := NewKeyNormalizer("edumatch")

	// A path-style URL whose first segment is not the configured bucket
	// keeps that segment: it is part of the key.
	key, ok := n.Normalize("https://storage.example.com/otherbucket/users/a1/documents/cv.pdf")
	require.True(t, ok)
	assert.Equal(t, "otherbucket/users/a1/documents/cv.pdf", key)
}

func TestNormalizeCleansRedundantSegments(t *testing.T) {
	n := NewKeyNormalizer("edumatch")

	key, ok := n.Normalize("users//a1/./documents/cv.pdf")
	require.True(t, ok)
	assert.Equal(t, "users/a1/documents/cv.pdf", key)
}
