package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotDocumentIDRoundTrip(t *testing.T) {
	s := &ApplicationSnapshot{ApplicationID: "app1"}
	require.NoError(t, s.SetDocumentIDs([]string{"d1", "d2"}))

	ids, err := s.DocumentIDList()
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, ids)

	assert.True(t, s.ContainsDocument("d1"))
	assert.True(t, s.ContainsDocument("d2"))
	assert.False(t, s.ContainsDocument("d3"))
}

func TestSnapshotEmpty(t *testing.T) {
	s := &ApplicationSnapshot{ApplicationID: "app1"}

	ids, err := s.DocumentIDList()
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.False(t, s.ContainsDocument("d1"))
}
