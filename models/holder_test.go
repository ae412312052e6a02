package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHolderKind(t *testing.T) {
	kind, err := ParseHolderKind("User")
	require.NoError(t, err)
	assert.Equal(t, HolderKindUser, kind)

	kind, err = ParseHolderKind("Division")
	require.NoError(t, err)
	assert.Equal(t, HolderKindDivision, kind)

	for _, bad := range []string{"", "user", "Team", "Org"} {
		_, err := ParseHolderKind(bad)
		assert.Error(t, err, bad)
	}
}

func TestHolderKindCollectionName(t *testing.T) {
	name, err := HolderKindUser.CollectionName()
	require.NoError(t, err)
	assert.Equal(t, "users", name)

	name, err = HolderKindDivision.CollectionName()
	require.NoError(t, err)
	assert.Equal(t, "divisions", name)

	_, err = HolderKind("Team").CollectionName()
	assert.Error(t, err)
}
