package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_EntityName(t *testing.T) {
	m := buildFixture(t)

	got := Search(m, "stat")

	assert.Contains(t, got.Enums, "Status")
	assert.Empty(t, got.Tables, "users has no member or name containing 'stat'")
	assert.Empty(t, got.Structs)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	m := buildFixture(t)

	assert.Contains(t, Search(m, "STAT").Enums, "Status")
	assert.Contains(t, Search(m, "USERS").Tables, "users")
}

func TestSearch_MemberNameIncludesWholeEntity(t *testing.T) {
	m := buildFixture(t)

	got := Search(m, "nick")

	users, ok := got.Tables["users"]
	require.True(t, ok)
	// Inclusion is per-entity: the non-matching id field stays.
	assert.Len(t, users.Fields, 2)
}

func TestSearch_LeafTypeName(t *testing.T) {
	m := buildFixture(t)

	// nickname is optional string; the leaf type matches.
	got := Search(m, "string")
	assert.Contains(t, got.Tables, "users")

	// id is the Identity special; its label matches too.
	got = Search(m, "identity")
	assert.Contains(t, got.Tables, "users")
}

func TestSearch_VariantName(t *testing.T) {
	m := buildFixture(t)

	got := Search(m, "offline")
	status, ok := got.Enums["Status"]
	require.True(t, ok)
	assert.Len(t, status.Variants, 2)
}

func TestSearch_NoMatchIsEmpty(t *testing.T) {
	m := buildFixture(t)

	got := Search(m, "zzz-not-here")
	assert.True(t, got.Empty())
}

func TestSearch_NameSubstrings(t *testing.T) {
	m := buildFixture(t)

	// Every substring of a matching entity name matches that entity.
	for _, pattern := range []string{"users", "user", "ser", "u"} {
		assert.Contains(t, Search(m, pattern).Tables, "users", "pattern %q", pattern)
	}
}

func TestSearch_DoesNotMutateSource(t *testing.T) {
	m := buildFixture(t)

	_ = Search(m, "zzz-not-here")

	assert.Len(t, m.Tables, 1)
	assert.Len(t, m.Enums, 1)
}
