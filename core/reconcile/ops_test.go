package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertSymmetric fails if any matched row's counterpart does not point back.
func assertSymmetric(t *testing.T, p *Pair) {
	t.Helper()
	for _, row := range p.Remote {
		if row.Match == "" {
			continue
		}
		counterpart := findRow(p.Local, row.Match)
		require.NotNil(t, counterpart)
		assert.Equal(t, row.ID, counterpart.Match)
	}
	for _, row := range p.Local {
		if row.Match == "" {
			continue
		}
		counterpart := findRow(p.Remote, row.Match)
		require.NotNil(t, counterpart)
		assert.Equal(t, row.ID, counterpart.Match)
	}
}

func matchedPair() Pair {
	remote := Lists{Characters: []Candidate{
		{ID: "r1", Name: "Mira", Type: "PC"},
		{ID: "r2", Name: "Bran", Type: "NPC"},
	}}
	local := Lists{Characters: []Candidate{
		{ID: "l1", Name: "Mira", Type: "player"},
		{ID: "l2", Name: "Bran", Type: "npc"},
	}}
	return Reconcile(remote, local).Characters
}

func TestToggle_PropagatesToCounterpart(t *testing.T) {
	pair := matchedPair()

	require.True(t, pair.Toggle(SideRemote, "r1"))

	assert.False(t, findRow(pair.Remote, "r1").Selected)
	assert.False(t, findRow(pair.Local, "l1").Selected)
	// The other pairing is untouched.
	assert.True(t, findRow(pair.Remote, "r2").Selected)

	// Toggling back from the local side restores both.
	require.True(t, pair.Toggle(SideLocal, "l1"))
	assert.True(t, findRow(pair.Remote, "r1").Selected)
	assert.True(t, findRow(pair.Local, "l1").Selected)
}

func TestToggle_UnknownRow(t *testing.T) {
	pair := matchedPair()
	assert.False(t, pair.Toggle(SideRemote, "nope"))
}

func TestRematch_ClearsPriorLinks(t *testing.T) {
	pair := matchedPair()

	// Cross the pairings: r1 now matches l2.
	require.NoError(t, pair.Rematch("r1", "l2"))

	assert.Equal(t, "l2", findRow(pair.Remote, "r1").Match)
	assert.Equal(t, "r1", findRow(pair.Local, "l2").Match)
	// Both previous counterparts were released.
	assert.Empty(t, findRow(pair.Local, "l1").Match)
	assert.Empty(t, findRow(pair.Remote, "r2").Match)

	assertSymmetric(t, &pair)
}

func TestRematch_Unmatch(t *testing.T) {
	pair := matchedPair()

	require.NoError(t, pair.Rematch("r1", ""))
	assert.Empty(t, findRow(pair.Remote, "r1").Match)
	assert.Empty(t, findRow(pair.Local, "l1").Match)
	assertSymmetric(t, &pair)
}

func TestRematch_UnknownIDs(t *testing.T) {
	pair := matchedPair()
	assert.Error(t, pair.Rematch("nope", "l1"))
	assert.Error(t, pair.Rematch("r1", "nope"))
	// Failed rematch leaves the pairing untouched.
	assert.Equal(t, "l1", findRow(pair.Remote, "r1").Match)
	assertSymmetric(t, &pair)
}

func TestSymmetry_UnderOperationSequences(t *testing.T) {
	pair := matchedPair()

	require.NoError(t, pair.Rematch("r1", "l2"))
	pair.Toggle(SideRemote, "r1")
	require.NoError(t, pair.Rematch("r2", "l1"))
	pair.Toggle(SideLocal, "l1")
	require.NoError(t, pair.Rematch("r1", ""))
	require.NoError(t, pair.Rematch("r1", "l1"))

	assertSymmetric(t, &pair)
}
