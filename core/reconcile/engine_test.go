package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_ExactMatch(t *testing.T) {
	remote := Lists{Characters: []Candidate{{ID: "r1", Name: "Mira", Type: "PC"}}}
	local := Lists{Characters: []Candidate{{ID: "l1", Name: "Mira", Type: "player"}}}

	result := Reconcile(remote, local)

	require.Len(t, result.Characters.Remote, 1)
	require.Len(t, result.Characters.Local, 1)
	assert.Equal(t, "l1", result.Characters.Remote[0].Match)
	assert.Equal(t, "r1", result.Characters.Local[0].Match)
	assert.True(t, result.Characters.Remote[0].Selected)
	assert.True(t, result.Characters.Local[0].Selected)
}

func TestReconcile_RenamedRemoteDoesNotMatch(t *testing.T) {
	remote := Lists{Characters: []Candidate{{ID: "r1", Name: "Mira K.", Type: "PC"}}}
	local := Lists{Characters: []Candidate{{ID: "l1", Name: "Mira", Type: "player"}}}

	result := Reconcile(remote, local)

	assert.Empty(t, result.Characters.Remote[0].Match)
	assert.Empty(t, result.Characters.Local[0].Match)
}

func TestReconcile_CaseInsensitive(t *testing.T) {
	remote := Lists{Items: []Candidate{{ID: "r1", Name: "VORPAL SWORD"}}}
	local := Lists{Items: []Candidate{{ID: "l1", Name: "Vorpal Sword"}}}

	result := Reconcile(remote, local)
	assert.Equal(t, "l1", result.Items.Remote[0].Match)
}

func TestReconcile_TypeConstraint(t *testing.T) {
	// A remote PC must not claim an NPC sheet of the same name...
	remote := Lists{Characters: []Candidate{{ID: "r1", Name: "Mira", Type: "PC"}}}
	local := Lists{Characters: []Candidate{
		{ID: "l1", Name: "Mira", Type: "npc"},
		{ID: "l2", Name: "Mira", Type: "player"},
	}}

	result := Reconcile(remote, local)
	assert.Equal(t, "l2", result.Characters.Remote[0].Match)

	// ...but an unset local type accepts any remote type.
	local = Lists{Characters: []Candidate{{ID: "l3", Name: "Mira", Type: ""}}}
	result = Reconcile(remote, local)
	assert.Equal(t, "l3", result.Characters.Remote[0].Match)
}

func TestReconcile_SecondPassNameOnly(t *testing.T) {
	// Pass one rejects the pairing on type; pass two picks it up because
	// both rows are still unmatched.
	remote := Lists{Characters: []Candidate{{ID: "r1", Name: "Old Tom", Type: "NPC"}}}
	local := Lists{Characters: []Candidate{{ID: "l1", Name: "Old Tom", Type: "vehicle"}}}

	result := Reconcile(remote, local)
	assert.Equal(t, "l1", result.Characters.Remote[0].Match)
	assert.Equal(t, "r1", result.Characters.Local[0].Match)
}

func TestReconcile_OneToOne(t *testing.T) {
	// Two remote rows with the same name can only claim distinct locals.
	remote := Lists{Factions: []Candidate{
		{ID: "r1", Name: "The Circle"},
		{ID: "r2", Name: "The Circle"},
	}}
	local := Lists{Factions: []Candidate{{ID: "l1", Name: "The Circle"}}}

	result := Reconcile(remote, local)

	matched := 0
	for _, row := range result.Factions.Remote {
		if row.Match != "" {
			matched++
			assert.Equal(t, "l1", row.Match)
		}
	}
	assert.Equal(t, 1, matched)
}

func TestReconcile_UnmatchedLocalsEmitted(t *testing.T) {
	remote := Lists{}
	local := Lists{Locations: []Candidate{
		{ID: "l1", Name: "The Broken Keep"},
		{ID: "l2", Name: "Duskmere"},
	}}

	result := Reconcile(remote, local)
	require.Len(t, result.Locations.Local, 2)
	for _, row := range result.Locations.Local {
		assert.Empty(t, row.Match)
		assert.True(t, row.Selected)
	}
}

func TestReconcile_Deterministic(t *testing.T) {
	remote := Lists{Characters: []Candidate{
		{ID: "r1", Name: "Mira", Type: "PC"},
		{ID: "r2", Name: "Bran", Type: "NPC"},
		{ID: "r3", Name: "Mira", Type: "NPC"},
	}}
	local := Lists{Characters: []Candidate{
		{ID: "l1", Name: "Bran", Type: "npc"},
		{ID: "l2", Name: "Mira", Type: ""},
		{ID: "l3", Name: "Mira", Type: "player"},
	}}

	first := Reconcile(remote, local)
	second := Reconcile(remote, local)
	assert.Equal(t, first, second)
}

func TestReconcile_SortedByName(t *testing.T) {
	remote := Lists{Items: []Candidate{
		{ID: "r1", Name: "Zweihander"},
		{ID: "r2", Name: "Amulet"},
	}}

	result := Reconcile(remote, Lists{})
	require.Len(t, result.Items.Remote, 2)
	assert.Equal(t, "Amulet", result.Items.Remote[0].Name)
	assert.Equal(t, "Zweihander", result.Items.Remote[1].Name)
}
