package linkgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-sync/feature/world"
)

func TestBuildPrefersOutboundMetadata(t *testing.T) {
	records := []world.Record{
		{
			ID:                   "npc-1",
			Kind:                 world.KindCharacter,
			RelationshipOutbound: `{"items":["item-1"]}`,
			RelationshipRefs:     `["item-2"]`,
		},
		{ID: "item-1", Kind: world.KindItem},
		{ID: "item-2", Kind: world.KindItem},
	}

	g := Build(records)

	assert.Equal(t, []string{"item-1"}, g.Outbound("npc-1").Items)
}

func TestBuildFallsBackToLegacyRefs(t *testing.T) {
	records := []world.Record{
		{
			ID:               "npc-1",
			Kind:             world.KindCharacter,
			RelationshipRefs: `["item-1","loc-1","npc-1-missing"]`,
		},
		{ID: "item-1", Kind: world.KindItem},
		{ID: "loc-1", Kind: world.KindLocation},
	}

	g := Build(records)

	out := g.Outbound("npc-1")
	assert.Equal(t, []string{"item-1"}, out.Items)
	assert.Equal(t, []string{"loc-1"}, out.LocationsAssociative)
	// Dangling ids stay visible as journal references.
	assert.Equal(t, []string{"npc-1-missing"}, out.Entries)
}

func TestBuildFabricatesFromLocalCrossRefs(t *testing.T) {
	records := []world.Record{
		{
			ID:             "journal-1",
			Kind:           world.KindJournal,
			LocalCrossRefs: `["npc-1","faction-1"]`,
		},
		{ID: "npc-1", Kind: world.KindCharacter},
		{ID: "faction-1", Kind: world.KindFaction},
	}

	g := Build(records)

	out := g.Outbound("journal-1")
	assert.Equal(t, []string{"npc-1"}, out.Characters)
	assert.Equal(t, []string{"faction-1"}, out.Factions)
}

func TestBuildLocationForest(t *testing.T) {
	records := []world.Record{
		{ID: "continent", Kind: world.KindLocation},
		{ID: "kingdom", Kind: world.KindLocation, ParentLocationID: "continent"},
		{ID: "city", Kind: world.KindLocation, ParentLocationID: "kingdom"},
		{ID: "port", Kind: world.KindLocation, ParentLocationID: "kingdom"},
	}

	g := Build(records)

	assert.ElementsMatch(t, []string{"city", "port"}, g.ChildrenByLocationID["kingdom"])
	assert.Equal(t, []string{"continent"}, g.AncestorsByLocationID["kingdom"])
	require.Equal(t, []string{"continent", "kingdom"}, g.AncestorsByLocationID["city"],
		"ancestor chains are root-to-parent")
}

func TestBuildSurvivesParentCycle(t *testing.T) {
	// A cycle written by a concurrent editor must neither hang the build
	// nor appear in any chain.
	records := []world.Record{
		{ID: "a", Kind: world.KindLocation, ParentLocationID: "b"},
		{ID: "b", Kind: world.KindLocation, ParentLocationID: "a"},
	}

	g := Build(records)

	for id, chain := range g.AncestorsByLocationID {
		assert.NotContains(t, chain, id)
		assert.LessOrEqual(t, len(chain), 1)
	}
}

func TestBuildSkipsMalformedMetadata(t *testing.T) {
	records := []world.Record{
		{
			ID:                   "npc-1",
			Kind:                 world.KindCharacter,
			RelationshipOutbound: `{not json`,
			RelationshipRefs:     `["item-1"]`,
		},
		{ID: "item-1", Kind: world.KindItem},
	}

	g := Build(records)

	assert.Equal(t, []string{"item-1"}, g.Outbound("npc-1").Items)
}
