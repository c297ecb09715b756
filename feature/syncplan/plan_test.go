package syncplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-sync/core/reconcile"
	"campaign-sync/core/remote"
)

func TestBuild_MatchedPairBecomesLink(t *testing.T) {
	// One remote PC "Mira" matched against one local player record: a
	// single link job and nothing to import or export.
	result := &reconcile.Result{
		Characters: reconcile.Pair{
			Remote: []reconcile.Row{{ID: "r1", Name: "Mira", Type: "PC", Selected: true, Match: "l1"}},
			Local:  []reconcile.Row{{ID: "l1", Name: "Mira", Type: "player", Selected: true, Match: "r1"}},
		},
	}
	snapshot := &Snapshot{
		Characters: []remote.Character{{ID: "r1", Name: "Mira", Type: "PC"}},
	}

	plan := Build(result, snapshot, Choices{})

	require.Equal(t, 1, plan.Total())
	require.Len(t, plan.RemoteOps, 1)
	assert.Equal(t, OpLink, plan.RemoteOps[0].Op)
	assert.Equal(t, "r1", plan.RemoteOps[0].RemoteID)
	assert.Equal(t, "l1", plan.RemoteOps[0].LocalID)
	assert.Equal(t, Counter{Links: 1}, plan.Counters[reconcile.CategoryCharacters])
}

func TestBuild_UnmatchedRowsSplit(t *testing.T) {
	// Remote renamed to "Mira K.": no match, so the remote row becomes an
	// import candidate and the local row an export.
	result := &reconcile.Result{
		Characters: reconcile.Pair{
			Remote: []reconcile.Row{{ID: "r1", Name: "Mira K.", Type: "PC", Selected: true}},
			Local:  []reconcile.Row{{ID: "l1", Name: "Mira", Type: "player", Selected: true}},
		},
	}
	snapshot := &Snapshot{
		Characters: []remote.Character{{ID: "r1", Name: "Mira K.", Type: "PC", Description: "The party's scout."}},
	}

	plan := Build(result, snapshot, Choices{})

	require.Len(t, plan.ImportReferences, 1)
	assert.Equal(t, OpImportReference, plan.ImportReferences[0].Op)
	assert.Equal(t, "The party's scout.", plan.ImportReferences[0].Description)

	require.Len(t, plan.RemoteOps, 1)
	assert.Equal(t, OpExport, plan.RemoteOps[0].Op)
	assert.Equal(t, Counter{Imports: 1, Exports: 1}, plan.Counters[reconcile.CategoryCharacters])
}

func TestBuild_OptInUpgradesImport(t *testing.T) {
	result := &reconcile.Result{
		Items: reconcile.Pair{
			Remote: []reconcile.Row{{ID: "r-item", Name: "Sunblade", Selected: true}},
		},
	}
	snapshot := &Snapshot{
		Items: []remote.Item{{ID: "r-item", Name: "Sunblade"}},
	}
	choices := Choices{CreateLocally: map[string]bool{"r-item": true}}

	plan := Build(result, snapshot, choices)

	require.Len(t, plan.CreateLocal, 1)
	assert.Equal(t, OpCreateLocal, plan.CreateLocal[0].Op)
	assert.Empty(t, plan.ImportReferences)
}

func TestBuild_FactionsImportOnly(t *testing.T) {
	result := &reconcile.Result{
		Factions: reconcile.Pair{
			Remote: []reconcile.Row{{ID: "r-f", Name: "Iron Pact", Selected: true}},
			Local:  []reconcile.Row{{ID: "l-f", Name: "Silver Hand", Selected: true}},
		},
	}
	snapshot := &Snapshot{
		Factions: []remote.Faction{{ID: "r-f", Name: "Iron Pact"}},
	}

	plan := Build(result, snapshot, Choices{})

	// Factions import in full without an opt-in and never export.
	require.Len(t, plan.CreateLocal, 1)
	assert.Equal(t, "Iron Pact", plan.CreateLocal[0].Name)
	assert.Empty(t, plan.RemoteOps)
	assert.Equal(t, Counter{Imports: 1}, plan.Counters[reconcile.CategoryFactions])
}

func TestBuild_DeselectedRowsIgnored(t *testing.T) {
	result := &reconcile.Result{
		Items: reconcile.Pair{
			Remote: []reconcile.Row{{ID: "r-item", Name: "Sunblade", Selected: false}},
			Local:  []reconcile.Row{{ID: "l-item", Name: "Moonstaff", Selected: false}},
		},
	}

	plan := Build(result, &Snapshot{}, Choices{})

	assert.Zero(t, plan.Total())
}

func TestBuild_RecapsSortedByDateAscending(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	snapshot := &Snapshot{
		Sessions: []remote.Session{
			{ID: "s3", Title: "Third", Date: day(21)},
			{ID: "s1", Title: "First", Date: day(7)},
			{ID: "s2", Title: "Second", Date: day(14)},
		},
	}

	plan := Build(&reconcile.Result{}, snapshot, Choices{})

	require.Len(t, plan.Recaps, 3)
	assert.Equal(t, "First", plan.Recaps[0].Name)
	assert.Equal(t, "Second", plan.Recaps[1].Name)
	assert.Equal(t, "Third", plan.Recaps[2].Name)
}

func TestBuild_LocationParentCarried(t *testing.T) {
	result := &reconcile.Result{
		Locations: reconcile.Pair{
			Remote: []reconcile.Row{{ID: "r-city", Name: "Duskport", Selected: true}},
		},
	}
	snapshot := &Snapshot{
		Locations: []remote.Location{{ID: "r-city", Name: "Duskport", ParentID: "r-kingdom"}},
	}
	choices := Choices{CreateLocally: map[string]bool{"r-city": true}}

	plan := Build(result, snapshot, choices)

	require.Len(t, plan.CreateLocal, 1)
	assert.Equal(t, "r-kingdom", plan.CreateLocal[0].ParentID)
}
