package linkgraph

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campaign-sync/feature/world"
)

// fakeStore is an in-memory Store for indexer tests.
type fakeStore struct {
	records map[string]*world.Record
}

func newFakeStore(records ...world.Record) *fakeStore {
	f := &fakeStore{records: map[string]*world.Record{}}
	for i := range records {
		r := records[i]
		f.records[r.ID] = &r
	}
	return f
}

func (f *fakeStore) ListAll(context.Context) ([]world.Record, error) {
	ids := make([]string, 0, len(f.records))
	for id := range f.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]world.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.records[id])
	}
	return out, nil
}

func (f *fakeStore) ListLocations(ctx context.Context) ([]world.Record, error) {
	all, _ := f.ListAll(ctx)
	var out []world.Record
	for _, r := range all {
		if r.Kind == world.KindLocation {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*world.Record, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, world.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeStore) SetRelationshipMetadata(_ context.Context, id string, outbound world.OutboundRefs, refs []string) error {
	r, ok := f.records[id]
	if !ok {
		return world.ErrRecordNotFound
	}
	r.RelationshipOutbound = encodeOrEmpty(outbound, outbound.IsEmpty())
	r.RelationshipRefs = encodeOrEmpty(refs, len(refs) == 0)
	return nil
}

func (f *fakeStore) SetParentLocation(_ context.Context, id, parentID string) error {
	r, ok := f.records[id]
	if !ok {
		return world.ErrRecordNotFound
	}
	r.ParentLocationID = parentID
	return nil
}

func encodeOrEmpty(v any, empty bool) string {
	if empty {
		return ""
	}
	raw, _ := json.Marshal(v)
	return string(raw)
}

func newTestIndexer(t *testing.T, records ...world.Record) (*Indexer, *fakeStore) {
	t.Helper()
	store := newFakeStore(records...)
	idx := New(store, zap.NewNop())
	require.NoError(t, idx.Rebuild(context.Background()))
	return idx, store
}

func TestLinkDocsIsSymmetric(t *testing.T) {
	idx, _ := newTestIndexer(t,
		world.Record{ID: "npc-1", Kind: world.KindCharacter},
		world.Record{ID: "item-1", Kind: world.KindItem},
	)

	require.NoError(t, idx.LinkDocs(context.Background(), "npc-1", "item-1"))

	g := idx.Graph()
	assert.Equal(t, []string{"item-1"}, g.Outbound("npc-1").Items)
	assert.Equal(t, []string{"npc-1"}, g.Outbound("item-1").Characters)
}

func TestUnlinkDocsRestoresMetadata(t *testing.T) {
	idx, store := newTestIndexer(t,
		world.Record{ID: "npc-1", Kind: world.KindCharacter, RelationshipOutbound: `{"factions":["faction-1"]}`},
		world.Record{ID: "item-1", Kind: world.KindItem},
		world.Record{ID: "faction-1", Kind: world.KindFaction},
	)
	before := store.records["npc-1"].RelationshipOutbound

	ctx := context.Background()
	require.NoError(t, idx.LinkDocs(ctx, "npc-1", "item-1"))
	require.NoError(t, idx.UnlinkDocs(ctx, "npc-1", "item-1"))

	assert.Equal(t, before, store.records["npc-1"].RelationshipOutbound)
	assert.Empty(t, store.records["item-1"].RelationshipOutbound)
	assert.Empty(t, idx.Graph().Outbound("item-1").Characters)
}

func TestLinkDocsMigratesLegacyRefs(t *testing.T) {
	// A record whose only adjacency is the legacy refs list keeps those
	// neighbors when a new link writes its first outbound bucket.
	idx, store := newTestIndexer(t,
		world.Record{ID: "npc-1", Kind: world.KindCharacter, RelationshipRefs: `["item-old"]`},
		world.Record{ID: "item-old", Kind: world.KindItem},
		world.Record{ID: "item-new", Kind: world.KindItem},
	)

	require.NoError(t, idx.LinkDocs(context.Background(), "npc-1", "item-new"))

	out := idx.Graph().Outbound("npc-1")
	assert.Equal(t, []string{"item-old", "item-new"}, out.Items)
	assert.NotEmpty(t, store.records["npc-1"].RelationshipOutbound)
}

func TestLinkDocsDeduplicates(t *testing.T) {
	idx, _ := newTestIndexer(t,
		world.Record{ID: "npc-1", Kind: world.KindCharacter},
		world.Record{ID: "item-1", Kind: world.KindItem},
	)

	ctx := context.Background()
	require.NoError(t, idx.LinkDocs(ctx, "npc-1", "item-1"))
	require.NoError(t, idx.LinkDocs(ctx, "npc-1", "item-1"))

	assert.Equal(t, []string{"item-1"}, idx.Graph().Outbound("npc-1").Items)
}

func TestLinkDocsUnknownRecord(t *testing.T) {
	idx, _ := newTestIndexer(t,
		world.Record{ID: "npc-1", Kind: world.KindCharacter},
	)

	err := idx.LinkDocs(context.Background(), "npc-1", "ghost")

	assert.ErrorIs(t, err, world.ErrRecordNotFound)
}

func TestSetParentLocationRefusesCycle(t *testing.T) {
	idx, store := newTestIndexer(t,
		world.Record{ID: "continent", Kind: world.KindLocation},
		world.Record{ID: "kingdom", Kind: world.KindLocation, ParentLocationID: "continent"},
		world.Record{ID: "city", Kind: world.KindLocation, ParentLocationID: "kingdom"},
	)

	ctx := context.Background()

	// A location cannot become a child of its own descendant, or of itself.
	assert.ErrorIs(t, idx.SetParentLocation(ctx, "continent", "city"), ErrCycle)
	assert.ErrorIs(t, idx.SetParentLocation(ctx, "kingdom", "kingdom"), ErrCycle)
	assert.Empty(t, store.records["continent"].ParentLocationID)

	// Reparenting within the forest is fine.
	require.NoError(t, idx.SetParentLocation(ctx, "city", "continent"))
	assert.Equal(t, []string{"continent"}, idx.Graph().AncestorsByLocationID["city"])
}

func TestSetParentLocationDetach(t *testing.T) {
	idx, store := newTestIndexer(t,
		world.Record{ID: "continent", Kind: world.KindLocation},
		world.Record{ID: "kingdom", Kind: world.KindLocation, ParentLocationID: "continent"},
	)

	require.NoError(t, idx.SetParentLocation(context.Background(), "kingdom", ""))

	assert.Empty(t, store.records["kingdom"].ParentLocationID)
	assert.Empty(t, idx.Graph().AncestorsByLocationID["kingdom"])
}
