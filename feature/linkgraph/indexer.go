package linkgraph

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"campaign-sync/feature/world"
)

// ErrCycle is returned when a parent change would make a location its own
// ancestor.
var ErrCycle = errors.New("parent change would create a location cycle")

// Store is the slice of the world store the indexer reads and writes.
type Store interface {
	ListAll(ctx context.Context) ([]world.Record, error)
	ListLocations(ctx context.Context) ([]world.Record, error)
	Get(ctx context.Context, id string) (*world.Record, error)
	SetRelationshipMetadata(ctx context.Context, id string, outbound world.OutboundRefs, refs []string) error
	SetParentLocation(ctx context.Context, id, parentID string) error
}

// Indexer owns the graph cache and the relationship-metadata writes that
// invalidate it. Every mutation triggers a wholesale rebuild; readers get a
// snapshot that may be stale until the next rebuild completes.
type Indexer struct {
	store  Store
	logger *zap.Logger

	mu    sync.RWMutex
	graph *Graph
}

// New builds an Indexer over a world store. The graph starts empty; call
// Rebuild before the first read.
func New(store Store, logger *zap.Logger) *Indexer {
	return &Indexer{
		store:  store,
		logger: logger,
		graph:  NewGraph(),
	}
}

// Graph returns the current snapshot.
func (i *Indexer) Graph() *Graph {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.graph
}

// Rebuild re-scans every record and replaces the graph. There is no
// incremental patching; the swap is atomic for readers.
func (i *Indexer) Rebuild(ctx context.Context) error {
	start := time.Now()

	records, err := i.store.ListAll(ctx)
	if err != nil {
		return err
	}
	graph := Build(records)

	i.mu.Lock()
	i.graph = graph
	i.mu.Unlock()

	i.logger.Debug("link graph rebuilt",
		zap.Int("records", len(records)),
		zap.Int("adjacent", len(graph.OutboundByFromID)),
		zap.Int("locationChains", len(graph.AncestorsByLocationID)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// LinkDocs adds each record to the other's outbound bucket and rebuilds.
func (i *Indexer) LinkDocs(ctx context.Context, aID, bID string) error {
	if err := i.editBucket(ctx, aID, bID, appendUnique); err != nil {
		return err
	}
	if err := i.editBucket(ctx, bID, aID, appendUnique); err != nil {
		return err
	}
	return i.Rebuild(ctx)
}

// UnlinkDocs removes each record from the other's outbound bucket and
// rebuilds. Linking then unlinking the same pair restores both records'
// buckets.
func (i *Indexer) UnlinkDocs(ctx context.Context, aID, bID string) error {
	if err := i.editBucket(ctx, aID, bID, removeID); err != nil {
		return err
	}
	if err := i.editBucket(ctx, bID, aID, removeID); err != nil {
		return err
	}
	return i.Rebuild(ctx)
}

// editBucket applies an id edit to the bucket on record fromID that matches
// record toID's kind, persisting the result. Legacy refs pass through
// untouched.
func (i *Indexer) editBucket(ctx context.Context, fromID, toID string, edit func([]string, string) []string) error {
	from, err := i.store.Get(ctx, fromID)
	if err != nil {
		return err
	}
	to, err := i.store.Get(ctx, toID)
	if err != nil {
		return err
	}

	outbound, err := from.Outbound()
	if err != nil {
		return err
	}
	refs, err := from.Refs()
	if err != nil {
		return err
	}

	// A record whose adjacency still lives in the legacy refs list gets
	// those neighbors migrated into outbound buckets first; otherwise the
	// first edit would shadow them, since builds favor outbound.
	if outbound.IsEmpty() && len(refs) > 0 {
		records, err := i.store.ListAll(ctx)
		if err != nil {
			return err
		}
		kindByID := make(map[string]string, len(records))
		for idx := range records {
			kindByID[records[idx].ID] = records[idx].Kind
		}
		outbound = bucketByKind(refs, kindByID)
	}

	bucket := outbound.Bucket(to.Kind)
	if bucket == nil {
		return nil
	}
	*bucket = edit(*bucket, toID)

	return i.store.SetRelationshipMetadata(ctx, fromID, outbound, refs)
}

// SetParentLocation re-parents a location and rebuilds. An empty parentID
// detaches the location. Before committing it walks the prospective
// parent's ancestor chain and refuses when the child appears in it. The
// check is best-effort avoidance, not a transactional guarantee, since a
// concurrent editor can still race it.
func (i *Indexer) SetParentLocation(ctx context.Context, id, parentID string) error {
	if parentID != "" {
		locations, err := i.store.ListLocations(ctx)
		if err != nil {
			return err
		}
		parentByID := make(map[string]string, len(locations))
		for idx := range locations {
			if locations[idx].ParentLocationID != "" {
				parentByID[locations[idx].ID] = locations[idx].ParentLocationID
			}
		}
		if parentID == id || contains(ancestorChain(parentID, parentByID), id) {
			return ErrCycle
		}
	}

	if err := i.store.SetParentLocation(ctx, id, parentID); err != nil {
		return err
	}
	return i.Rebuild(ctx)
}

func contains(list []string, id string) bool {
	for _, existing := range list {
		if existing == id {
			return true
		}
	}
	return false
}
