package linkgraph

import (
	"campaign-sync/feature/world"
)

// Graph is the derived relationship index over world records. Record
// metadata stays authoritative; the graph is a rebuildable cache and is
// never written back.
type Graph struct {
	// OutboundByFromID holds the kind-bucketed directional adjacency per
	// record id.
	OutboundByFromID map[string]world.OutboundRefs

	// ChildrenByLocationID maps a location to its direct child locations.
	ChildrenByLocationID map[string][]string

	// AncestorsByLocationID maps a location to its ancestor chain in
	// root-to-parent order. Chains never contain a revisited id.
	AncestorsByLocationID map[string][]string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		OutboundByFromID:      map[string]world.OutboundRefs{},
		ChildrenByLocationID:  map[string][]string{},
		AncestorsByLocationID: map[string][]string{},
	}
}

// Outbound returns the adjacency buckets for a record id. Missing ids get
// the zero value.
func (g *Graph) Outbound(id string) world.OutboundRefs {
	return g.OutboundByFromID[id]
}

// Build scans every record's persisted relationship metadata and produces a
// fresh graph. Cost is linear in record count; lookups afterwards are
// constant time.
func Build(records []world.Record) *Graph {
	g := NewGraph()

	kindByID := make(map[string]string, len(records))
	for i := range records {
		kindByID[records[i].ID] = records[i].Kind
	}

	for i := range records {
		r := &records[i]
		out := outboundFor(r, kindByID)
		if !out.IsEmpty() {
			g.OutboundByFromID[r.ID] = out
		}
	}

	buildLocationForest(g, records)
	return g
}

// outboundFor resolves a record's adjacency: the directional outbound field
// when present, the legacy symmetric refs list bucketed by target kind as a
// fallback, and the local cross-reference superset when both are absent.
// Malformed metadata degrades to the next source rather than failing the
// whole build.
func outboundFor(r *world.Record, kindByID map[string]string) world.OutboundRefs {
	if out, err := r.Outbound(); err == nil && !out.IsEmpty() {
		return out
	}

	if refs, err := r.Refs(); err == nil && len(refs) > 0 {
		return bucketByKind(refs, kindByID)
	}

	return bucketByKind(r.LocalCrossRefList(), kindByID)
}

// bucketByKind sorts a flat id list into kind buckets. Ids whose record no
// longer exists land in the journal bucket so the reference stays visible.
func bucketByKind(ids []string, kindByID map[string]string) world.OutboundRefs {
	var out world.OutboundRefs
	for _, id := range ids {
		kind, ok := kindByID[id]
		if !ok {
			kind = world.KindJournal
		}
		bucket := out.Bucket(kind)
		if bucket == nil {
			continue
		}
		*bucket = appendUnique(*bucket, id)
	}
	return out
}

// buildLocationForest fills the children and ancestor maps from location
// parent pointers. The ancestor walk keeps a seen set and stops silently on
// a revisit, so a cycle written by a concurrent editor cannot hang the
// build or surface in any chain.
func buildLocationForest(g *Graph, records []world.Record) {
	parentByID := make(map[string]string)
	for i := range records {
		r := &records[i]
		if r.Kind != world.KindLocation {
			continue
		}
		if r.ParentLocationID != "" {
			parentByID[r.ID] = r.ParentLocationID
			g.ChildrenByLocationID[r.ParentLocationID] = append(g.ChildrenByLocationID[r.ParentLocationID], r.ID)
		}
	}

	for id := range parentByID {
		g.AncestorsByLocationID[id] = ancestorChain(id, parentByID)
	}
}

// ancestorChain walks parent pointers from id upward and returns the chain
// in root-to-parent order.
func ancestorChain(id string, parentByID map[string]string) []string {
	seen := map[string]struct{}{id: {}}
	var chain []string

	current := parentByID[id]
	for current != "" {
		if _, revisited := seen[current]; revisited {
			break
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
		current = parentByID[current]
	}

	// Collected parent-to-root; reverse for root-to-parent order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func appendUnique(list []string, id string) []string {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

func removeID(list []string, id string) []string {
	out := list[:0]
	for _, existing := range list {
		if existing != id {
			out = append(out, existing)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
