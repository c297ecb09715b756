// Package linkgraph maintains the derived relationship index over world
// records.
//
// Record metadata is the source of truth: the kind-bucketed outbound id
// lists, the legacy symmetric refs list, and the location parent pointer.
// The Graph is a cache built by scanning all of it in one pass, and the
// Indexer rebuilds it wholesale after every mutation instead of patching
// incrementally. Readers must tolerate snapshots going stale between
// mutation and rebuild.
//
// # Location hierarchy
//
// Location parent pointers form a forest. Build precomputes each location's
// ancestor chain in root-to-parent order; the walk keeps a seen set and
// stops silently when it revisits an id, so a cycle introduced by a
// concurrent editor cannot hang the build. SetParentLocation additionally
// refuses a parent whose own ancestor chain already contains the child.
package linkgraph
