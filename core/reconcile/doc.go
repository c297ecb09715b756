// Package reconcile pairs remote campaign-service records with world store
// records that represent the same conceptual entity.
//
// Matching is greedy one-to-one by case-insensitive exact name equality, per
// category, in two passes:
//
//   1. Remote candidates are scanned in input order; each claims the first
//     unclaimed local candidate whose name matches and whose type is
//     compatible (a remote "PC" only claims a local "player" sheet, unless
//     the local record carries no type at all).
//  2. Rows still unmatched on both sides get a looser name-only reattempt,
//     which covers local stores whose records have no usable type.
//
// Reconcile is deterministic and pure: identical inputs always produce the
// identical pairing, which is what makes re-running sync idempotent.
//
// # User Operations
//
// After matching, the wizard may Toggle row selection (propagated to the
// matched counterpart) and Rematch rows. Rematch clears both rows' prior
// symmetric links before establishing the new one, so a row is matched to at
// most one row on the opposite side and the symmetry invariant holds
// whenever control returns to the caller.
//
// Rows live for a single reconciliation pass; re-entering the matching step
// rebuilds them from fresh candidate lists.
package reconcile
