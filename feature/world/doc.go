// Package world implements the local World Store: the live, user-editable
// document graph of the hosting session (characters, items, locations,
// factions, free-text journals), persisted through GORM.
//
// # Sync Metadata
//
// Every record carries an explicit, validated sync-metadata schema: the
// cross-reference to the remote campaign service (remote id + campaign id),
// the engine's sheet classification, kind-bucketed directional relationship
// ids, the legacy symmetric refs list, the parent-location pointer and the
// content fingerprint. These fields are owned by the sync engine; the
// idempotent ResetSyncMetadata operation clears exactly these and nothing
// else, so a re-run of guided setup re-pairs instead of duplicating.
//
// Raw kind-specific attributes stay in the Metadata JSON bag and never
// travel past extraction.
package world
