// Package mapping classifies extracted entities into remote target types.
//
// A Preset is an ordered list of rules for one game system. Each rule pairs
// a Guard predicate with a field-materialization map and a scoring signal;
// Map evaluates every non-fallback rule whose guard matches, scores them,
// and returns the highest-scoring proposal. When nothing matches, the
// preset's guaranteed fallback rule produces a low-confidence note proposal
// so ambiguity surfaces as a score, never as an error.
//
// # Scoring
//
// Scores live in [0,1]. A rule starts at its base score and earns bounded
// increments for corroborating signal: an absolute image URL, the presence
// of tags, a kind or subtype that already names the target, and keyword
// hits in the entity's name or folder. The result is clamped.
//
// # Presets
//
// Presets are built with NewPreset, which appends the fallback rule when
// absent. Lookup resolves a system name from configuration and falls back
// to the generic preset for unknown systems.
package mapping
