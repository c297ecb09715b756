// Package extract reads raw world store records and produces the uniform
// GenericEntity stream consumed by mapping and fingerprinting.
//
// Extraction is read-only and restartable. Local records expose ad hoc
// nested property bags; normalization is the explicit step that flattens
// them; nothing downstream ever sees a raw bag. A single malformed record
// is logged and skipped so one bad sheet cannot abort a whole pass.
//
// The package also owns the two cross-reference token grammars found in
// record bodies (see tokens.go).
package extract
