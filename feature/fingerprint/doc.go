// Package fingerprint derives stable content digests for extracted entities.
//
// The digest is computed over a canonical projection: tags sorted (they are
// a set), images kept in order (the list ranks candidates),
// attribute-bag keys serialized in sorted order, volatile
// bookkeeping keys (ids, timestamps, underscore-prefixed stats) stripped at
// every nesting depth. An unchanged entity therefore always produces the
// same digest, which lets the opportunistic import flow skip records whose
// stored fingerprint still matches.
//
// The default hasher is sha256; WithFNV selects the faster fnv-1a fallback
// for very large worlds.
package fingerprint
