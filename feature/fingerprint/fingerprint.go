package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"hash"
	"hash/fnv"
	"sort"
	"strings"

	"campaign-sync/feature/extract"
)

// volatileMetaKeys are attribute-bag keys that change without the entity
// meaningfully changing. They are stripped, at any nesting depth, before
// hashing so re-runs over an unchanged world stay idempotent.
var volatileMetaKeys = map[string]struct{}{
	"_id":          {},
	"id":           {},
	"_key":         {},
	"_stats":       {},
	"sort":         {},
	"createdTime":  {},
	"modifiedTime": {},
	"createdAt":    {},
	"updatedAt":    {},
	"timestamp":    {},
}

// Engine computes content fingerprints for extracted entities.
type Engine struct {
	newHash func() hash.Hash
}

// Option configures an Engine.
type Option func(*Engine)

// WithFNV selects the fast non-cryptographic hasher. Collisions only cost a
// redundant export, so the trade is acceptable for large worlds.
func WithFNV() Option {
	return func(e *Engine) {
		e.newHash = func() hash.Hash { return fnv.New64a() }
	}
}

// New builds an Engine. The default hasher is sha256.
func New(opts ...Option) *Engine {
	e := &Engine{
		newHash: sha256.New,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute returns the hex fingerprint of an entity's canonical projection.
// Two entities with the same meaningful content produce the same digest
// regardless of tag order or attribute-bag key order.
func (e *Engine) Compute(entity *extract.GenericEntity) (string, error) {
	raw, err := json.Marshal(canonical(entity))
	if err != nil {
		return "", err
	}
	h := e.newHash()
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// canonical projects the entity onto the fields that count as content.
// encoding/json serializes map keys in sorted order, which gives the
// key-order independence the digest needs.
func canonical(entity *extract.GenericEntity) map[string]any {
	tags := append([]string(nil), entity.Tags...)
	sort.Strings(tags)

	// Tags are a set, so their order is noise. Images are an ordered list
	// with the best candidate first; reordering them is a content change
	// and must move the digest.
	images := append([]string(nil), entity.Images...)

	return map[string]any{
		"kind":     entity.Kind,
		"subtype":  entity.Subtype,
		"name":     entity.Name,
		"body":     entity.Body,
		"folder":   entity.FolderName,
		"tags":     tags,
		"images":   images,
		"metadata": stableMetadata(entity.Metadata),
	}
}

// stableMetadata deep-copies an attribute bag with volatile keys removed.
func stableMetadata(bag map[string]any) map[string]any {
	if len(bag) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(bag))
	for key, value := range bag {
		if isVolatile(key) {
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			out[key] = stableMetadata(nested)
			continue
		}
		out[key] = value
	}
	return out
}

func isVolatile(key string) bool {
	if _, ok := volatileMetaKeys[key]; ok {
		return true
	}
	// Source-tool bookkeeping keys arrive underscore-prefixed.
	return strings.HasPrefix(key, "_")
}
