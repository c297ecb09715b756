package extract

// Link is a cross-reference token found embedded in a record's free text.
type Link struct {
	// Type is the referenced kind ("character", "item", ... or "journal").
	Type string `json:"type"`
	// Value is the referenced record id.
	Value string `json:"value"`
}

// GenericEntity is the uniform shape every local record is normalized into.
// It is created fresh on each extraction pass and never persisted.
type GenericEntity struct {
	// Kind is one of the world record kinds.
	Kind string `json:"kind"`

	// Subtype is the kind-specific classification (e.g. "player", "npc").
	Subtype string `json:"subtype"`

	// Name is the display name.
	Name string `json:"name"`

	// Body is the plain-text description, rich text already stripped.
	Body string `json:"body"`

	// Tags is the record's tag set, order not significant.
	Tags []string `json:"tags"`

	// Links are the cross-reference tokens found in the body.
	Links []Link `json:"links"`

	// Images is the ordered image URL candidate list, best first.
	Images []string `json:"images"`

	// SourceID is the record's stable identity in the world store.
	SourceID string `json:"sourceId"`

	// FolderName is the containing folder, empty at top level.
	FolderName string `json:"folderName"`

	// Metadata carries kind-specific raw attributes for rule guards and
	// field materialization. It does not travel past mapping.
	Metadata map[string]any `json:"metadata"`
}
