package remote

import "time"

// Character is a character record held by the campaign service.
type Character struct {
	// ID is the service-assigned identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Type distinguishes player characters from NPCs ("PC" or "NPC").
	Type string `json:"type"`

	// Description is the character write-up, plain text or markdown.
	Description string `json:"description"`

	// ImageURL is an absolute URL to the character portrait, if any.
	ImageURL string `json:"image_url,omitempty"`
}

// Item is an item record held by the campaign service.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Location is a location record held by the campaign service.
type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`

	// ParentID is the enclosing location, empty for top-level locations.
	ParentID string `json:"parent_id,omitempty"`
}

// Faction is a faction record held by the campaign service.
type Faction struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Session is a play-session record. Sessions are import-only: the engine
// derives local recap records from them but never writes sessions back.
type Session struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Date    time.Time `json:"date"`
}

// Link is a directional relationship between two remote records.
type Link struct {
	ID       string `json:"id"`
	FromID   string `json:"from_id"`
	FromKind string `json:"from_kind"`
	ToID     string `json:"to_id"`
	ToKind   string `json:"to_kind"`
}

// Created is the minimal response of every create call.
type Created struct {
	ID string `json:"id"`
}
