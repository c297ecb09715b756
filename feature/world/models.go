package world

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record kinds stored in the world store.
const (
	KindCharacter = "character"
	KindItem      = "item"
	KindLocation  = "location"
	KindFaction   = "faction"
	KindJournal   = "journal"
)

// Kinds lists every record kind the store manages.
var Kinds = []string{KindCharacter, KindItem, KindLocation, KindFaction, KindJournal}

// Record is one world store document: a character sheet, item, location,
// faction or free-text journal owned by the local session.
type Record struct {
	ID      string `gorm:"column:id;primaryKey"`
	Kind    string `gorm:"column:kind;index"`
	Subtype string `gorm:"column:subtype"`
	Name    string `gorm:"column:name;index"`
	Folder  string `gorm:"column:folder"`

	// Description is the record's rich-text body.
	Description string `gorm:"column:description;type:text"`

	// Images is a JSON array of image URL candidates, best first.
	Images string `gorm:"column:images;type:text"`

	// Metadata is the kind-specific raw attribute bag as JSON. It never
	// travels past extraction; downstream code sees GenericEntity instead.
	Metadata string `gorm:"column:metadata;type:text"`

	// Explicit sync metadata schema. These are the only fields the engine
	// owns; ResetSyncMetadata clears exactly these.
	SheetType            string `gorm:"column:sheet_type"`
	RemoteID             string `gorm:"column:remote_id;index"`
	RemoteCampaignID     string `gorm:"column:remote_campaign_id"`
	RelationshipOutbound string `gorm:"column:relationship_outbound;type:text"`
	RelationshipRefs     string `gorm:"column:relationship_refs;type:text"`
	ParentLocationID     string `gorm:"column:parent_location_id;index"`
	LocalCrossRefs       string `gorm:"column:local_cross_refs;type:text"`
	Fingerprint          string `gorm:"column:fingerprint"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName sets the table for world records.
func (Record) TableName() string {
	return "world_records"
}

// OutboundRefs is the kind-bucketed directional relationship metadata
// persisted per record.
type OutboundRefs struct {
	Characters           []string `json:"characters,omitempty"`
	Items                []string `json:"items,omitempty"`
	Factions             []string `json:"factions,omitempty"`
	LocationsAssociative []string `json:"locationsAssociative,omitempty"`
	Entries              []string `json:"entries,omitempty"`
}

// IsEmpty reports whether no bucket holds any id.
func (o OutboundRefs) IsEmpty() bool {
	return len(o.Characters) == 0 && len(o.Items) == 0 && len(o.Factions) == 0 &&
		len(o.LocationsAssociative) == 0 && len(o.Entries) == 0
}

// All returns every referenced id across buckets, bucket order preserved.
func (o OutboundRefs) All() []string {
	out := make([]string, 0, len(o.Characters)+len(o.Items)+len(o.Factions)+len(o.LocationsAssociative)+len(o.Entries))
	out = append(out, o.Characters...)
	out = append(out, o.Items...)
	out = append(out, o.Factions...)
	out = append(out, o.LocationsAssociative...)
	out = append(out, o.Entries...)
	return out
}

// Bucket returns a pointer to the bucket for the given record kind, or nil
// for kinds without a bucket.
func (o *OutboundRefs) Bucket(kind string) *[]string {
	switch kind {
	case KindCharacter:
		return &o.Characters
	case KindItem:
		return &o.Items
	case KindFaction:
		return &o.Factions
	case KindLocation:
		return &o.LocationsAssociative
	case KindJournal:
		return &o.Entries
	}
	return nil
}

// Outbound decodes the record's directional relationship metadata.
// An empty column decodes to the zero value.
func (r *Record) Outbound() (OutboundRefs, error) {
	var out OutboundRefs
	if r.RelationshipOutbound == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(r.RelationshipOutbound), &out); err != nil {
		return out, fmt.Errorf("record %s has malformed relationship metadata: %w", r.ID, err)
	}
	return out, nil
}

// Refs decodes the legacy symmetric relationship id list.
func (r *Record) Refs() ([]string, error) {
	if r.RelationshipRefs == "" {
		return nil, nil
	}
	var refs []string
	if err := json.Unmarshal([]byte(r.RelationshipRefs), &refs); err != nil {
		return nil, fmt.Errorf("record %s has malformed legacy refs: %w", r.ID, err)
	}
	return refs, nil
}

// LocalCrossRefList decodes the ids of related local records of other
// kinds. Malformed data decodes to nil; the list is a best-effort hint.
func (r *Record) LocalCrossRefList() []string {
	if r.LocalCrossRefs == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(r.LocalCrossRefs), &ids); err != nil {
		return nil
	}
	return ids
}

// ImageList decodes the record's image URL candidates.
func (r *Record) ImageList() []string {
	if r.Images == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(r.Images), &urls); err != nil {
		return nil
	}
	return urls
}

// MetadataBag decodes the raw attribute bag. Malformed metadata yields an
// empty bag rather than an error; extraction treats it as best-effort.
func (r *Record) MetadataBag() map[string]any {
	if r.Metadata == "" {
		return map[string]any{}
	}
	var bag map[string]any
	if err := json.Unmarshal([]byte(r.Metadata), &bag); err != nil {
		return map[string]any{}
	}
	return bag
}

// encodeJSON marshals v, mapping empty collections to the empty string so
// cleared metadata reads back as absent.
func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	s := string(data)
	if s == "null" || s == "{}" || s == "[]" {
		return "", nil
	}
	return s, nil
}
