package reconcile

// Side identifies which store a row belongs to.
type Side string

const (
	// SideRemote marks rows originating from the campaign service.
	SideRemote Side = "remote"
	// SideLocal marks rows originating from the world store.
	SideLocal Side = "local"
)

// Category is an entity category reconciled independently of the others.
type Category string

const (
	CategoryCharacters Category = "characters"
	CategoryItems      Category = "items"
	CategoryLocations  Category = "locations"
	CategoryFactions   Category = "factions"
)

// Categories lists all reconciled categories in display order.
var Categories = []Category{CategoryCharacters, CategoryItems, CategoryLocations, CategoryFactions}

// Candidate is one record offered to the matcher by either side.
type Candidate struct {
	// ID is the record's identity in its own store.
	ID string `json:"id"`

	// Name is the display name matched against the opposite side.
	Name string `json:"name"`

	// Type is the record's classification (e.g. "PC", "player"). May be
	// empty for stores that carry no explicit type.
	Type string `json:"type"`
}

// Row is one candidate after a matching pass.
//
// Invariant: if a row's Match is X, the row with id X on the opposite side
// has Match equal to this row's ID. Rematch restores the invariant before
// returning; no other operation breaks it.
type Row struct {
	// ID is the record's identity in its own store.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Type is the record's classification.
	Type string `json:"type"`

	// Selected marks the row for inclusion in the sync plan. Defaults true.
	Selected bool `json:"selected"`

	// Match is the id of the paired row on the opposite side, empty when
	// unmatched.
	Match string `json:"match,omitempty"`
}

// Lists bundles one side's candidates for all categories.
type Lists struct {
	Characters []Candidate `json:"characters"`
	Items      []Candidate `json:"items"`
	Locations  []Candidate `json:"locations"`
	Factions   []Candidate `json:"factions"`
}

// Pair holds both sides' rows for one category after matching.
type Pair struct {
	Remote []Row `json:"remote"`
	Local  []Row `json:"local"`
}

// Result is the full output of a reconciliation pass.
type Result struct {
	Characters Pair `json:"characters"`
	Items      Pair `json:"items"`
	Locations  Pair `json:"locations"`
	Factions   Pair `json:"factions"`
}

// Category returns the pair for the given category.
func (r *Result) Category(c Category) *Pair {
	switch c {
	case CategoryCharacters:
		return &r.Characters
	case CategoryItems:
		return &r.Items
	case CategoryLocations:
		return &r.Locations
	case CategoryFactions:
		return &r.Factions
	}
	return nil
}
