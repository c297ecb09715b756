package mapping

import (
	"campaign-sync/feature/world"
)

// Target types proposed by the mapper.
const (
	TargetCharacter = "character"
	TargetItem      = "item"
	TargetLocation  = "location"
	TargetFaction   = "faction"
	TargetNote      = "note"
)

// descriptionSources is the shared fallback chain for description fields.
var descriptionSources = []string{"body", "metadata.biography", "metadata.notes"}

// NewPreset builds a preset, appending the guaranteed fallback rule when the
// given rules don't include one.
func NewPreset(name string, rules ...Rule) *Preset {
	hasFallback := false
	for _, r := range rules {
		if r.Fallback {
			hasFallback = true
			break
		}
	}
	if !hasFallback {
		rules = append(rules, Rule{
			Name:      "fallback-note",
			Target:    TargetNote,
			BaseScore: 0.2,
			Fallback:  true,
			Fields: map[string]FieldSpec{
				"name":        {Sources: []string{"name"}},
				"description": {Sources: descriptionSources},
			},
		})
	}
	return &Preset{Name: name, Rules: rules}
}

// Generic is the default preset used when no system-specific preset exists.
func Generic() *Preset {
	return NewPreset("generic",
		Rule{
			Name:   "player-character",
			Guard:  Guard{Kind: world.KindCharacter, Field: "subtype", OneOf: []string{"player", "pc"}},
			Target: TargetCharacter,
			Labels: []string{"PC"},
			Fields: map[string]FieldSpec{
				"name":        {Sources: []string{"name"}},
				"description": {Sources: descriptionSources},
				"image_url":   {Sources: []string{"image", "metadata.portrait"}, Image: true},
			},
			BaseScore: 0.6,
			Keywords:  []string{"party", "player"},
		},
		Rule{
			Name:   "non-player-character",
			Guard:  Guard{Kind: world.KindCharacter},
			Target: TargetCharacter,
			Labels: []string{"NPC"},
			Fields: map[string]FieldSpec{
				"name":        {Sources: []string{"name"}},
				"description": {Sources: descriptionSources},
				"image_url":   {Sources: []string{"image"}, Image: true},
			},
			BaseScore: 0.5,
			Keywords:  []string{"npc"},
		},
		Rule{
			Name:   "item",
			Guard:  Guard{Kind: world.KindItem},
			Target: TargetItem,
			Fields: map[string]FieldSpec{
				"name":        {Sources: []string{"name"}},
				"description": {Sources: descriptionSources},
				"image_url":   {Sources: []string{"image", "metadata.icon"}, Image: true},
			},
			BaseScore: 0.6,
			Keywords:  []string{"loot", "treasure", "equipment"},
		},
		Rule{
			Name:   "location",
			Guard:  Guard{Kind: world.KindLocation},
			Target: TargetLocation,
			Fields: map[string]FieldSpec{
				"name":        {Sources: []string{"name"}},
				"description": {Sources: descriptionSources},
				"image_url":   {Sources: []string{"image", "metadata.mapImage"}, Image: true},
			},
			BaseScore: 0.6,
			Keywords:  []string{"map", "region", "city", "dungeon"},
		},
		Rule{
			Name:   "faction",
			Guard:  Guard{Kind: world.KindFaction},
			Target: TargetFaction,
			Fields: map[string]FieldSpec{
				"name":        {Sources: []string{"name"}},
				"description": {Sources: descriptionSources},
			},
			BaseScore: 0.6,
			Keywords:  []string{"guild", "order", "clan", "house"},
		},
	)
}

// dnd5e extends the generic preset with fifth-edition sheet conventions:
// the actor type field lives in the raw attribute bag and distinguishes
// characters from monsters and vehicles.
func dnd5e() *Preset {
	generic := Generic()
	rules := append([]Rule{
		{
			Name:   "dnd5e-player-character",
			Guard:  Guard{Kind: world.KindCharacter, Field: "metadata.type", Equals: "character"},
			Target: TargetCharacter,
			Labels: []string{"PC"},
			Fields: map[string]FieldSpec{
				"name":        {Sources: []string{"name"}},
				"description": {Sources: []string{"metadata.details.biography", "body"}},
				"image_url":   {Sources: []string{"image"}, Image: true},
			},
			BaseScore: 0.7,
		},
		{
			Name:   "dnd5e-monster",
			Guard:  Guard{Kind: world.KindCharacter, Field: "metadata.type", OneOf: []string{"npc", "monster"}},
			Target: TargetCharacter,
			Labels: []string{"NPC"},
			Fields: map[string]FieldSpec{
				"name":        {Sources: []string{"name"}},
				"description": {Sources: []string{"metadata.details.biography", "body"}},
				"image_url":   {Sources: []string{"image"}, Image: true},
			},
			BaseScore: 0.65,
			Keywords:  []string{"monster", "bestiary"},
		},
	}, generic.Rules...)
	return &Preset{Name: "dnd5e", Rules: rules}
}

// presets indexes the built-in presets by system name.
var presets = map[string]func() *Preset{
	"generic": Generic,
	"dnd5e":   dnd5e,
}

// Lookup returns the preset for a system name, defaulting to the generic
// preset when no system-specific one exists.
func Lookup(name string) *Preset {
	if build, ok := presets[name]; ok {
		return build()
	}
	return Generic()
}
