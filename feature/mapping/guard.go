package mapping

import (
	"regexp"
	"strings"

	"campaign-sync/core/utils"
	"campaign-sync/feature/extract"
)

// Guard is a rule predicate over a GenericEntity. Every set condition must
// hold; the zero Guard matches everything.
type Guard struct {
	// Kind requires kind equality when set.
	Kind string

	// Field names the entity field the value conditions below apply to.
	// Paths are resolved like materialization sources (see ResolvePath).
	Field string
	// Equals requires the field to equal this value (case-insensitive).
	Equals string
	// OneOf requires the field to be a member of this set.
	OneOf []string
	// Pattern requires the field to match this expression.
	Pattern *regexp.Regexp

	// AllOf requires every subguard to match.
	AllOf []Guard
	// AnyOf requires at least one subguard to match.
	AnyOf []Guard
}

// Matches evaluates the guard against an entity.
func (g Guard) Matches(e *extract.GenericEntity) bool {
	if g.Kind != "" && !strings.EqualFold(g.Kind, e.Kind) {
		return false
	}

	if g.Field != "" {
		value := ResolvePath(e, g.Field)
		if g.Equals != "" && !strings.EqualFold(value, g.Equals) {
			return false
		}
		if len(g.OneOf) > 0 && !containsFold(g.OneOf, value) {
			return false
		}
		if g.Pattern != nil && !g.Pattern.MatchString(value) {
			return false
		}
	}

	for _, sub := range g.AllOf {
		if !sub.Matches(e) {
			return false
		}
	}

	if len(g.AnyOf) > 0 {
		any := false
		for _, sub := range g.AnyOf {
			if sub.Matches(e) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}

	return true
}

// ResolvePath reads a source path off an entity. Supported paths: "name",
// "body", "kind", "subtype", "folder", "image" (first image candidate) and
// "metadata.<key>[.<key>...]" into the raw attribute bag.
func ResolvePath(e *extract.GenericEntity, path string) string {
	switch path {
	case "name":
		return e.Name
	case "body":
		return e.Body
	case "kind":
		return e.Kind
	case "subtype":
		return e.Subtype
	case "folder":
		return e.FolderName
	case "image":
		if len(e.Images) > 0 {
			return e.Images[0]
		}
		return ""
	}

	if rest, ok := strings.CutPrefix(path, "metadata."); ok {
		var current any = e.Metadata
		for _, key := range strings.Split(rest, ".") {
			bag, ok := current.(map[string]any)
			if !ok {
				return ""
			}
			current = bag[key]
		}
		return utils.ToString(current)
	}

	return ""
}

func containsFold(set []string, value string) bool {
	for _, s := range set {
		if strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}
