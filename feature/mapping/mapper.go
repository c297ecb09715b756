package mapping

import (
	"strings"

	"campaign-sync/core/storage"
	"campaign-sync/feature/extract"
)

// Proposal is the mapper's output: a scored target classification for one
// entity. It is ephemeral, consumed immediately by the fingerprint/upsert
// path or by manual review.
type Proposal struct {
	// TargetType is the proposed remote shape ("character", "item",
	// "location", "faction" or "note").
	TargetType string `json:"targetType"`

	// Payload maps target fields to materialized values.
	Payload map[string]string `json:"payload"`

	// Labels carry secondary classification (e.g. "PC", "NPC").
	Labels []string `json:"labels,omitempty"`

	// Score is the mapper's confidence in [0,1].
	Score float64 `json:"score"`

	// Rule is the name of the winning rule, for diagnostics.
	Rule string `json:"rule"`
}

// FieldSpec materializes one output field from an ordered list of source
// paths; the first non-empty result wins. Image fields additionally reject
// anything that is not an absolute external URL.
type FieldSpec struct {
	Sources []string
	Image   bool
}

// Rule couples a guard predicate with a field-materialization map and the
// scoring signal for corroboration.
type Rule struct {
	// Name identifies the rule in diagnostics.
	Name string

	// Guard gates the rule. Fallback rules ignore their guard.
	Guard Guard

	// Target is the proposed target type.
	Target string

	// Fields is the output field materialization map.
	Fields map[string]FieldSpec

	// Labels are attached to the proposal verbatim.
	Labels []string

	// BaseScore is the confidence before corroboration increments.
	BaseScore float64

	// Keywords are domain terms scored when found in name or folder.
	Keywords []string

	// Fallback marks the rule used only when no other rule matched.
	Fallback bool
}

// Preset is an ordered rule list for one game system.
type Preset struct {
	Name  string
	Rules []Rule
}

// Map classifies an entity under a preset.
//
// All matching non-fallback rules are scored and the highest score wins;
// declaration order only breaks ties. The fallback rule is used when nothing
// else matched, surfacing ambiguity as a low score rather than an error.
func Map(e *extract.GenericEntity, preset *Preset) Proposal {
	var best *Rule
	var bestScore float64

	for i := range preset.Rules {
		rule := &preset.Rules[i]
		if rule.Fallback || !rule.Guard.Matches(e) {
			continue
		}
		score := scoreRule(e, rule)
		if best == nil || score > bestScore {
			best = rule
			bestScore = score
		}
	}

	if best == nil {
		for i := range preset.Rules {
			if preset.Rules[i].Fallback {
				best = &preset.Rules[i]
				bestScore = clamp(best.BaseScore)
				break
			}
		}
	}
	if best == nil {
		// Presets are built through NewPreset, which guarantees a fallback;
		// an empty proposal only happens with a hand-rolled bad preset.
		return Proposal{Score: 0}
	}

	return Proposal{
		TargetType: best.Target,
		Payload:    materialize(e, best.Fields),
		Labels:     best.Labels,
		Score:      bestScore,
		Rule:       best.Name,
	}
}

// scoreRule adds bounded increments for corroborating signal on top of the
// rule's base score and clamps the result to [0,1].
func scoreRule(e *extract.GenericEntity, rule *Rule) float64 {
	score := rule.BaseScore

	if hasAbsoluteImage(e) {
		score += 0.10
	}
	if len(e.Tags) > 0 {
		score += 0.05
	}
	if strings.EqualFold(e.Kind, rule.Target) || strings.EqualFold(e.Subtype, rule.Target) {
		score += 0.10
	}

	// Keyword hits in name or folder, capped.
	var keywordBoost float64
	haystack := strings.ToLower(e.Name + " " + e.FolderName)
	for _, kw := range rule.Keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			keywordBoost += 0.05
		}
	}
	if keywordBoost > 0.15 {
		keywordBoost = 0.15
	}
	score += keywordBoost

	return clamp(score)
}

// materialize builds the payload field map: first non-empty source wins,
// image fields only accept absolute external URLs.
func materialize(e *extract.GenericEntity, fields map[string]FieldSpec) map[string]string {
	payload := make(map[string]string, len(fields))
	for name, spec := range fields {
		for _, source := range spec.Sources {
			value := ResolvePath(e, source)
			if value == "" {
				continue
			}
			if spec.Image && !storage.IsAbsoluteURL(value) {
				continue
			}
			payload[name] = value
			break
		}
	}
	return payload
}

func hasAbsoluteImage(e *extract.GenericEntity) bool {
	for _, img := range e.Images {
		if storage.IsAbsoluteURL(img) {
			return true
		}
	}
	return false
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
