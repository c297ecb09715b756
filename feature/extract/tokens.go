package extract

import (
	"regexp"
	"strings"
)

// Two token grammars appear in world record bodies:
//
//	@Ref[Kind.id]{label}   - generic cross-reference to any record kind
//	@Journal[id]{label}    - shorthand reference to a journal entry
//
// The {label} part is optional in both.
var (
	genericTokenRe = regexp.MustCompile(`@Ref\[([A-Za-z]+)\.([A-Za-z0-9_-]+)\](?:\{[^}]*\})?`)
	journalTokenRe = regexp.MustCompile(`@Journal\[([A-Za-z0-9_-]+)\](?:\{[^}]*\})?`)
)

// ParseLinks extracts every cross-reference token from text, generic tokens
// first, in order of appearance within each grammar. Duplicate references
// are collapsed.
func ParseLinks(text string) []Link {
	var links []Link
	seen := make(map[Link]bool)

	for _, m := range genericTokenRe.FindAllStringSubmatch(text, -1) {
		link := Link{Type: strings.ToLower(m[1]), Value: m[2]}
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	}
	for _, m := range journalTokenRe.FindAllStringSubmatch(text, -1) {
		link := Link{Type: "journal", Value: m[1]}
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	}
	return links
}

// StripTokens replaces reference tokens with their label (or removes them
// when no label is present) so exported descriptions read as plain prose.
func StripTokens(text string) string {
	labeled := regexp.MustCompile(`@(?:Ref|Journal)\[[^\]]*\]\{([^}]*)\}`)
	bare := regexp.MustCompile(`@(?:Ref|Journal)\[[^\]]*\]`)
	out := labeled.ReplaceAllString(text, "$1")
	return bare.ReplaceAllString(out, "")
}
