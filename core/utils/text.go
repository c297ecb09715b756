package utils

import (
	"regexp"
	"strings"
)

var (
	tagRe        = regexp.MustCompile(`(?s)<[^>]*>`)
	blockCloseRe = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|blockquote|tr)>`)
	brRe         = regexp.MustCompile(`(?i)<br\s*/?>`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// HTMLToText converts rich-text record bodies to plain text. Block element
// boundaries become newlines so paragraph structure survives the stripping.
func HTMLToText(html string) string {
	s := brRe.ReplaceAllString(html, "\n")
	s = blockCloseRe.ReplaceAllString(s, "\n")
	s = tagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Truncate shortens s to at most max bytes, cutting at a rune boundary and
// appending an ellipsis when anything was removed. The ellipsis counts
// against the budget.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	const ellipsis = "…"
	cut := max - len(ellipsis)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut]) + ellipsis
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
