
// Package parser reconstructs hierarchical document trees from the flat
// markup of two encyclopedia formats. Parsing is pure: no network, no disk,
// no state between calls. Anomalies (missing containers, zero headings)
// degrade to empty trees rather than erroring.
package parser

import (
	"html"
	"regexp"
	"strings"
)

var (
	// [1], [12; 13], [d], [citation needed]
	citationRe   = regexp.MustCompile(`(?i)\[\s*(?:citation needed|\d+(?:\s*[;,]\s*\d+)*|[a-zA-Z])\s*\]`)
	escQuoteRe   = regexp.MustCompile(`\\(["'])`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean normalizes one leaf text unit: entity decode, NBSP to space,
// backslash-escaped quotes unescaped, inline citation markers removed,
// whitespace collapsed, trimmed. Idempotent.
func Clean(text string) string {
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, " ", " ")
	text = escQuoteRe.ReplaceAllString(text, "$1")
	text = citationRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
