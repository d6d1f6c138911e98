// Package xmlconv renders a diff change list as HTML/XML-ish markup, wrapping
// additions in <ins> and removals in <del>. It is a deliberately thin
// wrapper: the spec calls out HTML/XML rendering as a trivial iterator around
// escaping, not part of the diff/patch core.
package xmlconv

import (
	"strings"

	"github.com/thehowl/godiff/diff"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// ConvertChangesToXML renders changes as a single string: additions wrapped
// in <ins>...</ins>, removals in <del>...</del>, context emitted raw (after
// escaping &, <, >, ").
func ConvertChangesToXML(changes []diff.Change) string {
	var b strings.Builder
	for _, c := range changes {
		escaped := escaper.Replace(c.Value)
		switch {
		case c.Added:
			b.WriteString("<ins>")
			b.WriteString(escaped)
			b.WriteString("</ins>")
		case c.Removed:
			b.WriteString("<del>")
			b.WriteString(escaped)
			b.WriteString("</del>")
		default:
			b.WriteString(escaped)
		}
	}
	return b.String()
}
