package patch

import (
	"fmt"
	"strings"
)

const ruleLine = "===================================================================\n"

func formatHunkHeader(h Hunk) string {
	oldStart, newStart := h.OldStart, h.NewStart
	if h.OldLines == 0 {
		oldStart--
	}
	if h.NewLines == 0 {
		newStart--
	}
	old := fmt.Sprintf("%d", oldStart)
	if h.OldLines != 1 {
		old += fmt.Sprintf(",%d", h.OldLines)
	}
	nw := fmt.Sprintf("%d", newStart)
	if h.NewLines != 1 {
		nw += fmt.Sprintf(",%d", h.NewLines)
	}
	return fmt.Sprintf("@@ -%s +%s @@\n", old, nw)
}

func formatOne(p Patch) string {
	var b strings.Builder
	if p.OldFileName == p.NewFileName {
		fmt.Fprintf(&b, "Index: %s\n", p.OldFileName)
	}
	b.WriteString(ruleLine)
	fmt.Fprintf(&b, "--- %s\t%s\n", p.OldFileName, p.OldHeader)
	fmt.Fprintf(&b, "+++ %s\t%s\n", p.NewFileName, p.NewHeader)
	for _, h := range p.Hunks {
		b.WriteString(formatHunkHeader(h))
		for _, l := range h.Lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatPatch renders one or more Patches as unified-diff text, joining
// multiple patches with a single newline.
func FormatPatch(patches ...Patch) string {
	parts := make([]string, len(patches))
	for i, p := range patches {
		parts[i] = formatOne(p)
	}
	return strings.Join(parts, "\n")
}
