// Package diff renders a [Unified] diff between two files for the web
// service, built on top of [godiff]'s line tokenizer and patch hunk builder
// rather than reimplementing diffing itself.
//
// It keeps the [Unified]/[Hunk]/[Options] shape of the package this service
// was originally wired to (an x/tools-derived patience diff), since the
// templates and handlers built against that shape still apply unchanged.
//
// [godiff]: github.com/thehowl/godiff
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/thehowl/godiff/patch"
)

// Unified is returned by [Diff] as the representation of the unified diff.
type Unified struct {
	OldName string
	NewName string
	Hunks   []Hunk
}

// Hunk is a single hunk of the [Unified] diff.
type Hunk struct {
	LineOld  int
	CountOld int
	LineNew  int
	CountNew int
	Lines    []HunkLine
}

// SplitViewPaddings is used by the template to determine the padding lines to
// write on the left and right hand side to align the diffs correctly.
func (h Hunk) SplitViewPaddings() struct{ Red, Green map[int]int } {
	red, green := map[int]int{}, map[int]int{}
	for i := 0; i < len(h.Lines); i++ {
		l := h.Lines[i]
		if l.Type() == TypeEqual {
			continue
		}
		ins, del := countNextInsertDelete(h.Lines[i:])
		if ins > del {
			red[i+del] = ins - del
		} else if del > ins {
			green[i+ins] = del - ins
		}
		i += ins + del - 1
	}
	// We have to return them like this due to text/template.
	return struct {
		Red   map[int]int
		Green map[int]int
	}{red, green}
}

func countNextInsertDelete(ll []HunkLine) (ins, del int) {
	for _, l := range ll {
		switch l.Type() {
		case TypeInsert:
			ins++
		case TypeDelete:
			del++
		default:
			return
		}
	}
	return
}

// HunkLine is an individual line in a [Hunk].
type HunkLine struct {
	NumberX int
	NumberY int
	Value   string
}

// Possible results of [HunkLine.Type].
const (
	TypeInsert  = "insert"
	TypeDelete  = "delete"
	TypeEqual   = "equal"
	TypeInvalid = "invalid"
)

func (l HunkLine) Type() string {
	switch l.Value[0] {
	case '+':
		return TypeInsert
	case '-':
		return TypeDelete
	case ' ':
		return TypeEqual
	}
	return TypeInvalid
}

func (l HunkLine) Symbol() byte { return l.Value[0] }

func (l HunkLine) Content() string { return l.Value[1:] }

func (d Unified) String() string {
	if len(d.Hunks) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "diff %s %s\n", d.OldName, d.NewName)
	fmt.Fprintf(&b, "--- %s\n", d.OldName)
	fmt.Fprintf(&b, "+++ %s\n", d.NewName)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", hunk.LineOld, hunk.CountOld, hunk.LineNew, hunk.CountNew)
		for _, l := range hunk.Lines {
			b.WriteString(l.Value)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Diff returns a unified diff of old and new with 3 lines of context.
func Diff(oldName string, old []byte, newName string, new []byte) Unified {
	return DiffWithOptions(oldName, old, newName, new, Options{Context: 3})
}

// Options are the options that can be passed to [DiffWithOptions].
type Options struct {
	// Normal "normalizes" each line before comparison, without affecting how
	// it is displayed; used for the "ignore whitespace" query knobs.
	Normal func(s string) string
	// Context is the number of lines of context to add around each hunk.
	// [Diff] uses a default value of 3.
	Context int
}

// DiffWithOptions renders a [Unified] diff of old and new using opts.
func DiffWithOptions(oldName string, old []byte, newName string, new []byte, opts Options) Unified {
	u := Unified{OldName: oldName, NewName: newName}
	if bytes.Equal(old, new) {
		return u
	}

	ctx := opts.Context
	if ctx < 0 {
		ctx = 3
	}

	oldDisp, oldCmp := splitForDiff(old, opts.Normal)
	newDisp, newCmp := splitForDiff(new, opts.Normal)

	sp := patch.StructuredPatch(
		oldName, newName,
		joinWithTrailingNewline(oldCmp), joinWithTrailingNewline(newCmp),
		"", "",
		patch.Context(ctx),
	)

	for _, h := range sp.Hunks {
		oldIdx, newIdx := h.OldStart-1, h.NewStart-1
		lines := make([]HunkLine, 0, len(h.Lines))
		for _, l := range h.Lines {
			if len(l) == 0 {
				continue
			}
			switch l[0] {
			case '-':
				lines = append(lines, HunkLine{NumberX: oldIdx + 1, NumberY: -1, Value: "-" + oldDisp[oldIdx]})
				oldIdx++
			case '+':
				lines = append(lines, HunkLine{NumberX: -1, NumberY: newIdx + 1, Value: "+" + newDisp[newIdx]})
				newIdx++
			case ' ':
				lines = append(lines, HunkLine{NumberX: oldIdx + 1, NumberY: newIdx + 1, Value: " " + oldDisp[oldIdx]})
				oldIdx++
				newIdx++
			// '\' meta (no-newline) lines never appear: joinWithTrailingNewline
			// always supplies a trailing newline to the comparison text.
			default:
			}
		}
		u.Hunks = append(u.Hunks, Hunk{
			LineOld: h.OldStart, CountOld: h.OldLines,
			LineNew: h.NewStart, CountNew: h.NewLines,
			Lines: lines,
		})
	}
	return u
}

// splitForDiff splits text into lines for display (disp) and for comparison
// (cmp, after applying normal). The last display line gets the classic
// "\ No newline at end of file" notice appended when text doesn't end in a
// newline; that notice is never part of the comparison.
func splitForDiff(text []byte, normal func(string) string) (disp, cmp []string) {
	raw := strings.Split(string(text), "\n")
	trailingNewline := raw[len(raw)-1] == ""
	if trailingNewline {
		raw = raw[:len(raw)-1]
	}

	disp = make([]string, len(raw))
	copy(disp, raw)
	if !trailingNewline && len(disp) > 0 {
		disp[len(disp)-1] += "\n\\ No newline at end of file"
	}

	cmp = make([]string, len(raw))
	for i, s := range raw {
		if normal != nil {
			cmp[i] = normal(s)
		} else {
			cmp[i] = s
		}
	}
	return disp, cmp
}

func joinWithTrailingNewline(ls []string) string {
	if len(ls) == 0 {
		return ""
	}
	return strings.Join(ls, "\n") + "\n"
}
