package patch

import (
	"strings"

	"github.com/thehowl/godiff/diff"
)

type createOptions struct {
	context  int
	diffOpts []diff.Option
}

// CreateOption configures CreatePatch, CreateTwoFilesPatch and
// StructuredPatch.
type CreateOption func(*createOptions)

// Context sets how many unchanged lines surround each hunk. Default 4.
func Context(n int) CreateOption {
	return func(o *createOptions) { o.context = n }
}

// IgnoreCase makes the underlying line diff case-insensitive.
func IgnoreCase() CreateOption {
	return func(o *createOptions) { o.diffOpts = append(o.diffOpts, diff.IgnoreCase()) }
}

// IgnoreWhitespace makes the underlying line diff ignore leading/trailing
// whitespace when comparing lines.
func IgnoreWhitespace() CreateOption {
	return func(o *createOptions) { o.diffOpts = append(o.diffOpts, diff.IgnoreWhitespace()) }
}

// splitLines splits value into logical lines, each keeping its trailing '\n'
// when present; a final line without a terminator is kept bare.
func splitLines(value string) []string {
	if value == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(value); i++ {
		if value[i] == '\n' {
			lines = append(lines, value[start:i+1])
			start = i + 1
		}
	}
	if start < len(value) {
		lines = append(lines, value[start:])
	}
	return lines
}

func contextLines(prefix byte, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(prefix) + l
	}
	return out
}

// StructuredPatch runs a line diff between oldStr and newStr and builds the
// Hunk-level structure described in spec.md §4.5, without formatting it to
// text.
func StructuredPatch(oldFileName, newFileName, oldStr, newStr, oldHeader, newHeader string, opts ...CreateOption) Patch {
	o := &createOptions{context: 4}
	for _, opt := range opts {
		opt(o)
	}

	changes := diff.DiffLines(oldStr, newStr, o.diffOpts...)
	changes = append(changes, diff.Change{})

	var hunks []Hunk
	var oldRangeStart, newRangeStart, oldLine, newLine int
	oldLine, newLine = 1, 1
	var curRange []string

	for i, c := range changes {
		lines := splitLines(c.Value)

		switch {
		case c.Added || c.Removed:
			if oldRangeStart == 0 {
				oldRangeStart, newRangeStart = oldLine, newLine
				if i > 0 {
					prevLines := splitLines(changes[i-1].Value)
					if !changes[i-1].Added && !changes[i-1].Removed && o.context > 0 {
						n := o.context
						if n > len(prevLines) {
							n = len(prevLines)
						}
						ctx := contextLines(' ', prevLines[len(prevLines)-n:])
						curRange = append(curRange, ctx...)
						oldRangeStart -= len(ctx)
						newRangeStart -= len(ctx)
					}
				}
			}

			prefix := byte('-')
			if c.Added {
				prefix = '+'
			}
			curRange = append(curRange, contextLines(prefix, lines)...)

			if c.Added {
				newLine += len(lines)
			} else {
				oldLine += len(lines)
			}

		default:
			if oldRangeStart != 0 {
				if len(lines) <= 2*o.context && i < len(changes)-2 {
					curRange = append(curRange, contextLines(' ', lines)...)
				} else {
					n := o.context
					if n > len(lines) {
						n = len(lines)
					}
					curRange = append(curRange, contextLines(' ', lines[:n])...)

					hunks = append(hunks, Hunk{
						OldStart: oldRangeStart,
						OldLines: oldLine - oldRangeStart + n,
						NewStart: newRangeStart,
						NewLines: newLine - newRangeStart + n,
						Lines:    curRange,
					})

					oldRangeStart, newRangeStart = 0, 0
					curRange = nil
				}
			}
			oldLine += len(lines)
			newLine += len(lines)
		}
	}

	for hi := range hunks {
		h := &hunks[hi]
		for i := 0; i < len(h.Lines); i++ {
			if strings.HasSuffix(h.Lines[i], "\n") {
				h.Lines[i] = h.Lines[i][:len(h.Lines[i])-1]
			} else {
				h.Lines = append(h.Lines[:i+1], append([]string{`\ No newline at end of file`}, h.Lines[i+1:]...)...)
				i++
			}
		}
	}

	return Patch{
		OldFileName: oldFileName,
		NewFileName: newFileName,
		OldHeader:   oldHeader,
		NewHeader:   newHeader,
		Hunks:       hunks,
	}
}

// CreateTwoFilesPatch builds and formats a unified diff between oldStr and
// newStr, with independent old/new file names.
func CreateTwoFilesPatch(oldFileName, newFileName, oldStr, newStr, oldHeader, newHeader string, opts ...CreateOption) string {
	return FormatPatch(StructuredPatch(oldFileName, newFileName, oldStr, newStr, oldHeader, newHeader, opts...))
}

// CreatePatch builds and formats a unified diff between oldStr and newStr
// under a single shared file name.
func CreatePatch(fileName, oldStr, newStr, oldHeader, newHeader string, opts ...CreateOption) string {
	return CreateTwoFilesPatch(fileName, fileName, oldStr, newStr, oldHeader, newHeader, opts...)
}
