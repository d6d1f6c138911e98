package patch

import "strings"

// CompareLineFunc lets callers override how a patch content line is matched
// against a source line; lineNumber is 1-based.
type CompareLineFunc func(lineNumber int, sourceLine string, op byte, patchContent string) bool

type applyOptions struct {
	fuzzFactor             int
	autoConvertLineEndings bool
	compareLine            CompareLineFunc
}

// ApplyOption configures ApplyPatch/ApplyPatches.
type ApplyOption func(*applyOptions)

// FuzzFactor sets how many mismatched lines per hunk the applier will
// tolerate by folding them into the output unchanged. Must be >= 0.
func FuzzFactor(n int) ApplyOption {
	return func(o *applyOptions) { o.fuzzFactor = n }
}

// NoAutoConvertLineEndings disables the automatic CRLF/LF reconciliation
// between a pure-Unix source and a pure-Windows patch (or vice versa).
func NoAutoConvertLineEndings() ApplyOption {
	return func(o *applyOptions) { o.autoConvertLineEndings = false }
}

// WithCompareLine overrides the line-equality predicate used while matching
// hunk content against the source.
func WithCompareLine(f CompareLineFunc) ApplyOption {
	return func(o *applyOptions) { o.compareLine = f }
}

func defaultCompareLine(_ int, sourceLine string, _ byte, patchContent string) bool {
	return sourceLine == patchContent
}

func textIsWin(s string) bool {
	return strings.Contains(s, "\r\n") && strings.Count(s, "\n") == strings.Count(s, "\r\n")
}

func textIsUnix(s string) bool {
	return strings.Contains(s, "\n") && !strings.Contains(s, "\r\n")
}

func hunkLineOpAndContent(l string) (byte, string) {
	if len(l) == 0 {
		return ' ', ""
	}
	return l[0], l[1:]
}

// hunkTrailingContextCount returns how many of h's trailing lines (after any
// meta lines) are unchanged-context lines, so the applier can trim them from
// its output and let the next hunk (or the final flush) re-supply them.
func hunkTrailingContextCount(h Hunk) int {
	count := 0
	for i := len(h.Lines) - 1; i >= 0; i-- {
		op, _ := hunkLineOpAndContent(h.Lines[i])
		if op == '\\' {
			continue
		}
		if op == ' ' {
			count++
			continue
		}
		break
	}
	return count
}

// hunkEOFFlags reports whether the hunk's trailing old-side and new-side
// lines are marked with a "no newline at end of file" meta line.
func hunkEOFFlags(h Hunk) (oldNoNL, newNoNL bool) {
	for i, l := range h.Lines {
		op, _ := hunkLineOpAndContent(l)
		if op == '\\' {
			continue
		}
		if i+1 < len(h.Lines) {
			nextOp, _ := hunkLineOpAndContent(h.Lines[i+1])
			if nextOp == '\\' {
				switch op {
				case '-':
					oldNoNL = true
				case '+':
					newNoNL = true
				case ' ':
					oldNoNL = true
					newNoNL = true
				}
			}
		}
	}
	return
}

type distanceIterator struct {
	start, min, max int
	i, limit        int
}

func newDistanceIterator(start, min, max int) *distanceIterator {
	return &distanceIterator{start: start, min: min, max: max, limit: 2*(max-min+1) + 2}
}

func (d *distanceIterator) next() (int, bool) {
	for d.i <= d.limit {
		var cand int
		if d.i == 0 {
			cand = d.start
		} else {
			delta := (d.i + 1) / 2
			if d.i%2 == 1 {
				cand = d.start + delta
			} else {
				cand = d.start - delta
			}
		}
		d.i++
		if cand >= d.min && cand <= d.max {
			return cand, true
		}
	}
	return 0, false
}

// matchFrom recursively applies hunkLines[li:] against lines starting at
// pos, per spec.md §4.7 step 5. errorsAllowed bounds how many mismatches may
// be tolerated by the three fuzzy-recovery strategies.
func matchFrom(lines []string, pos int, hunkLines []string, li int, errorsAllowed int, compareLine CompareLineFunc, lastCtxMatched, prevWasInsert bool) ([]string, int, bool) {
	var out []string
	for li < len(hunkLines) {
		op, content := hunkLineOpAndContent(hunkLines[li])

		switch op {
		case '\\':
			li++
			prevWasInsert = false

		case '-':
			if pos < len(lines) && compareLine(pos+1, lines[pos], '-', content) {
				pos++
				li++
				prevWasInsert = false
				continue
			}
			if errorsAllowed <= 0 || pos >= len(lines) {
				return nil, 0, false
			}
			tail, finalPos, ok := matchFrom(lines, pos+1, hunkLines, li, errorsAllowed-1, compareLine, lastCtxMatched, false)
			if !ok {
				return nil, 0, false
			}
			out = append(out, lines[pos])
			out = append(out, tail...)
			return out, finalPos, true

		case '+':
			if !lastCtxMatched {
				return nil, 0, false
			}
			out = append(out, content)
			li++
			prevWasInsert = true

		default: // ' '
			mustMatch := prevWasInsert
			if pos < len(lines) && compareLine(pos+1, lines[pos], ' ', content) {
				out = append(out, lines[pos])
				pos++
				li++
				lastCtxMatched = true
				prevWasInsert = false
				continue
			}
			if mustMatch || errorsAllowed <= 0 {
				return nil, 0, false
			}
			if pos < len(lines) {
				if tail, finalPos, ok := matchFrom(lines, pos+1, hunkLines, li+1, errorsAllowed-1, compareLine, false, false); ok {
					return append(append(append([]string{}, out...), lines[pos]), tail...), finalPos, true
				}
				if tail, finalPos, ok := matchFrom(lines, pos+1, hunkLines, li, errorsAllowed-1, compareLine, false, false); ok {
					return append(append(append([]string{}, out...), lines[pos]), tail...), finalPos, true
				}
			}
			if tail, finalPos, ok := matchFrom(lines, pos, hunkLines, li+1, errorsAllowed-1, compareLine, false, false); ok {
				return append(out, tail...), finalPos, true
			}
			return nil, 0, false
		}
	}
	return out, pos, true
}

// ApplyPatch applies p to source, returning the patched text. It returns
// *OptionError for an invalid fuzz factor and *ApplyError when no hunk
// position could be found within the fuzz budget.
func ApplyPatch(source string, p Patch, opts ...ApplyOption) (string, error) {
	o := &applyOptions{autoConvertLineEndings: true}
	for _, opt := range opts {
		opt(o)
	}
	if o.fuzzFactor < 0 {
		return "", &OptionError{Msg: "fuzzFactor must be a non-negative integer"}
	}
	if o.compareLine == nil {
		o.compareLine = defaultCompareLine
	}

	if len(p.Hunks) == 0 {
		return source, nil
	}

	if o.autoConvertLineEndings {
		switch {
		case IsWin(p) && textIsUnix(source):
			p = WinToUnix(p)
		case IsUnix(p) && textIsWin(source):
			p = UnixToWin(p)
		}
	}

	oldNoNL, newNoNL := hunkEOFFlags(p.Hunks[len(p.Hunks)-1])

	src := strings.Split(source, "\n")
	if oldNoNL && len(src) > 0 && src[len(src)-1] == "" && source != "" {
		if o.fuzzFactor == 0 {
			return "", &ApplyError{HunkIndex: len(p.Hunks) - 1, Msg: "source ends with a newline the patch says the original file did not have"}
		}
		src = src[:len(src)-1]
	}

	minLine := 0
	var result []string

	for hi, h := range p.Hunks {
		prevHunkOffset := 0
		if hi > 0 {
			prevHunkOffset = minLine - (p.Hunks[hi-1].OldStart + p.Hunks[hi-1].OldLines - 1)
		}
		startPos := h.OldStart + prevHunkOffset - 1
		if startPos < 0 {
			startPos = 0
		}
		maxLine := len(src) - h.OldLines + o.fuzzFactor
		if maxLine < minLine {
			maxLine = minLine
		}

		applied := false
		for fuzz := 0; fuzz <= o.fuzzFactor && !applied; fuzz++ {
			it := newDistanceIterator(startPos, minLine, maxLine)
			for {
				pos, more := it.next()
				if !more {
					break
				}
				out, finalPos, ok := matchFrom(src, pos, h.Lines, 0, fuzz, o.compareLine, true, false)
				if !ok {
					continue
				}
				trim := hunkTrailingContextCount(h)
				if trim > len(out) {
					trim = len(out)
				}
				out = out[:len(out)-trim]
				finalPos -= trim

				result = append(result, src[minLine:pos]...)
				result = append(result, out...)
				minLine = finalPos
				applied = true
				break
			}
		}
		if !applied {
			return "", &ApplyError{HunkIndex: hi, Msg: "no matching position found within fuzz budget"}
		}
	}

	result = append(result, src[minLine:]...)
	out := strings.Join(result, "\n")

	if source == "" && out != "" && !strings.HasSuffix(out, "\n") && !newNoNL {
		out += "\n"
	}
	return out, nil
}

// ApplyPatches applies each patch in patches to its corresponding entry in
// sources (keyed by Patch.OldFileName), returning the patched text keyed by
// Patch.NewFileName. It stops at the first hunk that fails to apply.
func ApplyPatches(sources map[string]string, patches []Patch, opts ...ApplyOption) (map[string]string, error) {
	out := make(map[string]string, len(patches))
	for _, p := range patches {
		src, ok := sources[p.OldFileName]
		if !ok {
			return nil, &ApplyError{Msg: "no source provided for " + p.OldFileName}
		}
		patched, err := ApplyPatch(src, p, opts...)
		if err != nil {
			return nil, err
		}
		out[p.NewFileName] = patched
	}
	return out, nil
}
