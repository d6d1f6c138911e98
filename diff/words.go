package diff

import "strings"

type wordTokenizer struct{}

func (wordTokenizer) castInput(text string, o *options) string { return identityCastInput(text, o) }

// tokenizeRuns splits text into maximal word runs, maximal whitespace runs,
// and single non-word characters.
func tokenizeRuns(text string) []string {
	runes := []rune(text)
	var toks []string
	i := 0
	for i < len(runes) {
		switch {
		case isExtendedWordChar(runes[i]):
			j := i
			for j < len(runes) && isExtendedWordChar(runes[j]) {
				j++
			}
			toks = append(toks, string(runes[i:j]))
			i = j
		case isWhitespaceRune(runes[i]):
			j := i
			for j < len(runes) && isWhitespaceRune(runes[j]) {
				j++
			}
			toks = append(toks, string(runes[i:j]))
			i = j
		default:
			toks = append(toks, string(runes[i]))
			i++
		}
	}
	return toks
}

func isWordRun(tok string) bool {
	r := []rune(tok)
	return len(r) > 0 && isExtendedWordChar(r[0])
}

func isWhitespaceRun(tok string) bool {
	r := []rune(tok)
	return len(r) > 0 && isWhitespaceRune(r[0])
}

// attachBoundarySpace lets each word token carry one leading whitespace
// character from the preceding whitespace run and one trailing whitespace
// character from the following run, so adjacent word tokens share whitespace
// cleanly.
func attachBoundarySpace(runs []string) []string {
	out := make([]string, 0, len(runs))
	for i := 0; i < len(runs); i++ {
		tok := runs[i]
		if !isWordRun(tok) {
			out = append(out, tok)
			continue
		}
		if len(out) > 0 && isWhitespaceRun(out[len(out)-1]) {
			prev := []rune(out[len(out)-1])
			tok = string(prev[len(prev)-1]) + tok
			if len(prev) == 1 {
				out = out[:len(out)-1]
			} else {
				out[len(out)-1] = string(prev[:len(prev)-1])
			}
		}
		if i+1 < len(runs) && isWhitespaceRun(runs[i+1]) {
			next := []rune(runs[i+1])
			tok = tok + string(next[0])
			if len(next) == 1 {
				i++
			} else {
				runs[i+1] = string(next[1:])
			}
		}
		out = append(out, tok)
	}
	return out
}

func (wordTokenizer) tokenize(text string, _ *options) []string {
	return attachBoundarySpace(tokenizeRuns(text))
}

func (wordTokenizer) equals(a, b string, o *options) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if o.ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (wordTokenizer) join(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(tokens[0])
	for _, t := range tokens[1:] {
		b.WriteString(strings.TrimLeftFunc(t, isWhitespaceRune))
	}
	return b.String()
}

func (wordTokenizer) postProcess(changes []Change, o *options) []Change {
	return dedupeWhitespace(changes, o)
}

// DiffWords computes a word-by-word diff, with each word carrying adjacent
// whitespace so the output reads naturally.
func DiffWords(oldStr, newStr string, opts ...Option) []Change {
	return runDiff(oldStr, newStr, wordTokenizer{}, opts)
}

// dedupeWhitespace implements spec §4.3: it redistributes leading/trailing
// whitespace between an add/remove run and its flanking context so unchanged
// whitespace appears in context instead of being duplicated in the edit.
func dedupeWhitespace(changes []Change, o *options) []Change {
	if o.oneChangePerToken || len(changes) <= 1 {
		return changes
	}

	out := make([]Change, len(changes))
	copy(out, changes)

	i := 0
	for i < len(out) {
		if out[i].Added || out[i].Removed {
			start := i
			end := i
			for end+1 < len(out) && (out[end+1].Added || out[end+1].Removed) {
				end++
			}
			processRun(out, start, end)
			i = end + 1
			continue
		}
		i++
	}

	filtered := out[:0]
	for _, c := range out {
		if c.Value != "" {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func leadingSpace(s string) string {
	trimmed := strings.TrimLeftFunc(s, isWhitespaceRune)
	return s[:len(s)-len(trimmed)]
}

func trailingSpace(s string) string {
	trimmed := strings.TrimRightFunc(s, isWhitespaceRune)
	return s[len(trimmed):]
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func commonSuffix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return a[len(a)-i:]
}

// replacePrefix swaps a leading old for new, leaving s unchanged if it
// doesn't start with old.
func replacePrefix(s, old, new string) string {
	if !strings.HasPrefix(s, old) {
		return s
	}
	return new + s[len(old):]
}

// replaceSuffix swaps a trailing old for new, leaving s unchanged if it
// doesn't end with old. An empty old always matches, appending new.
func replaceSuffix(s, old, new string) string {
	if old == "" {
		return s + new
	}
	if !strings.HasSuffix(s, old) {
		return s
	}
	return s[:len(s)-len(old)] + new
}

func removePrefix(s, old string) string { return replacePrefix(s, old, "") }

func removeSuffix(s, old string) string { return replaceSuffix(s, old, "") }

// processRun redistributes whitespace for the run out[start:end+1], using
// out[start-1] and out[end+1] as start_keep/end_keep context when present.
func processRun(out []Change, start, end int) {
	var startKeep, endKeep *Change
	if start > 0 {
		startKeep = &out[start-1]
	}
	if end+1 < len(out) {
		endKeep = &out[end+1]
	}

	var removed, added *Change
	for i := start; i <= end; i++ {
		if out[i].Removed {
			removed = &out[i]
		}
		if out[i].Added {
			added = &out[i]
		}
	}

	switch {
	case removed != nil && added != nil:
		if startKeep != nil {
			lead := commonPrefix(leadingSpace(removed.Value), leadingSpace(added.Value))
			if lead != "" {
				startKeep.Value += lead
				removed.Value = removed.Value[len(lead):]
				added.Value = added.Value[len(lead):]
			}
		}
		if endKeep != nil {
			trail := commonSuffix(trailingSpace(removed.Value), trailingSpace(added.Value))
			if trail != "" {
				endKeep.Value = trail + endKeep.Value
				removed.Value = removed.Value[:len(removed.Value)-len(trail)]
				added.Value = added.Value[:len(added.Value)-len(trail)]
			}
		}
	case added != nil:
		if startKeep != nil {
			added.Value = strings.TrimLeftFunc(added.Value, isWhitespaceRune)
		}
		if endKeep != nil {
			endKeep.Value = strings.TrimLeftFunc(endKeep.Value, isWhitespaceRune)
		}
	case removed != nil:
		switch {
		case startKeep != nil && endKeep != nil:
			skValue, ekValue, delValue := startKeep.Value, endKeep.Value, removed.Value

			newFull := leadingSpace(ekValue)
			delStart, delEnd := leadingSpace(delValue), trailingSpace(delValue)
			newStart := commonPrefix(newFull, delStart)
			removed.Value = removePrefix(delValue, newStart)

			newEnd := commonSuffix(newFull[len(newStart):], delEnd)
			removed.Value = removeSuffix(removed.Value, newEnd)

			endKeep.Value = replacePrefix(ekValue, newFull, newEnd)
			startKeep.Value = replaceSuffix(skValue, newFull, newFull[:len(newFull)-len(newEnd)])
		case endKeep != nil:
			overlap := commonSuffix(trailingSpace(removed.Value), leadingSpace(endKeep.Value))
			if overlap != "" {
				removed.Value = strings.TrimSuffix(removed.Value, overlap)
			}
		case startKeep != nil:
			overlap := commonPrefix(leadingSpace(removed.Value), trailingSpace(startKeep.Value))
			if overlap != "" {
				removed.Value = strings.TrimPrefix(removed.Value, overlap)
			}
		}
	}
}
