package diff

import "strings"

type lineTokenizer struct{}

func (lineTokenizer) castInput(text string, o *options) string {
	if o.stripTrailingCR {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	return text
}

func isNewlineToken(tok string) bool { return tok == "\n" || tok == "\r\n" }

func (lineTokenizer) tokenize(text string, o *options) []string {
	if o.newlineIsToken {
		var toks []string
		start := 0
		for i := 0; i < len(text); {
			if text[i] == '\n' {
				if i > start {
					toks = append(toks, text[start:i])
				}
				toks = append(toks, "\n")
				i++
				start = i
				continue
			}
			if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				if i > start {
					toks = append(toks, text[start:i])
				}
				toks = append(toks, "\r\n")
				i += 2
				start = i
				continue
			}
			i++
		}
		if start < len(text) {
			toks = append(toks, text[start:])
		}
		return toks
	}

	// Newline attached to the line it terminates; a trailing partial line
	// (no terminator) is kept as its own token without one.
	var toks []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			toks = append(toks, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		toks = append(toks, text[start:])
	}
	return toks
}

func trimLineForEquals(s string) string {
	return strings.Trim(s, " \t\f\v\r\n")
}

func stripSingleTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "\n") {
		return s[:len(s)-1]
	}
	return s
}

func (lineTokenizer) equals(a, b string, o *options) bool {
	if o.newlineIsToken && isNewlineToken(a) && isNewlineToken(b) {
		return a == b
	}
	if o.ignoreWhitespace {
		a, b = trimLineForEquals(a), trimLineForEquals(b)
	} else if o.ignoreNewlineAtEOF && !o.newlineIsToken {
		a, b = stripSingleTrailingNewline(a), stripSingleTrailingNewline(b)
	}
	if o.ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (lineTokenizer) join(tokens []string) string { return joinLiteral(tokens) }

func (lineTokenizer) postProcess(changes []Change, o *options) []Change {
	return identityPostProcess(changes, o)
}

// DiffLines computes a line-by-line diff of oldStr and newStr.
func DiffLines(oldStr, newStr string, opts ...Option) []Change {
	return runDiff(oldStr, newStr, lineTokenizer{}, opts)
}

// DiffTrimmedLines computes a line-by-line diff ignoring leading/trailing
// whitespace on each line when comparing.
func DiffTrimmedLines(oldStr, newStr string, opts ...Option) []Change {
	opts = append(append([]Option{}, opts...), IgnoreWhitespace())
	return runDiff(oldStr, newStr, lineTokenizer{}, opts)
}
