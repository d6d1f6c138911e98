package diff

import "strings"

type sentenceTokenizer struct{}

func (sentenceTokenizer) castInput(text string, o *options) string { return identityCastInput(text, o) }

func isTerminator(r byte) bool { return r == '.' || r == '!' || r == '?' }

// tokenize splits text into sentences terminated by '.', '!' or '?' when
// followed by whitespace or end of input. Whitespace following a terminator
// is its own token. If the input ends with terminator+whitespace, a trailing
// empty token is emitted as a round-trip marker for join.
func (sentenceTokenizer) tokenize(text string, _ *options) []string {
	var toks []string
	start := 0
	i := 0
	for i < len(text) {
		if isTerminator(text[i]) && (i+1 == len(text) || isWhitespaceByte(text[i+1])) {
			toks = append(toks, text[start:i+1])
			start = i + 1
			j := i + 1
			for j < len(text) && isWhitespaceByte(text[j]) {
				j++
			}
			if j > start {
				toks = append(toks, text[start:j])
				start = j
			}
			i = j
			continue
		}
		i++
	}
	if start < len(text) {
		toks = append(toks, text[start:])
	} else if len(toks) > 0 && len(text) > 0 && isWhitespaceByte(text[len(text)-1]) {
		// Round-trip marker: only needed when the input ends on
		// terminator+whitespace, not on a bare trailing terminator.
		toks = append(toks, "")
	}
	return toks
}

func isWhitespaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func (sentenceTokenizer) equals(a, b string, o *options) bool {
	if o.ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (sentenceTokenizer) join(tokens []string) string { return joinLiteral(tokens) }

func (sentenceTokenizer) postProcess(changes []Change, o *options) []Change {
	return identityPostProcess(changes, o)
}

// DiffSentences computes a sentence-by-sentence diff of oldStr and newStr.
func DiffSentences(oldStr, newStr string, opts ...Option) []Change {
	return runDiff(oldStr, newStr, sentenceTokenizer{}, opts)
}
