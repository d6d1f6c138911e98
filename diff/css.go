package diff

import "strings"

type cssTokenizer struct{}

func (cssTokenizer) castInput(text string, o *options) string { return identityCastInput(text, o) }

func isCSSDelimiter(r rune) bool {
	switch r {
	case '{', '}', ':', ';', ',':
		return true
	}
	return false
}

// tokenize splits text into maximal whitespace runs, the single delimiters
// `{ } : ; ,`, or maximal runs of any other character. Note: per spec §9
// Open Questions, "/*" and "*/" are NOT treated as comment delimiters here;
// they fall into the "other characters" run like any other text.
func (cssTokenizer) tokenize(text string, _ *options) []string {
	runes := []rune(text)
	var toks []string
	i := 0
	for i < len(runes) {
		switch {
		case isWhitespaceRune(runes[i]):
			j := i
			for j < len(runes) && isWhitespaceRune(runes[j]) {
				j++
			}
			toks = append(toks, string(runes[i:j]))
			i = j
		case isCSSDelimiter(runes[i]):
			toks = append(toks, string(runes[i]))
			i++
		default:
			j := i
			for j < len(runes) && !isWhitespaceRune(runes[j]) && !isCSSDelimiter(runes[j]) {
				j++
			}
			toks = append(toks, string(runes[i:j]))
			i = j
		}
	}
	return toks
}

func (cssTokenizer) equals(a, b string, o *options) bool {
	if o.ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (cssTokenizer) join(tokens []string) string { return joinLiteral(tokens) }

func (cssTokenizer) postProcess(changes []Change, o *options) []Change {
	return identityPostProcess(changes, o)
}

// DiffCSS computes a token-by-token diff of two CSS stylesheets.
func DiffCSS(oldStr, newStr string, opts ...Option) []Change {
	return runDiff(oldStr, newStr, cssTokenizer{}, opts)
}
