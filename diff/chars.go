package diff

import "unicode/utf8"

type charTokenizer struct{}

func (charTokenizer) castInput(text string, o *options) string { return identityCastInput(text, o) }

func (charTokenizer) tokenize(text string, _ *options) []string {
	toks := make([]string, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		toks = append(toks, string(r))
	}
	return toks
}

func (charTokenizer) equals(a, b string, o *options) bool {
	if o.ignoreCase {
		return equalFoldRune(a, b)
	}
	return a == b
}

func (charTokenizer) join(tokens []string) string { return joinLiteral(tokens) }

func (charTokenizer) postProcess(changes []Change, o *options) []Change {
	return identityPostProcess(changes, o)
}

// DiffChars computes a character-by-character diff of oldStr and newStr.
func DiffChars(oldStr, newStr string, opts ...Option) []Change {
	return runDiff(oldStr, newStr, charTokenizer{}, opts)
}
