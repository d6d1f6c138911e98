package diff

import "strings"

type wordSpaceTokenizer struct{}

func (wordSpaceTokenizer) castInput(text string, o *options) string { return identityCastInput(text, o) }

// tokenize splits text into: a line ending ("\r\n" or "\n"), a maximal word
// run, a maximal run of non-newline whitespace, or a single non-word
// character.
func (wordSpaceTokenizer) tokenize(text string, _ *options) []string {
	runes := []rune(text)
	var toks []string
	i := 0
	for i < len(runes) {
		switch {
		case runes[i] == '\r' && i+1 < len(runes) && runes[i+1] == '\n':
			toks = append(toks, "\r\n")
			i += 2
		case runes[i] == '\n':
			toks = append(toks, "\n")
			i++
		case isExtendedWordChar(runes[i]):
			j := i
			for j < len(runes) && isExtendedWordChar(runes[j]) {
				j++
			}
			toks = append(toks, string(runes[i:j]))
			i = j
		case isWhitespaceRune(runes[i]) && runes[i] != '\n' && runes[i] != '\r':
			j := i
			for j < len(runes) && isWhitespaceRune(runes[j]) && runes[j] != '\n' && runes[j] != '\r' {
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

func (wordSpaceTokenizer) equals(a, b string, o *options) bool {
	if o.ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (wordSpaceTokenizer) join(tokens []string) string { return joinLiteral(tokens) }

func (wordSpaceTokenizer) postProcess(changes []Change, o *options) []Change {
	return identityPostProcess(changes, o)
}

// DiffWordsWithSpace computes a word-by-word diff where whitespace runs are
// their own tokens instead of being attached to neighboring words.
func DiffWordsWithSpace(oldStr, newStr string, opts ...Option) []Change {
	return runDiff(oldStr, newStr, wordSpaceTokenizer{}, opts)
}
