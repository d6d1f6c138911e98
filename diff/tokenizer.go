package diff

// tokenizer is the capability contract every concrete diff granularity
// (character, word, line, ...) satisfies. The Myers engine in engine.go is
// written once against this interface.
type tokenizer interface {
	// castInput optionally normalizes text before tokenize is called.
	castInput(text string, o *options) string
	// tokenize splits text into tokens.
	tokenize(text string, o *options) []string
	// equals reports whether two tokens are equal under this tokenizer's
	// semantics.
	equals(a, b string, o *options) bool
	// join reconstructs text from a run of tokens taken from one Change.
	join(tokens []string) string
	// postProcess runs after changes are materialized; most tokenizers
	// return changes unmodified.
	postProcess(changes []Change, o *options) []Change
}

// isEmptyToken is the default emptiness test used by removeEmpty: a token is
// empty when it has zero length.
func isEmptyToken(tok string) bool { return len(tok) == 0 }

func removeEmpty(tokens []string) []string {
	out := tokens[:0:0]
	for _, t := range tokens {
		if !isEmptyToken(t) {
			out = append(out, t)
		}
	}
	return out
}

func joinLiteral(tokens []string) string {
	total := 0
	for _, t := range tokens {
		total += len(t)
	}
	buf := make([]byte, 0, total)
	for _, t := range tokens {
		buf = append(buf, t...)
	}
	return string(buf)
}

func identityPostProcess(changes []Change, _ *options) []Change { return changes }

func identityCastInput(text string, _ *options) string { return text }
