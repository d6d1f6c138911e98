package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentenceTokenize(t *testing.T) {
	st := sentenceTokenizer{}
	toks := st.tokenize("Hello world. How are you? Fine!", &options{})
	// Ends on a bare terminator (no trailing whitespace), so no empty
	// round-trip marker is emitted.
	assert.Equal(t, []string{
		"Hello world.", " ", "How are you?", " ", "Fine!",
	}, toks)
}

func TestSentenceTokenizeTrailingWhitespace(t *testing.T) {
	st := sentenceTokenizer{}
	toks := st.tokenize("One. Two. ", &options{})
	assert.Equal(t, []string{"One.", " ", "Two.", " ", ""}, toks)
}

func TestSentenceTokenizeNoTerminator(t *testing.T) {
	st := sentenceTokenizer{}
	toks := st.tokenize("no terminator here", &options{})
	assert.Equal(t, []string{"no terminator here"}, toks)
}

func TestDiffSentences(t *testing.T) {
	got := DiffSentences(
		"The cat sat. The dog ran.",
		"The cat sat. The dog slept.",
	)
	var removed, added bool
	for _, c := range got {
		if c.Removed && c.Value == "The dog ran." {
			removed = true
		}
		if c.Added && c.Value == "The dog slept." {
			added = true
		}
	}
	assert.True(t, removed)
	assert.True(t, added)
}
