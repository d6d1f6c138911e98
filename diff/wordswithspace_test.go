package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordSpaceTokenize(t *testing.T) {
	wt := wordSpaceTokenizer{}
	toks := wt.tokenize("foo  bar\nbaz", &options{})
	assert.Equal(t, []string{"foo", "  ", "bar", "\n", "baz"}, toks)
}

func TestWordSpaceTokenizeRoundTrip(t *testing.T) {
	wt := wordSpaceTokenizer{}
	in := "one, two!\r\nthree"
	toks := wt.tokenize(in, &options{})
	assert.Equal(t, in, wt.join(toks))
}

func TestDiffWordsWithSpaceReplacement(t *testing.T) {
	got := DiffWordsWithSpace("foo bar", "foo baz")
	want := []Change{
		{Value: "foo ", Count: 2},
		{Value: "bar", Count: 1, Removed: true},
		{Value: "baz", Count: 1, Added: true},
	}
	assert.Equal(t, want, got)
}

func TestDiffWordsWithSpacePreservesWhitespace(t *testing.T) {
	got := DiffWordsWithSpace("a   b", "a   b")
	assert.Len(t, got, 1)
	assert.Equal(t, "a   b", got[0].Value)
}
