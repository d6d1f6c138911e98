package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSSTokenize(t *testing.T) {
	ct := cssTokenizer{}
	toks := ct.tokenize(".a{color:red;}", &options{})
	assert.Equal(t, []string{".a", "{", "color", ":", "red", ";", "}"}, toks)
}

func TestCSSTokenizeCommentDelimitersNotSpecial(t *testing.T) {
	ct := cssTokenizer{}
	toks := ct.tokenize("/*x*/a", &options{})
	assert.Equal(t, []string{"/*x*/a"}, toks)
}

func TestDiffCSS(t *testing.T) {
	got := DiffCSS(".a{color:red;}", ".a{color:blue;}")
	var removed, added bool
	for _, c := range got {
		if c.Removed && c.Value == "red" {
			removed = true
		}
		if c.Added && c.Value == "blue" {
			added = true
		}
	}
	assert.True(t, removed)
	assert.True(t, added)
}
