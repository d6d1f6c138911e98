package xmlconv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thehowl/godiff/diff"
)

func TestConvertChangesToXML(t *testing.T) {
	changes := []diff.Change{
		{Value: "a", Count: 1},
		{Value: "b", Count: 1, Removed: true},
		{Value: "x", Count: 1, Added: true},
		{Value: "c", Count: 1},
	}
	got := ConvertChangesToXML(changes)
	assert.Equal(t, "a<del>b</del><ins>x</ins>c", got)
}

func TestConvertChangesToXMLEscapes(t *testing.T) {
	changes := []diff.Change{
		{Value: `<a href="x">&</a>`, Added: true},
	}
	got := ConvertChangesToXML(changes)
	assert.Equal(t, `<ins>&lt;a href=&quot;x&quot;&gt;&amp;&lt;/a&gt;</ins>`, got)
}
