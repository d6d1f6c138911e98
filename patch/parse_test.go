package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatchHeaderless(t *testing.T) {
	patches, err := ParsePatch("@@ -2,1 +2,1 @@\n-line2\n+line2-modified\n")
	require.NoError(t, err)
	require.Len(t, patches, 1)
	p := patches[0]
	assert.Empty(t, p.OldFileName)
	require.Len(t, p.Hunks, 1)
	h := p.Hunks[0]
	assert.Equal(t, Hunk{
		OldStart: 2, OldLines: 1, NewStart: 2, NewLines: 1,
		Lines: []string{"-line2", "+line2-modified"},
	}, h)
}

func TestParsePatchWithFileHeaders(t *testing.T) {
	text := "--- a.txt\told\n+++ b.txt\tnew\n@@ -1,2 +1,2 @@\n-foo\n+bar\n baz\n"
	patches, err := ParsePatch(text)
	require.NoError(t, err)
	require.Len(t, patches, 1)
	p := patches[0]
	assert.Equal(t, "a.txt", p.OldFileName)
	assert.Equal(t, "old", p.OldHeader)
	assert.Equal(t, "b.txt", p.NewFileName)
	assert.Equal(t, "new", p.NewHeader)
	require.Len(t, p.Hunks, 1)
	assert.Equal(t, []string{"-foo", "+bar", " baz"}, p.Hunks[0].Lines)
}

func TestParsePatchIndexLine(t *testing.T) {
	text := "Index: a.txt\n===================================================================\n--- a.txt\t\n+++ a.txt\t\n@@ -1 +1 @@\n-a\n+b\n"
	patches, err := ParsePatch(text)
	require.NoError(t, err)
	require.Len(t, patches, 1)
	assert.Equal(t, "a.txt", patches[0].Index)
}

func TestParsePatchMultiplePatches(t *testing.T) {
	text := "--- a\t\n+++ a\t\n@@ -1 +1 @@\n-x\n+y\n--- b\t\n+++ b\t\n@@ -1 +1 @@\n-m\n+n\n"
	patches, err := ParsePatch(text)
	require.NoError(t, err)
	require.Len(t, patches, 2)
	assert.Equal(t, "a", patches[0].OldFileName)
	assert.Equal(t, "b", patches[1].OldFileName)
}

func TestParsePatchZeroLineHunk(t *testing.T) {
	patches, err := ParsePatch("@@ -0,0 +1,2 @@\n+line1\n+line2\n")
	require.NoError(t, err)
	require.Len(t, patches, 1)
	h := patches[0].Hunks[0]
	assert.Equal(t, 1, h.OldStart)
	assert.Equal(t, 0, h.OldLines)
	assert.Equal(t, 1, h.NewStart)
	assert.Equal(t, 2, h.NewLines)
}

func TestParsePatchCountMismatchIsError(t *testing.T) {
	_, err := ParsePatch("--- a\t\n+++ a\t\n@@ -1,2 +1,1 @@\n-x\n+y\n")
	require.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParsePatchEmptyInput(t *testing.T) {
	patches, err := ParsePatch("")
	require.NoError(t, err)
	assert.Empty(t, patches)
}
