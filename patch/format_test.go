package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPatchSingleLineCountOmitted(t *testing.T) {
	p := Patch{
		OldFileName: "f", NewFileName: "f",
		Hunks: []Hunk{{OldStart: 1, OldLines: 1, NewStart: 1, NewLines: 1, Lines: []string{"-a", "+b"}}},
	}
	out := FormatPatch(p)
	assert.Contains(t, out, "@@ -1 +1 @@\n-a\n+b\n")
}

func TestFormatPatchMultiLineCountKept(t *testing.T) {
	p := Patch{
		OldFileName: "f", NewFileName: "f",
		Hunks: []Hunk{{OldStart: 1, OldLines: 3, NewStart: 1, NewLines: 3, Lines: []string{" a", "-b", "+c", " d"}}},
	}
	out := FormatPatch(p)
	assert.Contains(t, out, "@@ -1,3 +1,3 @@\n")
}

func TestFormatPatchIndexLineOnlyWhenSameName(t *testing.T) {
	same := Patch{OldFileName: "f", NewFileName: "f"}
	assert.Contains(t, FormatPatch(same), "Index: f\n")

	diff := Patch{OldFileName: "a", NewFileName: "b"}
	assert.NotContains(t, FormatPatch(diff), "Index:")
}

func TestFormatPatchHeaders(t *testing.T) {
	p := Patch{OldFileName: "a", NewFileName: "b", OldHeader: "old", NewHeader: "new"}
	out := FormatPatch(p)
	assert.Contains(t, out, "--- a\told\n")
	assert.Contains(t, out, "+++ b\tnew\n")
}

func TestFormatPatchMultipleJoinedBySingleNewline(t *testing.T) {
	p1 := Patch{OldFileName: "a", NewFileName: "a"}
	p2 := Patch{OldFileName: "b", NewFileName: "b"}
	out := FormatPatch(p1, p2)
	idx := len(formatOne(p1))
	assert.Equal(t, "\n", out[idx:idx+1])
}

func TestCreateThenFormatThenParseRoundTrip(t *testing.T) {
	p := StructuredPatch("f", "f", "line1\nline2\nline3\n", "line1\nline2-modified\nline3\n", "", "")
	text := FormatPatch(p)

	parsed, err := ParsePatch(text)
	assert.NoError(t, err)
	assert.Len(t, parsed, 1)
	assert.Equal(t, p.Hunks, parsed[0].Hunks)
}
