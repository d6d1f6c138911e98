package patch

import "fmt"

// ParseError reports malformed unified-diff input: an unrecognized line
// inside a hunk, a hunk whose line counts disagree with its header, or an
// invalid `@@ ... @@` header. Parsing aborts on the first ParseError.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("patch: parse error at line %d: %s", e.Line, e.Msg)
}

// ApplyError reports that a hunk could not be placed within the configured
// fuzz budget, or that the source/patch line-ending conventions conflicted
// at the end of file with no fuzz tolerance to fall back on.
type ApplyError struct {
	HunkIndex int
	Msg       string
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("patch: could not apply hunk %d: %s", e.HunkIndex, e.Msg)
}

// OptionError reports an invalid option passed to ApplyPatch or
// ApplyPatches, such as a negative fuzz factor.
type OptionError struct {
	Msg string
}

func (e *OptionError) Error() string {
	return "patch: invalid option: " + e.Msg
}
