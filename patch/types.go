// Package patch implements the unified-diff patch pipeline built on top of
// package diff's line tokenizer: parsing, structured creation, formatting,
// fuzzy application, and the reverse/line-ending transforms.
package patch

// Hunk is one `@@ ... @@` block of a Patch. Field names follow the external
// unified-diff wire representation (snake_case, kept for historical reasons
// per the serialized convention).
type Hunk struct {
	OldStart int      `json:"old_start"`
	OldLines int      `json:"old_lines"`
	NewStart int      `json:"new_start"`
	NewLines int      `json:"new_lines"`
	Lines    []string `json:"lines"`
}

// Patch describes a single unified diff between two named files.
type Patch struct {
	Index       string `json:"index,omitempty"`
	OldFileName string `json:"oldFileName"`
	NewFileName string `json:"newFileName"`
	OldHeader   string `json:"oldHeader,omitempty"`
	NewHeader   string `json:"newHeader,omitempty"`
	Hunks       []Hunk `json:"hunks"`
}
