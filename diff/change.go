// Package diff implements the Myers shortest-edit-script algorithm over a
// family of tokenizers (characters, words, lines, sentences, CSS, JSON),
// producing a sequence of [Change] records describing how to turn one text
// into another.
package diff

// Change is one contiguous run of tokens in a diff result, classified as an
// addition, a removal, or unchanged context.
//
// Added and Removed are never both true. Count is the number of tokens under
// the tokenizer that produced this Change.
type Change struct {
	Value   string
	Count   int
	Added   bool
	Removed bool
}
