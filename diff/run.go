package diff

// runDiff applies tz's cast_input to both texts, tokenizes, and hands the
// token sequences to the Myers engine.
func runDiff(oldStr, newStr string, tz tokenizer, opts []Option) []Change {
	o := newOptions(opts)
	oldStr = tz.castInput(oldStr, o)
	newStr = tz.castInput(newStr, o)
	oldTokens := tz.tokenize(oldStr, o)
	newTokens := tz.tokenize(newStr, o)
	return diffTokens(oldStr, newStr, oldTokens, newTokens, tz, o)
}
