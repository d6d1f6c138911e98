package diff

// options holds every tuning knob from every tokenizer; each concrete
// tokenizer reads only the fields it understands.
type options struct {
	ignoreCase         bool
	oneChangePerToken  bool
	maxEditLength      int // -1 means unbounded
	useLongestToken    bool

	// line tokenizer
	newlineIsToken     bool
	stripTrailingCR    bool
	ignoreWhitespace   bool
	ignoreNewlineAtEOF bool

	// json tokenizer
	undefinedReplacement string

	pool *Pool
}

func newOptions(opts []Option) *options {
	o := &options{maxEditLength: -1}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a Diff* call. Options are applied left to right.
type Option func(*options)

// IgnoreCase makes token equality case-insensitive.
func IgnoreCase() Option {
	return func(o *options) { o.ignoreCase = true }
}

// OneChangePerToken disables run-length merging of consecutive tokens that
// share the same added/removed classification, and disables the word
// tokenizers' whitespace post-processing pass.
func OneChangePerToken() Option {
	return func(o *options) { o.oneChangePerToken = true }
}

// MaxEditLength bounds the number of edits the Myers engine will search for.
// If the shortest edit script would require more than n edits, the Diff* call
// returns an empty change list instead of searching further.
func MaxEditLength(n int) Option {
	return func(o *options) { o.maxEditLength = n }
}

// NewlineIsToken makes the line tokenizer emit each newline as its own token,
// separate from the line body that precedes it.
func NewlineIsToken() Option {
	return func(o *options) { o.newlineIsToken = true }
}

// StripTrailingCR rewrites every "\r\n" to "\n" before the line tokenizer
// runs.
func StripTrailingCR() Option {
	return func(o *options) { o.stripTrailingCR = true }
}

// IgnoreWhitespace trims surrounding whitespace before comparing two line or
// word tokens for equality.
func IgnoreWhitespace() Option {
	return func(o *options) { o.ignoreWhitespace = true }
}

// IgnoreNewlineAtEOF tolerates a missing trailing newline on the final line
// when NewlineIsToken is not set.
func IgnoreNewlineAtEOF() Option {
	return func(o *options) { o.ignoreNewlineAtEOF = true }
}

// UndefinedReplacement sets the literal text CanonicalizeJSON writes for an
// [Undefined] value. A Go nil is always written as null.
func UndefinedReplacement(s string) Option {
	return func(o *options) { o.undefinedReplacement = s }
}

// WithPool reuses the scratch memory in p across this call instead of
// allocating fresh arena/path storage. p must not be used concurrently by
// more than one Diff* call at a time.
func WithPool(p *Pool) Option {
	return func(o *options) { o.pool = p }
}
