package diff

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type jsonTokenizer struct{}

func (jsonTokenizer) castInput(text string, o *options) string { return identityCastInput(text, o) }

// tokenize splits text into lines terminated by '\n' (inclusive); a trailing
// partial line is emitted as its own token.
func (jsonTokenizer) tokenize(text string, _ *options) []string {
	var toks []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			toks = append(toks, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		toks = append(toks, text[start:])
	}
	return toks
}

// stripTrailingComma drops a single trailing ',' that sits immediately
// before the line's terminator (or at the very end, for a partial line).
func stripTrailingComma(s string) string {
	term := ""
	body := s
	if strings.HasSuffix(body, "\r\n") {
		term, body = "\r\n", body[:len(body)-2]
	} else if strings.HasSuffix(body, "\n") {
		term, body = "\n", body[:len(body)-1]
	}
	body = strings.TrimSuffix(body, ",")
	return body + term
}

func (jsonTokenizer) equals(a, b string, o *options) bool {
	a, b = stripTrailingComma(a), stripTrailingComma(b)
	if o.ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (jsonTokenizer) join(tokens []string) string { return joinLiteral(tokens) }

func (jsonTokenizer) postProcess(changes []Change, o *options) []Change {
	return identityPostProcess(changes, o)
}

// Undefined is a sentinel value standing in for JSON's "undefined", which has
// no Go equivalent. CanonicalizeJSON replaces it with the text configured by
// UndefinedReplacement (default "undefined").
type Undefined struct{}

// CanonicalizeJSON serializes v as indented JSON with map keys in sorted
// order, so that semantically identical values produce byte-identical text
// regardless of original key order.
func CanonicalizeJSON(v any, opts ...Option) (string, error) {
	o := newOptions(opts)
	var b strings.Builder
	if err := canonicalizeValue(&b, v, 0, o); err != nil {
		return "", err
	}
	return b.String(), nil
}

func undefinedReplacement(o *options) string {
	if o.undefinedReplacement != "" {
		return o.undefinedReplacement
	}
	return "undefined"
}

func canonicalizeValue(b *strings.Builder, v any, indent int, o *options) error {
	switch t := v.(type) {
	case Undefined:
		b.WriteString(undefinedReplacement(o))
		return nil
	case nil:
		b.WriteString("null")
		return nil
	case map[string]any:
		return canonicalizeObject(b, t, indent, o)
	case []any:
		return canonicalizeArray(b, t, indent, o)
	case string:
		b.WriteString(strconv.Quote(t))
		return nil
	case bool:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		return nil
	case float64:
		b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
		return nil
	case int:
		b.WriteString(strconv.Itoa(t))
		return nil
	default:
		return fmt.Errorf("diff: cannot canonicalize value of type %T", v)
	}
}

func canonicalizeObject(b *strings.Builder, m map[string]any, indent int, o *options) error {
	if len(m) == 0 {
		b.WriteString("{}")
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("{\n")
	pad := strings.Repeat("  ", indent+1)
	for i, k := range keys {
		b.WriteString(pad)
		b.WriteString(strconv.Quote(k))
		b.WriteString(": ")
		if err := canonicalizeValue(b, m[k], indent+1, o); err != nil {
			return err
		}
		if i != len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString("}")
	return nil
}

func canonicalizeArray(b *strings.Builder, a []any, indent int, o *options) error {
	if len(a) == 0 {
		b.WriteString("[]")
		return nil
	}
	b.WriteString("[\n")
	pad := strings.Repeat("  ", indent+1)
	for i, v := range a {
		b.WriteString(pad)
		if err := canonicalizeValue(b, v, indent+1, o); err != nil {
			return err
		}
		if i != len(a)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString("]")
	return nil
}

// DiffJSON canonicalizes oldVal and newVal and diffs their textual
// representations line by line, treating a line that only gained or lost a
// trailing comma as unchanged context.
func DiffJSON(oldVal, newVal any, opts ...Option) ([]Change, error) {
	oldStr, err := CanonicalizeJSON(oldVal, opts...)
	if err != nil {
		return nil, err
	}
	newStr, err := CanonicalizeJSON(newVal, opts...)
	if err != nil {
		return nil, err
	}
	withLongest := append(append([]Option{}, opts...), func(o *options) { o.useLongestToken = true })
	return runDiff(oldStr, newStr, jsonTokenizer{}, withLongest), nil
}
