package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeJSONSortsKeys(t *testing.T) {
	got, err := CanonicalizeJSON(map[string]any{"b": 1, "a": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 2,\n  \"b\": 1\n}", got)
}

func TestCanonicalizeJSONArray(t *testing.T) {
	got, err := CanonicalizeJSON([]any{1, "x", true, nil})
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  \"x\",\n  true,\n  null\n]", got)
}

func TestCanonicalizeJSONUndefined(t *testing.T) {
	got, err := CanonicalizeJSON(Undefined{})
	require.NoError(t, err)
	assert.Equal(t, "undefined", got)

	got, err = CanonicalizeJSON(Undefined{}, UndefinedReplacement("~"))
	require.NoError(t, err)
	assert.Equal(t, "~", got)
}

func TestCanonicalizeJSONUnsupportedType(t *testing.T) {
	_, err := CanonicalizeJSON(make(chan int))
	assert.Error(t, err)
}

func TestDiffJSONIgnoresKeyOrder(t *testing.T) {
	oldVal := map[string]any{"a": 1, "b": 2}
	newVal := map[string]any{"b": 2, "a": 1}
	got, err := DiffJSON(oldVal, newVal)
	require.NoError(t, err)
	for _, c := range got {
		assert.False(t, c.Added || c.Removed, "expected no changes, got %#v", got)
	}
}

func TestDiffJSONDetectsValueChange(t *testing.T) {
	oldVal := map[string]any{"a": 1}
	newVal := map[string]any{"a": 2}
	got, err := DiffJSON(oldVal, newVal)
	require.NoError(t, err)
	var sawRemove, sawAdd bool
	for _, c := range got {
		if c.Removed {
			sawRemove = true
		}
		if c.Added {
			sawAdd = true
		}
	}
	assert.True(t, sawRemove)
	assert.True(t, sawAdd)
}
