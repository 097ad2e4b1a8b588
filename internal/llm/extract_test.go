package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleObject = map[string]any{
	"personal": map[string]any{"name": "Jane {Q} Public", "email": "jane@x.com"},
	"skills":   []any{"Go", "SQL"},
	"nested":   map[string]any{"deep": map[string]any{"n": float64(3)}},
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestExtractJSON_WholeText(t *testing.T) {
	got, err := ExtractJSON("  " + marshal(t, sampleObject) + "\n")
	require.NoError(t, err)
	assert.Equal(t, sampleObject, got)
}

func TestExtractJSON_Fenced(t *testing.T) {
	text := "Here you go:\n```json\n" + marshal(t, sampleObject) + "\n```\nAnything else?"
	got, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, sampleObject, got)
}

func TestExtractJSON_UntaggedFence(t *testing.T) {
	got, err := ExtractJSON("```\n" + marshal(t, sampleObject) + "\n```")
	require.NoError(t, err)
	assert.Equal(t, sampleObject, got)
}

func TestExtractJSON_BalancedBraces(t *testing.T) {
	encoded := marshal(t, sampleObject)
	text := "prose {" + encoded[1:] + " more text"

	got, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, sampleObject, got)
}

func TestExtractJSON_MultipleObjectsTakesFirst(t *testing.T) {
	got, err := ExtractJSON(`Result: {"a": 1} and also {"b": 2}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, got)
}

func TestExtractJSON_SkipsUnparseableCandidate(t *testing.T) {
	got, err := ExtractJSON(`Template {name} filled: {"name": "Jane"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Jane"}, got)
}

func TestExtractJSON_BrokenFenceFallsThrough(t *testing.T) {
	text := "```json\n{not json}\n```\nActually: {\"ok\": true}"
	got, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, got)
}

func TestExtractJSON_Failure(t *testing.T) {
	tests := []string{
		"",
		"I could not parse that resume.",
		`["an", "array"]`,
		`{"unterminated": true`,
		strings.Repeat("x", 200),
	}
	for _, input := range tests {
		_, err := ExtractJSON(input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoJSON))

		var extractErr *ExtractError
		require.ErrorAs(t, err, &extractErr)
		assert.LessOrEqual(t, len([]rune(extractErr.Snippet)), snippetLength)
	}
}

func TestExtractInto(t *testing.T) {
	var assignments map[string]string
	err := ExtractInto("```json\n{\"id:fname\": \"personal.firstName\"}\n```", &assignments)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id:fname": "personal.firstName"}, assignments)

	err = ExtractInto(`{"id:fname": 5}`, &assignments)
	assert.Error(t, err)
}
