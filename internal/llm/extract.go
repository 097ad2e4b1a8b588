package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when no JSON object can be recovered from a completion.
var ErrNoJSON = errors.New("no JSON object found in response")

// ExtractError wraps ErrNoJSON with the start of the offending text.
type ExtractError struct {
	Snippet string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%v: %q", ErrNoJSON, e.Snippet)
}

func (e *ExtractError) Unwrap() error {
	return ErrNoJSON
}

const snippetLength = 80

// ExtractJSON recovers a JSON object from free-form completion text. It tries, in order:
// the whole text, each fenced code block, then balanced-brace objects from each '{'.
func ExtractJSON(text string) (map[string]any, error) {
	if obj, ok := parseObject(text); ok {
		return obj, nil
	}

	for _, block := range fencedBlocks(text) {
		if obj, ok := parseObject(block); ok {
			return obj, nil
		}
	}

	for i := strings.IndexByte(text, '{'); i >= 0; {
		if candidate, ok := balancedObject(text, i); ok {
			if obj, ok := parseObject(candidate); ok {
				return obj, nil
			}
		}
		next := strings.IndexByte(text[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}

	snippet := []rune(strings.TrimSpace(text))
	if len(snippet) > snippetLength {
		snippet = snippet[:snippetLength]
	}
	return nil, &ExtractError{Snippet: string(snippet)}
}

// ExtractInto recovers a JSON object and decodes it into v.
func ExtractInto(text string, v any) error {
	obj, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("recovered JSON has unexpected shape: %w", err)
	}
	return nil
}

func parseObject(s string) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
