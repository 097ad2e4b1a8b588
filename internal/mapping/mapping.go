// Package mapping holds the ordered tables that map field identifiers to résumé paths,
// and the matcher that walks them.
package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/jobfiller/internal/resumepath"
)

// Entry maps one résumé path to the patterns that identify it.
type Entry struct {
	Path     string   `json:"path" yaml:"path"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// FieldMapping is an ordered path → patterns table. Order is match order.
// It encodes as a JSON or YAML object whose key order is preserved.
type FieldMapping struct {
	entries []Entry
}

// New builds a mapping from entries; a repeated path replaces the earlier patterns in place.
func New(entries ...Entry) FieldMapping {
	var m FieldMapping
	for _, e := range entries {
		m.Set(e.Path, e.Patterns...)
	}
	return m
}

// Entries returns a copy of the entries in match order.
func (m FieldMapping) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = Entry{Path: e.Path, Patterns: slices.Clone(e.Patterns)}
	}
	return out
}

// Len returns the number of paths.
func (m FieldMapping) Len() int {
	return len(m.entries)
}

// Paths returns the paths in match order.
func (m FieldMapping) Paths() []string {
	paths := make([]string, len(m.entries))
	for i, e := range m.entries {
		paths[i] = e.Path
	}
	return paths
}

// Get returns the patterns for path.
func (m FieldMapping) Get(path string) ([]string, bool) {
	if i := m.index(path); i >= 0 {
		return slices.Clone(m.entries[i].Patterns), true
	}
	return nil, false
}

// Set replaces the patterns for path, keeping its position, or appends a new entry.
func (m *FieldMapping) Set(path string, patterns ...string) {
	patterns = slices.Clone(patterns)
	if i := m.index(path); i >= 0 {
		m.entries[i].Patterns = patterns
		return
	}
	m.entries = append(m.entries, Entry{Path: path, Patterns: patterns})
}

// Delete removes path and reports whether it was present.
func (m *FieldMapping) Delete(path string) bool {
	i := m.index(path)
	if i < 0 {
		return false
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	return true
}

func (m FieldMapping) index(path string) int {
	return slices.IndexFunc(m.entries, func(e Entry) bool { return e.Path == path })
}

// Merge layers overrides over base: override entries come first, and base entries whose
// path is overridden are dropped.
func Merge(overrides, base FieldMapping) FieldMapping {
	out := FieldMapping{entries: overrides.Entries()}
	for _, e := range base.entries {
		if overrides.index(e.Path) < 0 {
			out.entries = append(out.entries, Entry{Path: e.Path, Patterns: slices.Clone(e.Patterns)})
		}
	}
	return out
}

// Concat places first ahead of rest without dropping any entries, so one path may appear twice.
func Concat(first, rest FieldMapping) FieldMapping {
	return FieldMapping{entries: append(first.Entries(), rest.Entries()...)}
}

// Validate checks every path parses and every pattern compiles.
func (m FieldMapping) Validate() error {
	var errs []error
	for _, e := range m.entries {
		if _, err := resumepath.Parse(e.Path); err != nil {
			errs = append(errs, err)
		}
		if len(e.Patterns) == 0 {
			errs = append(errs, &PatternError{Path: e.Path, Message: "no patterns"})
		}
		for _, p := range e.Patterns {
			if _, err := compilePattern(p); err != nil {
				errs = append(errs, &PatternError{Path: e.Path, Pattern: p, Message: "invalid pattern", Cause: err})
			}
		}
	}
	return errors.Join(errs...)
}

// PatternError reports an unusable mapping entry.
type PatternError struct {
	Path    string
	Pattern string
	Message string
	Cause   error
}

func (e *PatternError) Error() string {
	var sb strings.Builder
	sb.WriteString("mapping for ")
	sb.WriteString(e.Path)
	if e.Pattern != "" {
		fmt.Fprintf(&sb, " pattern %q", e.Pattern)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *PatternError) Unwrap() error {
	return e.Cause
}

// MarshalJSON writes the mapping as an object with keys in match order.
func (m FieldMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Path)
		if err != nil {
			return nil, err
		}
		patterns := e.Patterns
		if patterns == nil {
			patterns = []string{}
		}
		val, err := json.Marshal(patterns)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of path → pattern or pattern list, keeping key order.
func (m *FieldMapping) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read mapping: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("mapping must be a JSON object")
	}

	var out FieldMapping
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read mapping key: %w", err)
		}
		path, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read patterns for %s: %w", path, err)
		}
		patterns, err := decodePatterns(raw)
		if err != nil {
			return fmt.Errorf("patterns for %s: %w", path, err)
		}
		out.Set(path, patterns...)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read mapping: %w", err)
	}
	*m = out
	return nil
}

// decodePatterns accepts a single string or an array of strings.
func decodePatterns(raw json.RawMessage) ([]string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("expected string or array of strings")
	}
	return list, nil
}
