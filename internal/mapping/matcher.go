package mapping

import (
	"github.com/jonathan/jobfiller/internal/fields"
)

// Matcher resolves a field identifier to a résumé path.
type Matcher interface {
	Match(id fields.Identifier) (path string, ok bool)
}

type compiledEntry struct {
	path     string
	matchers []matcher
}

// Set is a compiled mapping table followed by the generic regex fallbacks.
// The first entry with any matching pattern wins.
type Set struct {
	entries []compiledEntry
}

// NewSet compiles m. Entries are checked in m's order.
func NewSet(m FieldMapping) (*Set, error) {
	s := &Set{}
	for _, e := range m.entries {
		ce := compiledEntry{path: e.Path}
		for _, p := range e.Patterns {
			fn, err := compilePattern(p)
			if err != nil {
				return nil, &PatternError{Path: e.Path, Pattern: p, Message: "invalid pattern", Cause: err}
			}
			ce.matchers = append(ce.matchers, fn)
		}
		s.entries = append(s.entries, ce)
	}
	return s, nil
}

// DefaultSet returns the compiled built-in table.
func DefaultSet() *Set {
	s, err := NewSet(Default())
	if err != nil {
		panic(err)
	}
	return s
}

// ForDomain layers a domain's overrides and any exact assignments over the defaults.
// Assignments come first and never displace other entries.
func ForDomain(domain, assignments FieldMapping) (*Set, error) {
	return NewSet(Concat(assignments, Merge(domain, Default())))
}

// Match returns the first table entry that matches id, else the first regex fallback.
func (s *Set) Match(id fields.Identifier) (string, bool) {
	if path, ok := s.MatchTable(id); ok {
		return path, true
	}
	return Fallbacks{}.Match(id)
}

// MatchTable checks only the table entries.
func (s *Set) MatchTable(id fields.Identifier) (string, bool) {
	needle := id.Needle()
	for _, e := range s.entries {
		for _, fn := range e.matchers {
			if fn(id, needle) {
				return e.path, true
			}
		}
	}
	return "", false
}

// Fallbacks matches with the generic regexes alone.
type Fallbacks struct{}

// Match walks the fallback regexes in their fixed order.
func (Fallbacks) Match(id fields.Identifier) (string, bool) {
	needle := id.Needle()
	for _, rule := range fallbackRules {
		if rule.pattern.MatchString(needle) {
			return rule.path, true
		}
	}
	return "", false
}
