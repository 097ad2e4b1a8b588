package fields

import (
	"slices"
	"strings"

	"github.com/jonathan/jobfiller/internal/dom"
)

// Exclusion explains why a control is never filled. The zero value means eligible.
type Exclusion string

const (
	ExcludedHidden   Exclusion = "hidden"
	ExcludedDisabled Exclusion = "disabled"
	ExcludedType     Exclusion = "type"
	ExcludedKeyword  Exclusion = "keyword"
)

var excludedTypes = []string{"hidden", "submit", "button", "file", "password"}

// deniedKeywords mark controls that must be left for the user.
var deniedKeywords = []string{"captcha", "security", "verification", "consent", "agreement", "terms", "subscribe"}

// ExclusionReason returns why c is excluded, or "" when it may be filled.
func ExclusionReason(c *dom.Control) Exclusion {
	switch {
	case c.Hidden:
		return ExcludedHidden
	case c.Disabled:
		return ExcludedDisabled
	case slices.Contains(excludedTypes, strings.ToLower(c.Type)):
		return ExcludedType
	case hasDeniedKeyword(c):
		return ExcludedKeyword
	}
	return ""
}

func hasDeniedKeyword(c *dom.Control) bool {
	for _, attr := range []string{c.ID, c.Name, c.Placeholder, c.Class} {
		lower := strings.ToLower(attr)
		for _, kw := range deniedKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// Eligible reports whether c may be auto-filled.
func Eligible(c *dom.Control) bool {
	return ExclusionReason(c) == ""
}

// Field is an eligible control with its identifier.
type Field struct {
	ID      Identifier
	Control *dom.Control
}

// Discover filters controls to eligible ones and identifies each, in document order.
// Controls sharing an identifier collapse into the first, so a radio group is visited once.
func Discover(controls []*dom.Control) []Field {
	seen := make(map[string]bool)
	var out []Field
	for _, c := range controls {
		if !Eligible(c) {
			continue
		}
		id, ok := Identify(c)
		if !ok || seen[id.String()] {
			continue
		}
		seen[id.String()] = true
		out = append(out, Field{ID: id, Control: c})
	}
	return out
}
