package fields

import (
	"strings"

	"github.com/jonathan/jobfiller/internal/dom"
)

// typeHints infer an input type from its attributes when none is declared.
var typeHints = []struct {
	inferred string
	keywords []string
}{
	{"email", []string{"email"}},
	{"tel", []string{"phone", "mobile"}},
	{"date", []string{"date"}},
}

// InferType returns the control's declared type, or one inferred from its attributes.
func InferType(c *dom.Control) string {
	switch c.Tag {
	case "select":
		return "select-one"
	case "textarea":
		return "textarea"
	}
	if c.Type != "" {
		return c.Type
	}

	attrs := strings.ToLower(strings.Join([]string{c.ID, c.Name, c.Placeholder, c.AriaLabel}, " "))
	for _, hint := range typeHints {
		for _, kw := range hint.keywords {
			if strings.Contains(attrs, kw) {
				return hint.inferred
			}
		}
	}
	return "text"
}

// TypeLabel renders the tag and inferred type, e.g. "input[email]".
func TypeLabel(c *dom.Control) string {
	return c.Tag + "[" + InferType(c) + "]"
}

// DisplayLabel picks the most human-readable description of c.
func DisplayLabel(c *dom.Control, id Identifier) string {
	for _, v := range []string{c.Label(), c.Placeholder, c.AriaLabel} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return id.Value
}
