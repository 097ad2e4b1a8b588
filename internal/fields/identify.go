// Package fields derives identifiers for form controls and decides which controls may be filled.
package fields

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/jobfiller/internal/dom"
)

// Source names the control attribute an identifier was derived from.
type Source string

// Identifier sources in descending priority.
const (
	SourceID          Source = "id"
	SourceName        Source = "name"
	SourceLabel       Source = "label"
	SourcePlaceholder Source = "placeholder"
	SourceAria        Source = "aria"
	SourceParent      Source = "parent"
	SourceXPath       Source = "xpath"
	SourcePosition    Source = "position"
)

// Identifier is a tagged key naming a control, rendered as "<source>:<value>".
type Identifier struct {
	Source Source
	Value  string
}

func (i Identifier) String() string {
	if i.IsZero() {
		return ""
	}
	return string(i.Source) + ":" + i.Value
}

// IsZero reports whether the identifier is empty.
func (i Identifier) IsZero() bool {
	return i.Source == "" && i.Value == ""
}

// Needle is the lower-cased value used for pattern matching.
func (i Identifier) Needle() string {
	return strings.ToLower(i.Value)
}

// MarshalText renders the tagged form so identifiers can key JSON objects.
func (i Identifier) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText parses the tagged form.
func (i *Identifier) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentifier(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// ParseIdentifier splits "<source>:<value>". The value may itself contain colons.
func ParseIdentifier(s string) (Identifier, error) {
	source, value, ok := strings.Cut(s, ":")
	if !ok {
		return Identifier{}, fmt.Errorf("identifier %q has no source tag", s)
	}
	src := Source(strings.ToLower(strings.TrimSpace(source)))
	if !src.Valid() {
		return Identifier{}, fmt.Errorf("identifier %q has unknown source %q", s, source)
	}
	return Identifier{Source: src, Value: value}, nil
}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	for _, rule := range identifierRules {
		if rule.source == s {
			return true
		}
	}
	return false
}

type identifierRule struct {
	source Source
	value  func(c *dom.Control) string
}

// identifierRules is evaluated top-down; the first non-empty value wins.
var identifierRules = []identifierRule{
	{SourceID, func(c *dom.Control) string { return c.ID }},
	{SourceName, func(c *dom.Control) string { return c.Name }},
	// Only a label bound by for= identifies a control; wrapping labels are display text.
	{SourceLabel, func(c *dom.Control) string { return c.ForLabel }},
	{SourcePlaceholder, func(c *dom.Control) string { return c.Placeholder }},
	{SourceAria, func(c *dom.Control) string { return c.AriaLabel }},
	{SourceParent, func(c *dom.Control) string { return c.ParentHint }},
	{SourceXPath, func(c *dom.Control) string { return c.XPath }},
	{SourcePosition, func(c *dom.Control) string {
		if c.Index < 0 {
			return ""
		}
		return strconv.Itoa(c.Index)
	}},
}

// Identify returns the identifier for c from the highest-priority source that yields a value.
func Identify(c *dom.Control) (Identifier, bool) {
	if c == nil {
		return Identifier{}, false
	}
	for _, rule := range identifierRules {
		if v := strings.TrimSpace(rule.value(c)); v != "" {
			return Identifier{Source: rule.source, Value: v}, true
		}
	}
	return Identifier{}, false
}
