// Package dom describes form controls and the page abstraction the filler reads and writes through.
package dom

import (
	"context"
	"fmt"
	"strings"
)

// Control is a snapshot of one input, select or textarea on a page.
type Control struct {
	Index       int      `json:"index"`
	Tag         string   `json:"tag"`
	Type        string   `json:"type"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Placeholder string   `json:"placeholder"`
	AriaLabel   string   `json:"ariaLabel"`
	Class       string   `json:"class"`
	ForLabel    string   `json:"forLabel"`
	WrapLabel   string   `json:"wrapLabel"`
	ParentHint  string   `json:"parentHint"`
	XPath       string   `json:"xpath"`
	Value       string   `json:"value"`
	Checked     bool     `json:"checked"`
	Disabled    bool     `json:"disabled"`
	Hidden      bool     `json:"hidden"`
	Options     []Option `json:"options,omitempty"`
}

// Option is one choice of a select control.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Label returns the text of the label attached by for=, else the wrapping label.
func (c *Control) Label() string {
	if c.ForLabel != "" {
		return c.ForLabel
	}
	return c.WrapLabel
}

// IsRadio reports whether the control is a radio button.
func (c *Control) IsRadio() bool {
	return c.Tag == "input" && strings.EqualFold(c.Type, "radio")
}

// IsCheckbox reports whether the control is a checkbox.
func (c *Control) IsCheckbox() bool {
	return c.Tag == "input" && strings.EqualFold(c.Type, "checkbox")
}

// IsSelect reports whether the control is a select.
func (c *Control) IsSelect() bool {
	return c.Tag == "select"
}

func (c *Control) String() string {
	return fmt.Sprintf("%s#%d(id=%q name=%q)", c.Tag, c.Index, c.ID, c.Name)
}

// Sink is the only way the filler mutates a page.
type Sink interface {
	// Attached reports whether the control is still part of the document.
	Attached(ctx context.Context, c *Control) bool
	// SetValue writes a text value, or selects the option with that value.
	SetValue(ctx context.Context, c *Control, value string) error
	// SetChecked checks or unchecks a checkbox or radio button.
	SetChecked(ctx context.Context, c *Control, checked bool) error
	// Dispatch fires a bubbling event of the given type on the control.
	Dispatch(ctx context.Context, c *Control, event string) error
}

// Page is a document whose controls can be discovered and written.
type Page interface {
	Sink
	// Controls returns every input, select and textarea in document order.
	Controls(ctx context.Context) ([]*Control, error)
}

// Events fired after every successful write, in order.
const (
	EventInput  = "input"
	EventChange = "change"
)

// DetachedError is returned when a write targets a control no longer in the document.
type DetachedError struct {
	Control string
}

func (e *DetachedError) Error() string {
	return fmt.Sprintf("control %s is no longer attached", e.Control)
}

// NoOptionError is returned when a select has no option with the requested value.
type NoOptionError struct {
	Control string
	Value   string
}

func (e *NoOptionError) Error() string {
	return fmt.Sprintf("control %s has no option with value %q", e.Control, e.Value)
}
