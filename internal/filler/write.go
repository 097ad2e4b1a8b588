package filler

import (
	"context"
	"strings"

	"github.com/jonathan/jobfiller/internal/dom"
)

// write commits value to c by control kind, then fires input and change on the written element.
func (f *Filler) write(ctx context.Context, c *dom.Control, controls []*dom.Control, value string) error {
	target := c
	var err error

	switch {
	case c.IsCheckbox():
		err = f.page.SetChecked(ctx, c, value != "")
	case c.IsRadio():
		target = matchRadio(radioGroup(c, controls), value)
		if target == nil {
			return &dom.NoOptionError{Control: c.String(), Value: value}
		}
		err = f.page.SetChecked(ctx, target, true)
	case c.IsSelect():
		opt, ok := matchOption(c.Options, value)
		if !ok {
			return &dom.NoOptionError{Control: c.String(), Value: value}
		}
		err = f.page.SetValue(ctx, c, opt.Value)
	default:
		err = f.page.SetValue(ctx, c, value)
	}
	if err != nil {
		return err
	}

	for _, event := range []string{dom.EventInput, dom.EventChange} {
		if err := f.page.Dispatch(ctx, target, event); err != nil {
			return err
		}
	}
	return nil
}

// radioGroup returns the enabled radios sharing c's name, in document order.
func radioGroup(c *dom.Control, controls []*dom.Control) []*dom.Control {
	if c.Name == "" {
		return []*dom.Control{c}
	}
	var group []*dom.Control
	for _, other := range controls {
		if other.IsRadio() && other.Name == c.Name && !other.Disabled {
			group = append(group, other)
		}
	}
	return group
}

// matchRadio picks the first radio whose value or label equals or occurs within value,
// ignoring case.
func matchRadio(group []*dom.Control, value string) *dom.Control {
	target := strings.ToLower(strings.TrimSpace(value))
	if target == "" {
		return nil
	}
	for _, r := range group {
		for _, candidate := range []string{r.Value, r.Label()} {
			candidate = strings.ToLower(strings.TrimSpace(candidate))
			if candidate != "" && strings.Contains(target, candidate) {
				return r
			}
		}
	}
	return nil
}

// matchOption tries an exact case-insensitive match on value or text first,
// then containment in either direction.
func matchOption(options []dom.Option, value string) (dom.Option, bool) {
	target := strings.ToLower(strings.TrimSpace(value))
	if target == "" {
		return dom.Option{}, false
	}

	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt.Value), target) || strings.EqualFold(strings.TrimSpace(opt.Text), target) {
			return opt, true
		}
	}

	for _, opt := range options {
		for _, candidate := range []string{opt.Value, opt.Text} {
			candidate = strings.ToLower(strings.TrimSpace(candidate))
			if candidate == "" {
				continue
			}
			if strings.Contains(candidate, target) || strings.Contains(target, candidate) {
				return opt, true
			}
		}
	}
	return dom.Option{}, false
}
