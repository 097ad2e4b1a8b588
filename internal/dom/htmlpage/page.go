// Package htmlpage implements dom.Page over a parsed HTML document.
// Writes mutate the in-memory tree and events are recorded rather than dispatched.
package htmlpage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/jobfiller/internal/dom"
)

// controlSelector matches every fillable control kind.
const controlSelector = "input, select, textarea"

// hintSelector matches containers whose text may describe a control.
const hintSelector = `[class*="label"], [class*="field"]`

// maxHintLength caps the parent hint text.
const maxHintLength = 50

// Event is a dispatched event recorded by the page.
type Event struct {
	Index   int
	Type    string
	Bubbles bool
}

// Page is an in-memory HTML document.
type Page struct {
	mu     sync.Mutex
	doc    *goquery.Document
	nodes  []*html.Node
	events []Event
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{doc: doc}, nil
}

// FromString parses an HTML document held in a string.
func FromString(s string) (*Page, error) {
	return Parse(strings.NewReader(s))
}

// Controls snapshots every control in document order.
func (p *Page) Controls(_ context.Context) ([]*dom.Control, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nodes = p.nodes[:0]
	var controls []*dom.Control
	p.doc.Find(controlSelector).Each(func(i int, s *goquery.Selection) {
		p.nodes = append(p.nodes, s.Get(0))
		controls = append(controls, p.snapshot(i, s))
	})
	return controls, nil
}

func (p *Page) snapshot(index int, s *goquery.Selection) *dom.Control {
	n := s.Get(0)
	c := &dom.Control{
		Index:       index,
		Tag:         goquery.NodeName(s),
		Type:        strings.ToLower(s.AttrOr("type", "")),
		ID:          s.AttrOr("id", ""),
		Name:        s.AttrOr("name", ""),
		Placeholder: s.AttrOr("placeholder", ""),
		AriaLabel:   s.AttrOr("aria-label", ""),
		Class:       s.AttrOr("class", ""),
		XPath:       xpath(n),
		Checked:     hasAttr(n, "checked"),
		Disabled:    hasAttr(n, "disabled"),
		Hidden:      isHidden(n),
	}

	if c.ID != "" {
		p.doc.Find("label[for]").EachWithBreak(func(_ int, label *goquery.Selection) bool {
			if label.AttrOr("for", "") != c.ID {
				return true
			}
			c.ForLabel = controlFreeText(label.Get(0))
			return false
		})
	}
	if wrap := s.Closest("label"); wrap.Length() > 0 {
		c.WrapLabel = controlFreeText(wrap.Get(0))
	}
	if hint := s.Closest(hintSelector); hint.Length() > 0 {
		c.ParentHint = truncate(strings.TrimSpace(hint.Text()), maxHintLength)
	}

	switch c.Tag {
	case "select":
		s.Find("option").Each(func(_ int, opt *goquery.Selection) {
			c.Options = append(c.Options, dom.Option{Value: optionValue(opt), Text: strings.TrimSpace(opt.Text())})
		})
		c.Value = selectedValue(s)
	case "textarea":
		c.Value = s.Text()
	default:
		c.Value = s.AttrOr("value", "")
	}

	return c
}

// node returns the live node for c, or a DetachedError.
func (p *Page) node(c *dom.Control) (*html.Node, error) {
	if c == nil || c.Index < 0 || c.Index >= len(p.nodes) || !attached(p.nodes[c.Index]) {
		return nil, &dom.DetachedError{Control: c.String()}
	}
	return p.nodes[c.Index], nil
}

// Attached reports whether the control is still in the document.
func (p *Page) Attached(_ context.Context, c *dom.Control) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.node(c)
	return err == nil
}

// SetValue writes an input value, replaces textarea content or selects a matching option.
func (p *Page) SetValue(_ context.Context, c *dom.Control, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, err := p.node(c)
	if err != nil {
		return err
	}

	switch n.Data {
	case "textarea":
		for child := n.FirstChild; child != nil; {
			next := child.NextSibling
			n.RemoveChild(child)
			child = next
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	case "select":
		sel := goquery.NewDocumentFromNode(n).Find("option")
		target := sel.FilterFunction(func(_ int, opt *goquery.Selection) bool {
			return optionValue(opt) == value
		}).First()
		if target.Length() == 0 {
			return &dom.NoOptionError{Control: c.String(), Value: value}
		}
		sel.RemoveAttr("selected")
		target.SetAttr("selected", "selected")
	default:
		setAttr(n, "value", value)
	}
	return nil
}

// SetChecked toggles a checkbox or radio. Checking a radio unchecks the rest of its group.
func (p *Page) SetChecked(_ context.Context, c *dom.Control, checked bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, err := p.node(c)
	if err != nil {
		return err
	}

	if checked && c.IsRadio() && c.Name != "" {
		p.doc.Find(`input[type="radio"]`).Each(func(_ int, r *goquery.Selection) {
			if r.AttrOr("name", "") == c.Name {
				r.RemoveAttr("checked")
			}
		})
	}
	if checked {
		setAttr(n, "checked", "checked")
	} else {
		removeAttr(n, "checked")
	}
	return nil
}

// Dispatch records a bubbling event on the control.
func (p *Page) Dispatch(_ context.Context, c *dom.Control, event string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.node(c); err != nil {
		return err
	}
	p.events = append(p.events, Event{Index: c.Index, Type: event, Bubbles: true})
	return nil
}

// Events returns the events dispatched so far.
func (p *Page) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// Remove detaches the control's node from the document, as a re-rendering page would.
func (p *Page) Remove(c *dom.Control) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n, err := p.node(c); err == nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// HTML renders the current document.
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Html()
}
