package htmlpage

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// attached reports whether n still hangs off a document root.
func attached(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

// parseStyle reads an inline style attribute into lower-cased declarations.
func parseStyle(style string) map[string]string {
	decls := make(map[string]string)
	for decl := range strings.SplitSeq(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		decls[strings.ToLower(strings.TrimSpace(key))] = strings.ToLower(strings.TrimSpace(val))
	}
	return decls
}

func isZeroLength(v string) bool {
	return v == "0" || v == "0px"
}

// isHidden approximates computed visibility from hidden attributes and inline styles
// on the element and its ancestors.
func isHidden(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		if hasAttr(cur, "hidden") {
			return true
		}
		style, _ := attr(cur, "style")
		decls := parseStyle(style)
		if decls["display"] == "none" {
			return true
		}
		if cur == n {
			if decls["visibility"] == "hidden" || decls["opacity"] == "0" {
				return true
			}
			if isZeroLength(decls["width"]) || isZeroLength(decls["height"]) {
				return true
			}
		}
	}
	return false
}

// xpath builds an absolute element path; same-tag siblings are numbered from 1,
// and the index is shown only past the first.
func xpath(n *html.Node) string {
	var parts []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		idx := 1
		for sib := cur.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if sib.Type == html.ElementNode && sib.Data == cur.Data {
				idx++
			}
		}
		part := "/" + cur.Data
		if idx > 1 {
			part += fmt.Sprintf("[%d]", idx)
		}
		parts = append(parts, part)
	}
	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// controlFreeText is the node's text with nested controls, scripts and styles removed,
// whitespace collapsed.
func controlFreeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		switch cur.Type {
		case html.TextNode:
			sb.WriteString(cur.Data)
			sb.WriteByte(' ')
			return
		case html.ElementNode:
			switch cur.Data {
			case "input", "select", "textarea", "script", "style":
				return
			}
		}
		for child := cur.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// optionValue follows browser semantics: a missing value attribute falls back to the text.
func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(opt.Text())
}

func selectedValue(s *goquery.Selection) string {
	opts := s.Find("option")
	selected := opts.FilterFunction(func(_ int, o *goquery.Selection) bool {
		_, ok := o.Attr("selected")
		return ok
	})
	if selected.Length() > 0 {
		return optionValue(selected.First())
	}
	if opts.Length() > 0 {
		return optionValue(opts.First())
	}
	return ""
}
