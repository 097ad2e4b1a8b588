// Package resumepath resolves dotted paths such as "experience[0].title" against a résumé document.
package resumepath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one dotted component of a path, optionally indexed.
type Segment struct {
	Key     string
	Index   int
	Indexed bool
}

// Path is a parsed résumé path.
type Path struct {
	Segments []Segment
}

// String renders the path back to its textual form.
func (p Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		if seg.Indexed {
			parts[i] = fmt.Sprintf("%s[%d]", seg.Key, seg.Index)
		} else {
			parts[i] = seg.Key
		}
	}
	return strings.Join(parts, ".")
}

// Parse parses a path string. Supports "key", "a.b", "list[0]" and "list[0].key".
func Parse(path string) (Path, error) {
	if path == "" {
		return Path{}, errors.New("empty path")
	}

	var segments []Segment
	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return Path{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		seg := Segment{Key: part}
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return Path{}, fmt.Errorf("invalid path %q: unterminated index in %q", path, part)
			}
			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || idx < 0 {
				return Path{}, fmt.Errorf("invalid path %q: bad index in %q", path, part)
			}
			seg = Segment{Key: part[:open], Index: idx, Indexed: true}
		}

		if !isValidKey(seg.Key) {
			return Path{}, fmt.Errorf("invalid path %q: invalid key %q", path, seg.Key)
		}
		segments = append(segments, seg)
	}

	return Path{Segments: segments}, nil
}

// Valid reports whether path parses.
func Valid(path string) bool {
	_, err := Parse(path)
	return err == nil
}

func isValidKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
