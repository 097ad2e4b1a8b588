package resumepath

import (
	"strconv"
	"strings"
)

// Get walks doc along path and returns the leaf as a string.
// Any missing step, type mismatch or out-of-range index yields "".
// Lists are joined with ", "; false, zero and null collapse to "".
func Get(doc map[string]any, path string) string {
	p, err := Parse(path)
	if err != nil {
		return ""
	}
	v, ok := Lookup(doc, p)
	if !ok {
		return ""
	}
	return leafString(v)
}

// Lookup walks doc along p and returns the raw value found.
func Lookup(doc map[string]any, p Path) (any, bool) {
	var current any = doc
	for _, seg := range p.Segments {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[seg.Key]
		if !ok {
			return nil, false
		}
		if !seg.Indexed {
			continue
		}
		list, ok := current.([]any)
		if !ok || seg.Index >= len(list) {
			return nil, false
		}
		current = list[seg.Index]
	}
	return current, true
}

func leafString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return ""
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		if val == 0 {
			return ""
		}
		return strconv.Itoa(val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = elementString(item)
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	default:
		// objects have no scalar rendering
		return ""
	}
}

// elementString renders list members. Unlike leaves, false and zero keep their text.
func elementString(v any) string {
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return leafString(val)
	}
}
