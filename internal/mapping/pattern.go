package mapping

import (
	"regexp"
	"strings"

	"github.com/jonathan/jobfiller/internal/fields"
)

// RegexPrefix marks a pattern as a regular expression.
const RegexPrefix = "re:"

// matcher tests one identifier. needle is the lower-cased identifier value.
type matcher func(id fields.Identifier, needle string) bool

// compilePattern turns a stored pattern into a matcher. Three forms exist:
//
//	re:<expr>        case-insensitive regular expression over the needle
//	<source>:<value> the whole identifier, compared case-insensitively
//	anything else    lower-cased substring of the needle
func compilePattern(p string) (matcher, error) {
	if expr, ok := strings.CutPrefix(p, RegexPrefix); ok {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, err
		}
		return func(_ fields.Identifier, needle string) bool {
			return re.MatchString(needle)
		}, nil
	}

	if exact, err := fields.ParseIdentifier(p); err == nil {
		want := exact.String()
		return func(id fields.Identifier, _ string) bool {
			return strings.EqualFold(id.String(), want)
		}, nil
	}

	sub := strings.ToLower(p)
	return func(_ fields.Identifier, needle string) bool {
		return sub != "" && strings.Contains(needle, sub)
	}, nil
}

// Exact builds the pattern that matches only id.
func Exact(id fields.Identifier) string {
	return id.String()
}

// Regex builds a regular-expression pattern.
func Regex(expr string) string {
	return RegexPrefix + expr
}
