package structuring

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// lineRule pairs a predicate with the handler that consumes a matching line.
// Rules are evaluated top-down; the first match wins.
type lineRule struct {
	name  string
	match func(line string) bool
	apply func(line string)
}

// applyRules runs the first matching rule and returns its name, or "" when nothing matched.
func applyRules(rules []lineRule, line string) string {
	for _, r := range rules {
		if r.match(line) {
			r.apply(line)
			return r.name
		}
	}
	return ""
}

const monthYear = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{4}`

var (
	bulletPattern      = regexp.MustCompile(`^(?:[•\-*]|\d+\.\s)`)
	bulletStripPattern = regexp.MustCompile(`^(?:[•\-*]|\d+\.)\s*`)

	dateTokenPattern      = regexp.MustCompile(`(?i)\b` + monthYear + `\b|\b\d{1,2}/\d{4}\b|\b\d{4}\b`)
	rangeSeparatorPattern = regexp.MustCompile(`(?i)-|–|—|\bto\b`)
	presentPattern        = regexp.MustCompile(`(?i)present`)

	locationPattern   = regexp.MustCompile(`\b[A-Z][a-z]+(?:[\s-][A-Z][a-z]+)*,\s*[A-Z]{2}\b`)
	capitalRunPattern = regexp.MustCompile(`[A-Z]{2,}`)
	properNounPattern = regexp.MustCompile(`^[A-Z][a-z]+(?:[\s-][A-Z][a-z]+)*$`)
)

// bodyLines trims every line and drops blanks.
func bodyLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isBullet(line string) bool {
	return bulletPattern.MatchString(line)
}

func stripBullet(line string) string {
	return strings.TrimSpace(bulletStripPattern.ReplaceAllString(line, ""))
}

func hasDate(line string) bool {
	return dateTokenPattern.MatchString(line)
}

func isDateRange(line string) bool {
	return hasDate(line) && rangeSeparatorPattern.MatchString(line)
}

// extractDates returns the first date token as start and the second as end.
// Without a second token the end is "Present" when the line says so.
func extractDates(line string) (start, end string, ok bool) {
	dates := dateTokenPattern.FindAllString(line, -1)
	if len(dates) == 0 {
		return "", "", false
	}
	start = dates[0]
	switch {
	case len(dates) > 1:
		end = dates[1]
	case presentPattern.MatchString(line):
		end = "Present"
	}
	return start, end, true
}

func extractLocation(line string) string {
	return locationPattern.FindString(line)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// appendSpaced joins s onto dst with a single space.
func appendSpaced(dst, s string) string {
	if dst == "" {
		return s
	}
	return dst + " " + s
}
