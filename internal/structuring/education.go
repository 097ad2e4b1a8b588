package structuring

import (
	"regexp"
	"strings"

	"github.com/jonathan/jobfiller/internal/types"
)

var (
	schoolWords = []string{"university", "college", "school", "institute", "academy"}
	degreeWords = []string{
		"bachelor", "master", "phd", "doctorate", "associate", "certificate",
		"b.s.", "b.a.", "m.s.", "m.a.", "ph.d.",
	}
	// two-letter abbreviations only count as whole words so "Systems" is not an MS
	degreeAbbrevPattern = regexp.MustCompile(`(?i)\b(?:bs|ba|ms|ma)\b`)

	fieldOfStudyPattern   = regexp.MustCompile(`(?i)\bin\s+([^,.]+)`)
	graduationWordPattern = regexp.MustCompile(`(?i)graduated|graduation|class of|completed`)
	graduationDatePattern = regexp.MustCompile(`(?i)` + monthYear + `|\d{4}`)
	gpaPattern            = regexp.MustCompile(`\b[0-9]\.[0-9][0-9]?\b`)
	placeNamePattern      = regexp.MustCompile(`[A-Z][a-z]+(?:[\s-][A-Z][a-z]+)*`)
	cityStateLoosePattern = regexp.MustCompile(`[A-Z][a-z]+(?:[\s-][A-Z][a-z]+)*,\s*[A-Z]{2}`)
)

func looksLikeSchool(line string) bool {
	lower := strings.ToLower(line)
	return containsAny(lower, schoolWords...) && !strings.Contains(lower, "degree") && runeLen(line) < maxHeaderLength
}

func looksLikeDegree(line string) bool {
	lower := strings.ToLower(line)
	if containsAny(lower, degreeWords...) || strings.Contains(lower, "degree") {
		return true
	}
	// "Boston, MA" is a place, not a Master of Arts
	return degreeAbbrevPattern.MatchString(line) && !cityStateLoosePattern.MatchString(line)
}

func looksLikeGraduationDate(line string) bool {
	return graduationWordPattern.MatchString(line) || graduationDatePattern.MatchString(line)
}

func looksLikeLocation(line string) bool {
	return cityStateLoosePattern.MatchString(line) || (placeNamePattern.MatchString(line) && runeLen(line) < 30)
}

type educationParser struct {
	entries []types.Education
	current *types.Education
	rules   []lineRule
}

func newEducationParser() *educationParser {
	p := &educationParser{entries: []types.Education{}}
	has := func(string) bool { return p.current != nil }
	p.rules = []lineRule{
		{
			name:  "achievement",
			match: func(line string) bool { return has(line) && isBullet(line) },
			apply: func(line string) { p.current.Achievements = append(p.current.Achievements, stripBullet(line)) },
		},
		{
			name:  "school",
			match: looksLikeSchool,
			apply: func(line string) {
				p.flush()
				p.current = &types.Education{School: line, Achievements: []string{}}
			},
		},
		{
			name:  "degree",
			match: func(line string) bool { return has(line) && looksLikeDegree(line) },
			apply: func(line string) {
				p.current.Degree = line
				if m := fieldOfStudyPattern.FindStringSubmatch(line); m != nil {
					p.current.Field = strings.TrimSpace(m[1])
				}
			},
		},
		{
			name:  "graduation",
			match: func(line string) bool { return has(line) && looksLikeGraduationDate(line) },
			apply: func(line string) {
				if m := graduationDatePattern.FindString(line); m != "" {
					p.current.GraduationDate = m
				}
			},
		},
		{
			name:  "gpa",
			match: func(line string) bool { return has(line) && strings.Contains(strings.ToLower(line), "gpa") },
			apply: func(line string) {
				if m := gpaPattern.FindString(line); m != "" {
					p.current.GPA = m
				}
			},
		},
		{
			name:  "location",
			match: func(line string) bool { return has(line) && p.current.Location == "" && looksLikeLocation(line) },
			apply: func(line string) { p.current.Location = line },
		},
		{
			name: "field",
			match: func(line string) bool {
				return has(line) && p.current.Field == "" && !strings.Contains(p.current.Degree, line)
			},
			apply: func(line string) { p.current.Field = line },
		},
	}
	return p
}

func (p *educationParser) flush() {
	if p.current != nil {
		p.entries = append(p.entries, *p.current)
		p.current = nil
	}
}

// parseEducation turns the lines of an education section into school entries.
func parseEducation(lines []string) []types.Education {
	p := newEducationParser()
	for _, line := range bodyLines(lines) {
		applyRules(p.rules, line)
	}
	p.flush()
	return p.entries
}
