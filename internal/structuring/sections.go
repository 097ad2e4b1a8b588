package structuring

import (
	"regexp"
	"strings"
	"unicode"
)

// SectionKind is the résumé section a header routes to.
type SectionKind string

// Section kinds. Unknown sections are discarded.
const (
	KindUnknown        SectionKind = ""
	KindSummary        SectionKind = "summary"
	KindExperience     SectionKind = "experience"
	KindEducation      SectionKind = "education"
	KindSkills         SectionKind = "skills"
	KindCertifications SectionKind = "certifications"
	KindProjects       SectionKind = "projects"
)

// headerSection is the implicit section holding everything before the first header.
const headerSection = "header"

// Section is a header and the raw lines that follow it.
type Section struct {
	Title string
	Kind  SectionKind
	Lines []string
}

var headerWords = []string{
	"summary", "objective", "profile",
	"experience", "work", "employment",
	"education", "academic",
	"skills", "abilities", "competencies",
	"certifications", "certificates", "licenses",
	"projects", "portfolio",
	"awards", "honors", "achievements",
}

var headerPattern = regexp.MustCompile(`(?i)^\s*(` + strings.Join(headerWords, "|") + `):?\s*$`)

// sectionKinds is checked in order; the first pattern matching the title decides.
var sectionKinds = []struct {
	kind    SectionKind
	pattern *regexp.Regexp
}{
	{KindSummary, regexp.MustCompile(`(?i)summary|objective|profile|about`)},
	{KindExperience, regexp.MustCompile(`(?i)experience|work|employment|history|professional`)},
	{KindEducation, regexp.MustCompile(`(?i)education|academic|degree|university|college|school`)},
	{KindSkills, regexp.MustCompile(`(?i)skills|abilities|competencies|expertise`)},
	{KindCertifications, regexp.MustCompile(`(?i)certifications|certificates|licenses`)},
	{KindProjects, regexp.MustCompile(`(?i)projects|portfolio`)},
}

// Classify maps a section title to its kind.
func Classify(title string) SectionKind {
	for _, sk := range sectionKinds {
		if sk.pattern.MatchString(title) {
			return sk.kind
		}
	}
	return KindUnknown
}

// HeaderTitle reports whether line is a section header and returns its normalized title.
// A header is an all-caps line longer than three characters, or a known section word
// alone on its line with an optional trailing colon.
func HeaderTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if isAllCaps(trimmed) && runeLen(trimmed) > 3 {
		return strings.ToLower(trimmed), true
	}
	if headerPattern.MatchString(trimmed) {
		return strings.TrimSpace(strings.Replace(strings.ToLower(trimmed), ":", "", 1)), true
	}
	return "", false
}

// isAllCaps requires at least one letter so digit-only lines such as phone numbers stay content.
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// SplitSections cuts text into sections at every header line.
// The first section is always the implicit header section.
func SplitSections(text string) []Section {
	sections := []Section{{Title: headerSection, Kind: KindUnknown}}
	for _, line := range strings.Split(text, "\n") {
		if title, ok := HeaderTitle(line); ok {
			sections = append(sections, Section{Title: title, Kind: Classify(title)})
			continue
		}
		cur := &sections[len(sections)-1]
		cur.Lines = append(cur.Lines, line)
	}
	return sections
}
