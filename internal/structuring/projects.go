package structuring

import (
	"regexp"
	"strings"

	"github.com/jonathan/jobfiller/internal/types"
)

var (
	technologyNames          = []string{"JavaScript", "TypeScript", "Python", "Java", "C++", "HTML", "React", "Node.js", "Docker", "Kubernetes", "SQL"}
	technologiesLabelPattern = regexp.MustCompile(`(?i)^(?:technologies|tech stack|tools):?\s*`)
	titleCasePattern         = regexp.MustCompile(`^[A-Z][a-zA-Z0-9\s]+$`)
)

func looksLikeTechnologies(line string) bool {
	lower := strings.ToLower(line)
	if containsAny(lower, "technologies:", "tech stack:", "tools:") {
		return true
	}
	return strings.Contains(line, ",") && containsAny(line, technologyNames...)
}

// looksLikeProjectDate is a short dated line or a date range.
func looksLikeProjectDate(line string) bool {
	return isDateRange(line) || (hasDate(line) && runeLen(line) < 30)
}

func looksLikeProjectName(line string) bool {
	named := strings.Contains(line, "Project:") ||
		titleCasePattern.MatchString(line) ||
		(runeLen(line) < 50 && !strings.Contains(line, ","))
	return named && !looksLikeProjectDate(line) && !strings.Contains(strings.ToLower(line), "technologies:")
}

type projectParser struct {
	entries    []types.Project
	current    *types.Project
	collecting bool
	rules      []lineRule
}

func newProjectParser() *projectParser {
	p := &projectParser{entries: []types.Project{}}
	has := func() bool { return p.current != nil }
	p.rules = []lineRule{
		{
			name:  "bullet",
			match: func(line string) bool { return has() && isBullet(line) },
			apply: func(line string) {
				p.collecting = true
				p.current.Bullets = append(p.current.Bullets, stripBullet(line))
			},
		},
		{
			name:  "technologies",
			match: func(line string) bool { return has() && looksLikeTechnologies(line) },
			apply: func(line string) {
				p.current.Technologies = strings.TrimSpace(technologiesLabelPattern.ReplaceAllString(line, ""))
			},
		},
		{
			name:  "date",
			match: func(line string) bool { return has() && looksLikeProjectDate(line) },
			apply: func(line string) { p.current.Date = line },
		},
		{
			name:  "name",
			match: looksLikeProjectName,
			apply: func(line string) {
				p.flush()
				p.current = &types.Project{Name: line, Bullets: []string{}}
				p.collecting = false
			},
		},
		{
			name:  "continuation",
			match: func(string) bool { return p.collecting && has() && len(p.current.Bullets) > 0 },
			apply: func(line string) {
				last := len(p.current.Bullets) - 1
				p.current.Bullets[last] += " " + line
			},
		},
		{
			name:  "details",
			match: func(string) bool { return has() && !p.collecting },
			apply: func(line string) { p.current.Details = appendSpaced(p.current.Details, line) },
		},
	}
	return p
}

func (p *projectParser) flush() {
	if p.current != nil {
		p.entries = append(p.entries, *p.current)
		p.current = nil
	}
}

// parseProjects turns the lines of a projects section into entries.
func parseProjects(lines []string) []types.Project {
	p := newProjectParser()
	for _, line := range bodyLines(lines) {
		applyRules(p.rules, line)
	}
	p.flush()
	return p.entries
}
