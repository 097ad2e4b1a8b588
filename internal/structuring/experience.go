package structuring

import (
	"strings"

	"github.com/jonathan/jobfiller/internal/types"
)

// maxHeaderLength bounds lines that may open a new entry.
const maxHeaderLength = 100

var jobTitleWords = []string{
	"manager", "developer", "engineer", "director", "assistant",
	"specialist", "coordinator", "analyst", "associate", "consultant",
	"supervisor", "lead", "head", "chief", "officer",
}

// looksLikeJobHeader matches company markers or any run of two capitals.
func looksLikeJobHeader(line string) bool {
	marked := hasCompanyMarker(line) || capitalRunPattern.MatchString(line)
	return marked && runeLen(line) < maxHeaderLength
}

func hasCompanyMarker(line string) bool {
	return containsAny(line, "Inc.", "LLC", "Ltd", "Company")
}

// looksLikeDatedHeader accepts a line carrying both an entry header and its dates.
// A bare capital run such as "NYC" is not enough here; the head needs a company
// marker or a company/title split.
func looksLikeDatedHeader(line string) bool {
	if !isDateRange(line) {
		return false
	}
	head := datedHeaderPart(line)
	if head == "" || runeLen(head) >= maxHeaderLength {
		return false
	}
	_, _, split := splitCompanyAndTitle(head)
	return hasCompanyMarker(head) || split
}

func looksLikeJobTitle(line string) bool {
	return containsAny(strings.ToLower(line), jobTitleWords...) && runeLen(line) < maxHeaderLength
}

// splitCompanyAndTitle understands "Title at Company", "Company - Title" and "Title | Company".
func splitCompanyAndTitle(line string) (company, title string, ok bool) {
	if before, after, found := strings.Cut(line, " at "); found {
		return strings.TrimSpace(after), strings.TrimSpace(before), true
	}
	if before, after, found := strings.Cut(line, " - "); found {
		return strings.TrimSpace(before), strings.TrimSpace(after), true
	}
	if before, after, found := strings.Cut(line, " | "); found {
		return strings.TrimSpace(after), strings.TrimSpace(before), true
	}
	return "", "", false
}

// datedHeaderPart returns the text ahead of the first date on a line, minus any location.
// "Acme Inc. Austin, TX Jan 2020 - Present" yields "Acme Inc.".
func datedHeaderPart(line string) string {
	loc := dateTokenPattern.FindStringIndex(line)
	if loc == nil {
		return ""
	}
	head := locationPattern.ReplaceAllString(line[:loc[0]], "")
	return strings.Trim(head, " \t|,-–—(·")
}

type experienceParser struct {
	entries    []types.Experience
	current    *types.Experience
	collecting bool
	rules      []lineRule
}

func newExperienceParser() *experienceParser {
	p := &experienceParser{entries: []types.Experience{}}
	p.rules = []lineRule{
		{
			name:  "bullet",
			match: func(line string) bool { return p.current != nil && isBullet(line) },
			apply: func(line string) {
				p.collecting = true
				p.current.Bullets = append(p.current.Bullets, stripBullet(line))
			},
		},
		{
			name:  "dated-header",
			match: looksLikeDatedHeader,
			apply: func(line string) {
				p.start(datedHeaderPart(line))
				p.applyDates(line)
			},
		},
		{
			name:  "date-range",
			match: func(line string) bool { return p.current != nil && isDateRange(line) },
			apply: p.applyDates,
		},
		{
			name:  "header",
			match: looksLikeJobHeader,
			apply: p.start,
		},
		{
			name: "continuation",
			match: func(string) bool {
				return p.collecting && p.current != nil && len(p.current.Bullets) > 0
			},
			apply: func(line string) {
				last := len(p.current.Bullets) - 1
				p.current.Bullets[last] += " " + line
			},
		},
		{
			name: "title",
			match: func(line string) bool {
				return p.current != nil && p.current.Title == "" && looksLikeJobTitle(line)
			},
			apply: func(line string) { p.current.Title = line },
		},
		{
			name:  "description",
			match: func(string) bool { return p.current != nil && !p.collecting },
			apply: func(line string) { p.current.Description = appendSpaced(p.current.Description, line) },
		},
	}
	return p
}

func (p *experienceParser) start(header string) {
	p.flush()
	entry := types.Experience{Bullets: []string{}}
	if company, title, ok := splitCompanyAndTitle(header); ok {
		entry.Company, entry.Title = company, title
	} else {
		entry.Company = header
	}
	p.current = &entry
	p.collecting = false
}

func (p *experienceParser) applyDates(line string) {
	if start, end, ok := extractDates(line); ok {
		p.current.StartDate, p.current.EndDate = start, end
	}
	p.current.Location = extractLocation(line)
}

func (p *experienceParser) flush() {
	if p.current != nil {
		p.entries = append(p.entries, *p.current)
		p.current = nil
	}
}

// parseExperience turns the lines of an experience section into job entries.
// Lines before the first entry header are dropped.
func parseExperience(lines []string) []types.Experience {
	p := newExperienceParser()
	for _, line := range bodyLines(lines) {
		applyRules(p.rules, line)
	}
	p.flush()
	return p.entries
}
