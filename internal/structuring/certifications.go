package structuring

import (
	"regexp"
	"strings"

	"github.com/jonathan/jobfiller/internal/types"
)

var (
	certificationWords = []string{"certification", "certificate", "certified", "license", "credential"}
	issuerLabelPattern = regexp.MustCompile(`^(?:Issuer|Issued by|Authority):\s*`)
	// a line made of nothing but a date, optionally prefixed with "Issued"/"Earned"
	dateOnlyPattern = regexp.MustCompile(`(?i)^(?:issued|earned|obtained|expires?)?\s*(?:` + monthYear + `|\d{1,2}/\d{4}|\d{4})$`)
)

func looksLikeCertificationName(line string) bool {
	lower := strings.ToLower(line)
	if containsAny(lower, certificationWords...) || capitalRunPattern.MatchString(line) {
		return true
	}
	return runeLen(line) < 60 && !strings.Contains(line, ",")
}

func looksLikeIssuer(line string) bool {
	return containsAny(line, "Issuer:", "Issued by:", "Authority:") || properNounPattern.MatchString(line)
}

// looksLikeDate is a dated line that is not itself a name.
func looksLikeDate(line string) bool {
	return hasDate(line) && !looksLikeCertificationName(line)
}

type certificationParser struct {
	entries []types.Certification
	current *types.Certification
	rules   []lineRule
}

func newCertificationParser() *certificationParser {
	p := &certificationParser{entries: []types.Certification{}}
	has := func() bool { return p.current != nil }
	p.rules = []lineRule{
		{
			name:  "issuer-label",
			match: func(line string) bool { return has() && issuerLabelPattern.MatchString(line) },
			apply: func(line string) { p.current.Issuer = issuerLabelPattern.ReplaceAllString(line, "") },
		},
		{
			name:  "date-only",
			match: func(line string) bool { return has() && dateOnlyPattern.MatchString(line) },
			apply: func(line string) { p.current.Date = line },
		},
		{
			name:  "name",
			match: looksLikeCertificationName,
			apply: func(line string) {
				p.flush()
				p.current = &types.Certification{Name: line}
			},
		},
		{
			name:  "issuer",
			match: func(line string) bool { return has() && looksLikeIssuer(line) },
			apply: func(line string) { p.current.Issuer = line },
		},
		{
			name:  "date",
			match: func(line string) bool { return has() && looksLikeDate(line) },
			apply: func(line string) { p.current.Date = line },
		},
		{
			name:  "details",
			match: func(string) bool { return has() },
			apply: func(line string) { p.current.Details = appendSpaced(p.current.Details, line) },
		},
	}
	return p
}

func (p *certificationParser) flush() {
	if p.current != nil {
		p.entries = append(p.entries, *p.current)
		p.current = nil
	}
}

// parseCertifications turns the lines of a certifications section into entries.
func parseCertifications(lines []string) []types.Certification {
	p := newCertificationParser()
	for _, line := range bodyLines(lines) {
		applyRules(p.rules, line)
	}
	p.flush()
	return p.entries
}
