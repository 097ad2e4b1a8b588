package structuring

import (
	"regexp"
	"strings"

	"github.com/jonathan/jobfiller/internal/types"
)

// nameCandidateLines is how many leading non-blank lines may hold the candidate name.
const nameCandidateLines = 5

var (
	emailPattern     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern     = regexp.MustCompile(`(\+\d{1,2}\s?)?(\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4})`)
	phoneOnlyPattern = regexp.MustCompile(`^\d{3}[-.\s]?\d{3}[-.\s]?\d{4}$`)
	addressPattern   = regexp.MustCompile(`[A-Za-z\s]+,\s*[A-Z]{2}\s*\d{5}`)
	cityStatePattern = regexp.MustCompile(`([A-Za-z][A-Za-z\s]*?),\s*([A-Z]{2})\s*(\d{5})`)
	linkedInPattern  = regexp.MustCompile(`linkedin\.com/in/[a-zA-Z0-9-]+`)
	websitePattern   = regexp.MustCompile(`(https?://[^\s]+)|(www\.[^\s]+)`)
)

// extractPersonal fills contact details from the whole text.
func extractPersonal(text string) types.Personal {
	p := types.Personal{
		Name:     extractName(text),
		Email:    emailPattern.FindString(text),
		Phone:    phonePattern.FindString(text),
		Address:  extractAddress(text),
		LinkedIn: extractLinkedIn(text),
		Website:  extractWebsite(text),
	}
	if m := cityStatePattern.FindStringSubmatch(p.Address); m != nil {
		p.City = strings.TrimSpace(m[1])
		p.State = m[2]
		p.Zip = m[3]
	}
	return p
}

// extractName picks the first early line that is not an email, phone number or URL.
func extractName(text string) string {
	lines := bodyLines(strings.Split(text, "\n"))
	if len(lines) > nameCandidateLines {
		lines = lines[:nameCandidateLines]
	}
	for _, line := range lines {
		if strings.Contains(line, "@") || phoneOnlyPattern.MatchString(line) {
			continue
		}
		if strings.Contains(line, "http") || strings.Contains(line, "www.") {
			continue
		}
		return line
	}
	return ""
}

func extractAddress(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if addressPattern.MatchString(trimmed) {
			return trimmed
		}
	}
	return ""
}

func extractLinkedIn(text string) string {
	m := linkedInPattern.FindString(text)
	if m == "" {
		return ""
	}
	return "https://www." + m
}

// extractWebsite returns the first URL that is not a LinkedIn profile, with a scheme.
func extractWebsite(text string) string {
	for _, m := range websitePattern.FindAllString(text, -1) {
		if strings.Contains(m, "linkedin.com") {
			continue
		}
		if !strings.HasPrefix(m, "http") {
			return "https://" + m
		}
		return m
	}
	return ""
}
