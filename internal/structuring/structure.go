// Package structuring converts plain résumé text into a structured résumé using line heuristics.
package structuring

import (
	"strings"

	"github.com/jonathan/jobfiller/internal/types"
)

// Structure parses résumé text. It never fails: unrecognized text is dropped
// and missing sections stay empty. Repeated sections of one kind accumulate.
func Structure(text string) *types.Resume {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	resume := types.NewResume()
	resume.Personal = extractPersonal(text)

	for _, section := range SplitSections(text) {
		switch section.Kind {
		case KindSummary:
			summary := strings.TrimSpace(strings.Join(section.Lines, "\n"))
			if resume.Summary != "" && summary != "" {
				summary = resume.Summary + "\n" + summary
			} else if summary == "" {
				summary = resume.Summary
			}
			resume.Summary = summary
		case KindExperience:
			resume.Experience = append(resume.Experience, parseExperience(section.Lines)...)
		case KindEducation:
			resume.Education = append(resume.Education, parseEducation(section.Lines)...)
		case KindSkills:
			resume.Skills = append(resume.Skills, parseSkills(section.Lines)...)
		case KindCertifications:
			resume.Certifications = append(resume.Certifications, parseCertifications(section.Lines)...)
		case KindProjects:
			resume.Projects = append(resume.Projects, parseProjects(section.Lines)...)
		}
	}

	return resume
}
