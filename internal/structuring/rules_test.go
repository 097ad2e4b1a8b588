package structuring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderTitle(t *testing.T) {
	tests := []struct {
		line   string
		title  string
		header bool
	}{
		{"EXPERIENCE", "experience", true},
		{"Skills:", "skills", true},
		{"  Work  ", "work", true},
		{"Awards", "awards", true},
		{"TECHNICAL SKILLS", "technical skills", true},
		{"555-123-4567", "", false},
		{"ABC", "", false},
		{"Experience at Google", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			title, ok := HeaderTitle(tt.line)
			assert.Equal(t, tt.header, ok)
			assert.Equal(t, tt.title, title)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]SectionKind{
		"professional summary":      KindSummary,
		"about me":                  KindSummary,
		"work history":              KindExperience,
		"education":                 KindEducation,
		"technical skills":          KindSkills,
		"licenses & certifications": KindCertifications,
		"portfolio":                 KindProjects,
		"awards":                    KindUnknown,
		"header":                    KindUnknown,
	}
	for title, want := range tests {
		t.Run(title, func(t *testing.T) {
			assert.Equal(t, want, Classify(title))
		})
	}
}

func TestSplitSections(t *testing.T) {
	sections := SplitSections("Jane\nSKILLS\nGo\n\nEXPERIENCE\nAcme Inc.")

	require.Len(t, sections, 3)
	assert.Equal(t, "header", sections[0].Title)
	assert.Equal(t, []string{"Jane"}, sections[0].Lines)
	assert.Equal(t, KindSkills, sections[1].Kind)
	assert.Equal(t, []string{"Go", ""}, sections[1].Lines)
	assert.Equal(t, KindExperience, sections[2].Kind)
}

func TestLooksLikeJobHeader(t *testing.T) {
	assert.True(t, looksLikeJobHeader("Acme Inc."))
	assert.True(t, looksLikeJobHeader("Widgets LLC"))
	assert.True(t, looksLikeJobHeader("IBM"))
	assert.True(t, looksLikeJobHeader("The Trading Company"))
	assert.False(t, looksLikeJobHeader("Software Engineer"))
	assert.False(t, looksLikeJobHeader("IBM "+strings.Repeat("x", 100)))
}

func TestLooksLikeJobTitle(t *testing.T) {
	assert.True(t, looksLikeJobTitle("Senior Software Engineer"))
	assert.True(t, looksLikeJobTitle("Team Lead"))
	assert.False(t, looksLikeJobTitle("Built pipelines"))
}

func TestSplitCompanyAndTitle(t *testing.T) {
	tests := []struct {
		line    string
		company string
		title   string
		ok      bool
	}{
		{"Software Engineer at Google LLC", "Google LLC", "Software Engineer", true},
		{"Acme Company - Senior Developer", "Acme Company", "Senior Developer", true},
		{"Lead Engineer | IBM", "IBM", "Lead Engineer", true},
		{"Acme Inc.", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			company, title, ok := splitCompanyAndTitle(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.company, company)
			assert.Equal(t, tt.title, title)
		})
	}
}

func TestExtractDates(t *testing.T) {
	tests := []struct {
		line  string
		start string
		end   string
		ok    bool
	}{
		{"Jan 2020 - Present", "Jan 2020", "Present", true},
		{"2018 to 2020", "2018", "2020", true},
		{"03/2019 – 05/2021", "03/2019", "05/2021", true},
		{"September 2017 — present", "September 2017", "Present", true},
		{"2015", "2015", "", true},
		{"Summer", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			start, end, ok := extractDates(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestBullets(t *testing.T) {
	assert.True(t, isBullet("• Built things"))
	assert.True(t, isBullet("- Built things"))
	assert.True(t, isBullet("* Built things"))
	assert.True(t, isBullet("1. Built things"))
	assert.False(t, isBullet("3.8 GPA"))
	assert.False(t, isBullet("Built things"))

	assert.Equal(t, "Shipped", stripBullet("12. Shipped"))
	assert.Equal(t, "Built things", stripBullet("•Built things"))
}

func TestDatedHeaderPart(t *testing.T) {
	assert.Equal(t, "Initech LLC", datedHeaderPart("Initech LLC, Austin, TX Jan 2019 - Dec 2021"))
	assert.Equal(t, "", datedHeaderPart("Jan 2020 - Present | San Francisco, CA"))
	assert.Equal(t, "", datedHeaderPart("San Francisco, CA | Jan 2020 - Present"))
	assert.Equal(t, "", datedHeaderPart("no dates here"))
}

func TestLooksLikeDatedHeader(t *testing.T) {
	assert.True(t, looksLikeDatedHeader("Initech LLC, Austin, TX Jan 2019 - Dec 2021"))
	assert.True(t, looksLikeDatedHeader("Engineer at Globex Jan 2018 - Dec 2018"))
	assert.False(t, looksLikeDatedHeader("NYC, Jan 2020 - Present"))
	assert.False(t, looksLikeDatedHeader("Jan 2020 - Present | San Francisco, CA"))
	assert.False(t, looksLikeDatedHeader("Initech LLC"))
}

func TestExperience_LocationBeforeDatesStaysOnCurrentJob(t *testing.T) {
	jobs := parseExperience([]string{"Acme Inc.", "Software Engineer", "NYC, Jan 2020 - Present", "• Built things"})

	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme Inc.", jobs[0].Company)
	assert.Equal(t, "Software Engineer", jobs[0].Title)
	assert.Equal(t, "Jan 2020", jobs[0].StartDate)
	assert.Equal(t, "Present", jobs[0].EndDate)
	assert.Equal(t, []string{"Built things"}, jobs[0].Bullets)
}

func TestExperienceRules_InOrder(t *testing.T) {
	p := newExperienceParser()

	assert.Equal(t, "", applyRules(p.rules, "Orphan line before any job"))
	assert.Equal(t, "header", applyRules(p.rules, "Acme Inc."))
	assert.Equal(t, "title", applyRules(p.rules, "Software Engineer"))
	assert.Equal(t, "date-range", applyRules(p.rules, "Jan 2020 - Present | San Francisco, CA"))
	assert.Equal(t, "description", applyRules(p.rules, "Payments platform team"))
	assert.Equal(t, "bullet", applyRules(p.rules, "• Built things"))
	assert.Equal(t, "continuation", applyRules(p.rules, "that scaled"))
	assert.Equal(t, "dated-header", applyRules(p.rules, "Initech LLC, Austin, TX Jan 2019 - Dec 2021"))
	p.flush()

	require.Len(t, p.entries, 2)
	first := p.entries[0]
	assert.Equal(t, "San Francisco, CA", first.Location)
	assert.Equal(t, "Payments platform team", first.Description)
	assert.Equal(t, []string{"Built things that scaled"}, first.Bullets)

	second := p.entries[1]
	assert.Equal(t, "Initech LLC", second.Company)
	assert.Equal(t, "Jan 2019", second.StartDate)
	assert.Equal(t, "Dec 2021", second.EndDate)
	assert.Equal(t, "Austin, TX", second.Location)
}

func TestEducationRules_DegreeAbbreviations(t *testing.T) {
	assert.True(t, looksLikeDegree("BS Computer Science"))
	assert.True(t, looksLikeDegree("M.S. Statistics"))
	assert.True(t, looksLikeDegree("Associate Degree"))
	assert.False(t, looksLikeDegree("Boston, MA"))
	assert.False(t, looksLikeDegree("Distributed Systems"))
}

func TestSkills_BulletsAndShortLines(t *testing.T) {
	skills := parseSkills([]string{"• Kubernetes", "Go", "", "- Docker, Terraform"})
	assert.Equal(t, []string{"Kubernetes", "Go", "Docker", "Terraform"}, skills)
}

func TestCertificationRules(t *testing.T) {
	assert.True(t, looksLikeCertificationName("PMP"))
	assert.True(t, looksLikeCertificationName("Scrum credential"))
	assert.False(t, looksLikeCertificationName("Completed coursework in security, networking and cloud architecture"))
	assert.True(t, looksLikeIssuer("Amazon Web Services"))
	assert.True(t, looksLikeIssuer("Issuer: CNCF"))
}

func TestProjectRules(t *testing.T) {
	assert.True(t, looksLikeTechnologies("Tech stack: Go"))
	assert.True(t, looksLikeTechnologies("Python, Flask"))
	assert.False(t, looksLikeTechnologies("Rust, Tokio"))
	assert.True(t, looksLikeProjectName("Project: Filler"))
	assert.False(t, looksLikeProjectName("Jan 2023"))
	assert.False(t, looksLikeProjectName("Technologies: Go"))
}
