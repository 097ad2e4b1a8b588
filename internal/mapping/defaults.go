package mapping

import "regexp"

// defaultEntries is checked in order, so specific entries sit above generic ones:
// "firstname" must hit personal.firstName before "name" hits personal.name.
var defaultEntries = []Entry{
	{"personal.firstName", []string{"first-name", "firstname", "first_name", "fname", "first"}},
	{"personal.lastName", []string{"last-name", "lastname", "last_name", "lname", "surname", "last"}},
	{"personal.email", []string{"email", "email-address", "emailaddress", "email_address"}},
	{"personal.phone", []string{"phone", "phonenumber", "phone-number", "phone_number", "mobile", "cell"}},
	{"personal.linkedin", []string{"linkedin", "linkedin-url", "linkedin_url", "sociallinkedin"}},
	{"personal.website", []string{"website", "personal-website", "personal_website", "portfolio"}},
	{"personal.city", []string{"city", "town"}},
	{"personal.state", []string{"state", "province"}},
	{"personal.zip", []string{"zip", "postal", "postcode"}},
	{"personal.country", []string{"country"}},
	{"personal.address", []string{"address", "street-address", "streetaddress", "street_address"}},

	{"summary", []string{"summary", "professional-summary", "professional_summary", "about", "about-me", "about_me"}},

	{"education[0].graduationDate", []string{"graduation-date", "graduation_date", "grad-date", "grad_date"}},
	{"education[0].gpa", []string{"gpa", "grade-point-average", "grade_point_average"}},
	{"education[0].degree", []string{"degree", "degree-type", "degree_type"}},
	{"education[0].school", []string{"education", "school", "university", "college", "institution"}},
	{"education[0].field", []string{"major", "field-of-study", "field_of_study", "field"}},

	{"experience[0].startDate", []string{"start-date", "start_date", "employment-start-date", "employment_start_date"}},
	{"experience[0].endDate", []string{"end-date", "end_date", "employment-end-date", "employment_end_date"}},
	{"experience[0].title", []string{"job-title", "job_title", "title", "position"}},
	{"experience[0].company", []string{"company", "employer", "organization"}},
	{"experience[0].description", []string{"job-description", "job_description", "description", "responsibilities"}},

	{"skills", []string{"skills", "skill-list", "skill_list", "key-skills", "key_skills"}},

	{"personal.name", []string{"fullname", "full-name", "full_name", "name"}},
}

// Default returns the built-in keyword table.
func Default() FieldMapping {
	return New(defaultEntries...)
}

// fallbackRule is a generic regex tried after every table entry misses.
type fallbackRule struct {
	path    string
	pattern *regexp.Regexp
}

var fallbackRules = []fallbackRule{
	{"personal.firstName", regexp.MustCompile(`(?i)first.*name|fname|first$`)},
	{"personal.lastName", regexp.MustCompile(`(?i)last.*name|lname|surname|last$`)},
	{"personal.city", regexp.MustCompile(`(?i)city`)},
	{"personal.state", regexp.MustCompile(`(?i)state|province`)},
	{"personal.zip", regexp.MustCompile(`(?i)zip|postal`)},
}
