// Package types provides type definitions for structured data used throughout the job filler.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// Resume is the typed form of a structured résumé.
// Core contact fields are always emitted; optional fields are omitted when empty.
type Resume struct {
	Personal       Personal        `json:"personal"`
	Summary        string          `json:"summary"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []string        `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
}

// Personal holds contact details
type Personal struct {
	Name      string `json:"name"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Country   string `json:"country,omitempty"`
	LinkedIn  string `json:"linkedin"`
	Website   string `json:"website"`
}

// Experience is a single job entry
type Experience struct {
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets"`
}

// Education is a single school entry
type Education struct {
	School         string   `json:"school"`
	Degree         string   `json:"degree"`
	Field          string   `json:"field"`
	GraduationDate string   `json:"graduationDate"`
	GPA            string   `json:"gpa"`
	Location       string   `json:"location"`
	Achievements   []string `json:"achievements"`
}

// Certification is a single certificate or license
type Certification struct {
	Name    string `json:"name"`
	Issuer  string `json:"issuer"`
	Date    string `json:"date"`
	Details string `json:"details"`
}

// Project is a single portfolio entry
type Project struct {
	Name         string   `json:"name"`
	Date         string   `json:"date"`
	Technologies string   `json:"technologies"`
	Details      string   `json:"details"`
	Bullets      []string `json:"bullets"`
}

// NewResume returns an empty résumé with every list initialized so it serializes as [] rather than null.
func NewResume() *Resume {
	return &Resume{
		Experience:     []Experience{},
		Education:      []Education{},
		Skills:         []string{},
		Certifications: []Certification{},
		Projects:       []Project{},
	}
}

// Normalize replaces nil lists with empty ones, including nested bullet lists.
func (r *Resume) Normalize() {
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	for i := range r.Experience {
		if r.Experience[i].Bullets == nil {
			r.Experience[i].Bullets = []string{}
		}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	for i := range r.Education {
		if r.Education[i].Achievements == nil {
			r.Education[i].Achievements = []string{}
		}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].Bullets == nil {
			r.Projects[i].Bullets = []string{}
		}
	}
}

// Document is the generic JSON tree of a résumé. It keeps absent keys absent,
// which the typed Resume cannot, so path lookups see exactly what was stored.
type Document map[string]any

// ParseDocument decodes a JSON object into a Document.
func ParseDocument(data []byte) (Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("resume JSON must be an object, got %T", raw)
	}
	return Document(obj), nil
}

// ToDocument converts a typed résumé into its generic tree form.
func (r *Resume) ToDocument() (Document, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	return ParseDocument(data)
}

// Resume decodes the document into the typed form. Unknown keys are ignored.
func (d Document) Resume() (*Resume, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	r := NewResume()
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to decode document as resume: %w", err)
	}
	r.Normalize()
	return r, nil
}

// MarshalIndent renders the document as indented JSON.
func (d Document) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}
