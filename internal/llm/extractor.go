// Package llm - extractor.go describes structured extraction targets for system prompts.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "Resume")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt renders the schema as a system instruction.
func BuildExtractionPrompt(schema ExtractionSchema) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Omit sections that are not present rather than guessing.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	return sb.String()
}

// ResumeSchema returns the extraction schema for résumé text.
func ResumeSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Resume",
		Description: `You are an expert resume parser. Extract structured information from the resume text and format it as JSON.
NOTE: The resume may have been truncated due to length limitations, so work with the available content.`,
		Fields: []SchemaField{
			{
				Name:        "personal",
				Type:        `{"name": "string", "email": "string", "phone": "string", "address": "string", "linkedin": "string", "website": "string"}`,
				Description: "Contact details from the top of the resume",
				Required:    true,
			},
			{
				Name:        "summary",
				Type:        `"string"`,
				Description: "Professional summary or objective, verbatim",
			},
			{
				Name:        "experience",
				Type:        `[{"company": "string", "title": "string", "startDate": "string", "endDate": "string", "location": "string", "description": "string", "bullets": ["string"]}]`,
				Description: "Jobs in the order they appear",
				Required:    true,
			},
			{
				Name:        "education",
				Type:        `[{"school": "string", "degree": "string", "field": "string", "graduationDate": "string", "gpa": "string", "location": "string", "achievements": ["string"]}]`,
				Description: "Schools in the order they appear",
				Required:    true,
			},
			{
				Name:        "skills",
				Type:        `["string"]`,
				Description: "One entry per skill",
				Required:    true,
			},
			{
				Name:        "certifications",
				Type:        `[{"name": "string", "issuer": "string", "date": "string", "details": "string"}]`,
				Description: "Certifications and licenses",
			},
			{
				Name:        "projects",
				Type:        `[{"name": "string", "date": "string", "technologies": "string", "details": "string", "bullets": ["string"]}]`,
				Description: "Projects and portfolio items",
			},
		},
	}
}
