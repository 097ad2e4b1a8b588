// Package ingestion turns résumé files and URLs into text or JSON documents
// and structures text into résumé documents.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/jobfiller/internal/fetch"
	"github.com/jonathan/jobfiller/internal/types"
)

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	blankLineRuns = regexp.MustCompile(`\n\n\n+`)
)

// Source is a loaded résumé. Exactly one of Text and Document is set:
// JSON files decode straight to a document, everything else yields text.
type Source struct {
	Text     string
	Document types.Document
	Metadata *Metadata
}

// IsDocument reports whether the source is already structured.
func (s *Source) IsDocument() bool {
	return s.Document != nil
}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLineRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims trailing space and collapses interior runs of whitespace.
// Bullet lines and leading indentation survive.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	content := spaceRun.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// IngestFromFile loads a résumé file. .json files are decoded and validated as
// documents, .html/.htm files are reduced to their main text, anything else
// is read as plain text.
func IngestFromFile(path string) (*Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	metadata := NewMetadata(string(content), path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		doc, err := ParseJSONResume(content)
		if err != nil {
			return nil, err
		}
		metadata.Parser = ParserJSON
		return &Source{Document: doc, Metadata: metadata}, nil
	case ".html", ".htm":
		text, err := fetch.MainText(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
		return &Source{Text: CleanText(text), Metadata: metadata}, nil
	default:
		return &Source{Text: CleanText(string(content)), Metadata: metadata}, nil
	}
}

// WriteOutput writes a structured document and its metadata as
// <name>.resume.json and <name>.meta.json under outDir.
func WriteOutput(outDir, name string, doc types.Document, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	docJSON, err := doc.MarshalIndent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, name+".resume.json"), docJSON, 0644); err != nil {
		return fmt.Errorf("failed to write resume file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, name+".meta.json"), metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
