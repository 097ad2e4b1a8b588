// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobfiller/internal/filler"
	"github.com/jonathan/jobfiller/internal/ingestion"
	"github.com/jonathan/jobfiller/internal/mapping"
	"github.com/jonathan/jobfiller/internal/storage"
	"github.com/jonathan/jobfiller/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFillResult outputs the counts of a fill pass and the fields it touched.
func (p *Printer) PrintFillResult(out types.FillOutcome, report *filler.Report) {
	var sb strings.Builder
	sb.WriteString(out.Message + "\n")
	if out.FillID != "" {
		sb.WriteString(fmt.Sprintf("Fill ID:  %s\n", out.FillID))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total:    %d\n", out.Counts.Total))
	sb.WriteString(fmt.Sprintf("Filled:   %d\n", out.Counts.Filled))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", out.Counts.Skipped))
	sb.WriteString(fmt.Sprintf("Failed:   %d", out.Counts.Failed))

	if report != nil {
		var filled, failed []filler.FieldOutcome
		for _, f := range report.Fields {
			switch f.Status {
			case filler.StatusFilled:
				filled = append(filled, f)
			case filler.StatusFailed:
				failed = append(failed, f)
			}
		}

		if len(filled) > 0 {
			sb.WriteString("\n\nFilled:\n")
			count := min(len(filled), maxItemsToShow)
			for i := 0; i < count; i++ {
				sb.WriteString(fmt.Sprintf("  ✓ %s ← %s\n", filled[i].ID, filled[i].Path))
			}
			if len(filled) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(filled)-maxItemsToShow))
			}
		}
		if len(failed) > 0 {
			sb.WriteString("\nFailed:\n")
			for _, f := range failed {
				sb.WriteString(fmt.Sprintf("  ⚠ %s: %v\n", f.ID, f.Err))
			}
		}
	}

	title := "FILL RESULT"
	if !out.Success {
		title = "FILL RESULT (nothing filled)"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFieldSnapshots outputs the analysis of a page as a table.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFieldSnapshots(snapshots []types.PageFieldSnapshot) {
	if len(snapshots) == 0 {
		fmt.Fprintln(p.out, "No fillable fields found.")
		return
	}

	fmt.Fprintf(p.out, "%-28s %-18s %-24s %s\n", "FIELD", "TYPE", "LABEL", "MAPPED TO")
	for _, s := range snapshots {
		mapped := s.Mapped
		if mapped == "" {
			mapped = "-"
		}
		fmt.Fprintf(p.out, "%-28s %-18s %-24s %s\n", clip(s.ID, 28), clip(s.Type, 18), clip(s.Label, 24), mapped)
	}
}

// PrintResume outputs a human-readable summary of a structured résumé.
func (p *Printer) PrintResume(resume *types.Resume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", resume.Personal.Name))
	if resume.Personal.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", resume.Personal.Email))
	}
	if resume.Personal.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", resume.Personal.Phone))
	}
	sb.WriteString("\n")

	if len(resume.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(resume.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			job := resume.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", job.Title))
			if job.Company != "" {
				sb.WriteString(fmt.Sprintf(" at %s", job.Company))
			}
			sb.WriteString("\n")
		}
		if len(resume.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(resume.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(resume.Education), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s %s\n", resume.Education[i].Degree, resume.Education[i].School))
		}
		sb.WriteString("\n")
	}

	if len(resume.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", strings.Join(resume.Skills, ", ")))
	}
	if n := len(resume.Certifications) + len(resume.Projects); n > 0 {
		sb.WriteString(fmt.Sprintf("Also:     %d certifications, %d projects\n", len(resume.Certifications), len(resume.Projects)))
	}

	p.printBox("STRUCTURED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImportMetadata outputs how a résumé was structured.
func (p *Printer) PrintImportMetadata(name string, m *ingestion.Metadata) {
	if m == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Resume:   %s\n", name))
	if m.Source != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", m.Source))
	}
	sb.WriteString(fmt.Sprintf("Parser:   %s\n", m.Parser))
	if m.TokensUsed > 0 {
		sb.WriteString(fmt.Sprintf("Tokens:   %d\n", m.TokensUsed))
	}
	if m.Truncated {
		sb.WriteString("⚠ text was truncated before parsing\n")
	}
	if m.Fallback {
		sb.WriteString("⚠ AI parsing failed; a fallback result was stored\n")
	}
	sb.WriteString(fmt.Sprintf("Hash:     %s", clip(m.Hash, 16)))

	p.printBox("RESUME IMPORTED", sb.String())
}

// PrintResumeList outputs stored résumés, marking the active one.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResumeList(resumes []storage.ResumeSummary) {
	if len(resumes) == 0 {
		fmt.Fprintln(p.out, "No resumes stored.")
		return
	}
	for _, r := range resumes {
		marker := " "
		if r.Active {
			marker = "*"
		}
		fmt.Fprintf(p.out, "%s %-30s %s\n", marker, r.Name, r.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

// PrintMappings outputs a domain's mapping entries in match order.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMappings(domain string, m mapping.FieldMapping) {
	fmt.Fprintf(p.out, "Mappings for %s (%d entries)\n", domain, m.Len())
	for _, e := range m.Entries() {
		fmt.Fprintf(p.out, "  %-32s %s\n", e.Path, strings.Join(e.Patterns, ", "))
	}
}
