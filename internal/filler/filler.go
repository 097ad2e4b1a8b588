// Package filler runs fill passes: it identifies each eligible control, matches it to a
// résumé path, coerces the value for the control kind and writes it through a dom.Page.
package filler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/jobfiller/internal/dom"
	"github.com/jonathan/jobfiller/internal/fields"
	"github.com/jonathan/jobfiller/internal/mapping"
	"github.com/jonathan/jobfiller/internal/types"
)

// Status is the outcome for one field in a pass.
type Status string

const (
	StatusFilled  Status = "filled"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// FieldOutcome records what happened to one field.
type FieldOutcome struct {
	ID     fields.Identifier
	Path   string
	Value  string
	Status Status
	Err    error
}

// Report is the result of one fill pass.
type Report struct {
	Counts types.FillResult
	Fields []FieldOutcome
}

// Filler writes résumé values into a page.
type Filler struct {
	page    dom.Page
	matcher mapping.Matcher
}

// New creates a Filler over page using matcher to resolve paths.
func New(page dom.Page, matcher mapping.Matcher) *Filler {
	return &Filler{page: page, matcher: matcher}
}

// Fill runs one pass over every eligible control in document order.
// Misses and write failures are counted, never returned; an error means the page could not be read.
func (f *Filler) Fill(ctx context.Context, doc types.Document) (*Report, error) {
	controls, err := f.page.Controls(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read page controls: %w", err)
	}

	found := fields.Discover(controls)
	report := &Report{Counts: types.FillResult{Total: len(found)}}

	for _, field := range found {
		outcome := f.fillField(ctx, field, controls, doc)
		switch outcome.Status {
		case StatusFilled:
			report.Counts.Filled++
		case StatusFailed:
			report.Counts.Failed++
		default:
			report.Counts.Skipped++
		}
		report.Fields = append(report.Fields, outcome)
	}

	log.Debug().
		Int("total", report.Counts.Total).
		Int("filled", report.Counts.Filled).
		Int("skipped", report.Counts.Skipped).
		Int("failed", report.Counts.Failed).
		Msg("fill pass complete")

	return report, nil
}

func (f *Filler) fillField(ctx context.Context, field fields.Field, controls []*dom.Control, doc types.Document) FieldOutcome {
	outcome := FieldOutcome{ID: field.ID}

	if !f.page.Attached(ctx, field.Control) {
		outcome.Status = StatusSkipped
		outcome.Err = &dom.DetachedError{Control: field.Control.String()}
		return outcome
	}

	path, ok := f.matcher.Match(field.ID)
	if !ok {
		log.Debug().Str("field", field.ID.String()).Msg("no mapping for field")
		outcome.Status = StatusSkipped
		return outcome
	}
	outcome.Path = path
	outcome.Value = ResolveValue(doc, path, field.ID)

	err := f.write(ctx, field.Control, controls, outcome.Value)
	var detached *dom.DetachedError
	switch {
	case err == nil:
		outcome.Status = StatusFilled
	case errors.As(err, &detached):
		outcome.Status = StatusSkipped
		outcome.Err = err
	default:
		log.Debug().Err(err).Str("field", field.ID.String()).Str("path", path).Msg("field write failed")
		outcome.Status = StatusFailed
		outcome.Err = err
	}
	return outcome
}

// Analyze snapshots every eligible control with the path it would be filled from.
func (f *Filler) Analyze(ctx context.Context) ([]types.PageFieldSnapshot, error) {
	controls, err := f.page.Controls(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read page controls: %w", err)
	}

	found := fields.Discover(controls)
	snapshots := make([]types.PageFieldSnapshot, 0, len(found))
	for _, field := range found {
		path, _ := f.matcher.Match(field.ID)
		snapshots = append(snapshots, types.PageFieldSnapshot{
			ID:     field.ID.String(),
			Type:   fields.TypeLabel(field.Control),
			Label:  fields.DisplayLabel(field.Control, field.ID),
			Mapped: path,
		})
	}
	return snapshots, nil
}
