package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobfiller/internal/dom"
	"github.com/jonathan/jobfiller/internal/filler"
	"github.com/jonathan/jobfiller/internal/llm"
	"github.com/jonathan/jobfiller/internal/logging"
	"github.com/jonathan/jobfiller/internal/mapping"
	"github.com/jonathan/jobfiller/internal/prompts"
	"github.com/jonathan/jobfiller/internal/schemas"
	"github.com/jonathan/jobfiller/internal/storage"
	"github.com/jonathan/jobfiller/internal/types"
)

// NoResumeMessage is reported when a fill has no résumé to draw from.
const NoResumeMessage = "No resume data found. Please upload a resume in the extension options."

// Field mapping completions are small and deterministic.
const (
	mapFieldsTemperature = 0.1
	mapFieldsMaxTokens   = 1000
)

// FillRequest selects what a fill pass uses.
type FillRequest struct {
	// Domain keys the stored mapping overrides.
	Domain string
	// ResumeName selects a stored résumé; empty means the active one.
	ResumeName string
	// UseAI asks the AI collaborator for field assignments when credentials exist.
	// The stored useForFieldMapping setting enables it as well.
	UseAI bool
	// Wait honours the autofill delay before the pass.
	Wait bool
}

// Analyze reports every eligible control on page and the path it would be filled from.
func (s *Service) Analyze(ctx context.Context, page dom.Page, domain string) types.AnalyzeOutcome {
	matcher, err := s.matcher(ctx, domain, mapping.FieldMapping{})
	if err != nil {
		return types.AnalyzeOutcome{Result: types.Fail("Error analyzing page", err)}
	}

	snapshots, err := filler.New(page, matcher).Analyze(ctx)
	if err != nil {
		return types.AnalyzeOutcome{Result: types.Fail("Error analyzing page", err)}
	}

	mapped := 0
	for _, snap := range snapshots {
		if snap.Mapped != "" {
			mapped++
		}
	}
	return types.AnalyzeOutcome{
		Result: types.OK("Found %d fields, %d mapped", len(snapshots), mapped),
		Fields: snapshots,
	}
}

// Fill runs one fill pass over page. The report is nil when the pass never ran.
func (s *Service) Fill(ctx context.Context, page dom.Page, req FillRequest) (types.FillOutcome, *filler.Report) {
	fillID := uuid.NewString()
	ctx = logging.WithField(ctx, "fill_id", fillID)
	logger := logging.Ctx(ctx)
	outcome := types.FillOutcome{FillID: fillID}

	if req.Wait {
		settings, err := s.store.GetSettings(ctx)
		if err != nil {
			outcome.Result = types.Fail("Error filling form", err)
			return outcome, nil
		}
		if err := s.wait(ctx, time.Duration(settings.AutofillDelay)*time.Millisecond); err != nil {
			outcome.Result = types.Fail("Error filling form", err)
			return outcome, nil
		}
	}

	stored, err := s.resumeFor(ctx, req.ResumeName)
	if errors.Is(err, storage.ErrNotFound) {
		outcome.Result = types.Result{Message: NoResumeMessage, Err: ErrNoResume}
		return outcome, nil
	}
	if err != nil {
		outcome.Result = types.Fail("Error filling form", err)
		return outcome, nil
	}

	var notes []string
	var assignments mapping.FieldMapping
	if s.wantsAI(ctx, req.UseAI) {
		assignments, err = s.mapFieldsWithAI(ctx, page, stored.Data)
		if err != nil {
			logger.Warn().Err(err).Msg("AI field mapping failed, using the mapping table")
			notes = append(notes, "AI field mapping unavailable")
		}
	}

	matcher, err := s.matcher(ctx, req.Domain, assignments)
	if err != nil {
		outcome.Result = types.Fail("Error filling form", err)
		return outcome, nil
	}

	report, err := filler.New(page, matcher).Fill(ctx, stored.Data)
	if err != nil {
		outcome.Result = types.Fail("Error filling form", err)
		return outcome, nil
	}

	outcome.Counts = report.Counts
	outcome.Success = report.Counts.Filled > 0
	outcome.Message = fmt.Sprintf("Filled %d of %d fields", report.Counts.Filled, report.Counts.Total)
	if len(notes) > 0 {
		outcome.Message += " (" + strings.Join(notes, "; ") + ")"
	}

	logger.Info().
		Str("resume", stored.Name).
		Str("domain", req.Domain).
		Int("filled", report.Counts.Filled).
		Int("skipped", report.Counts.Skipped).
		Int("failed", report.Counts.Failed).
		Msg("fill pass complete")
	return outcome, report
}

func (s *Service) resumeFor(ctx context.Context, name string) (*storage.StoredResume, error) {
	if name != "" {
		return s.store.GetResume(ctx, name)
	}
	return s.store.GetActiveResume(ctx)
}

// matcher layers AI assignments and the domain's stored entries over the defaults.
func (s *Service) matcher(ctx context.Context, domain string, assignments mapping.FieldMapping) (*mapping.Set, error) {
	var overrides mapping.FieldMapping
	if domain = normalizeDomain(domain); domain != "" {
		stored, err := s.store.GetMappings(ctx, domain)
		switch {
		case err == nil:
			overrides = stored
		case errors.Is(err, storage.ErrNotFound):
		default:
			return nil, err
		}
	}
	return mapping.ForDomain(overrides, assignments)
}

func (s *Service) wantsAI(ctx context.Context, requested bool) bool {
	api, err := s.apiSettings(ctx)
	if err != nil || !api.Configured() || s.newClient == nil {
		return false
	}
	return requested || api.UseForFieldMapping
}

// mapFieldsWithAI asks the AI collaborator which résumé path fills each field.
func (s *Service) mapFieldsWithAI(ctx context.Context, page dom.Page, doc types.Document) (mapping.FieldMapping, error) {
	client, api, err := s.client(ctx)
	if err != nil {
		return mapping.FieldMapping{}, err
	}
	defer client.Close()

	snapshots, err := filler.New(page, mapping.DefaultSet()).Analyze(ctx)
	if err != nil {
		return mapping.FieldMapping{}, err
	}
	if len(snapshots) == 0 {
		return mapping.FieldMapping{}, nil
	}

	fieldsJSON, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return mapping.FieldMapping{}, err
	}
	resumeJSON, err := doc.MarshalIndent()
	if err != nil {
		return mapping.FieldMapping{}, err
	}

	system, err := prompts.Get(prompts.AutofillFile, prompts.KeyMapFieldsSystem)
	if err != nil {
		return mapping.FieldMapping{}, err
	}
	user, err := prompts.Render(prompts.AutofillFile, prompts.KeyMapFieldsUser, map[string]string{
		"Fields": string(fieldsJSON),
		"Resume": string(resumeJSON),
	})
	if err != nil {
		return mapping.FieldMapping{}, err
	}

	resp, err := client.Complete(ctx, llm.Request{
		Model: api.Model,
		Tier:  llm.TierStandard,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: user},
		},
		Temperature: mapFieldsTemperature,
		MaxTokens:   mapFieldsMaxTokens,
	})
	if err != nil {
		return mapping.FieldMapping{}, fmt.Errorf("field mapping request failed: %w", err)
	}
	if err := s.recordUsage(ctx, resp.TokensUsed); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("failed to record token usage")
	}

	raw, err := llm.ExtractJSON(resp.Text)
	if err != nil {
		return mapping.FieldMapping{}, err
	}

	assignments := make(map[string]string, len(raw))
	for key, value := range raw {
		if path, ok := value.(string); ok && path != "" {
			assignments[key] = path
		}
	}
	if err := schemas.ValidateValue(schemas.AssignmentsSchema, raw); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("AI assignments deviate from schema, keeping valid entries")
	}

	result := mapping.FromAssignments(assignments)
	logging.Ctx(ctx).Debug().Int("assignments", result.Len()).Msg("AI field mapping received")
	return result, nil
}
