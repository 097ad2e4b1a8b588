package service

import (
	"context"
	"strings"

	"github.com/jonathan/jobfiller/internal/ingestion"
	"github.com/jonathan/jobfiller/internal/logging"
	"github.com/jonathan/jobfiller/internal/schemas"
	"github.com/jonathan/jobfiller/internal/storage"
	"github.com/jonathan/jobfiller/internal/types"
)

// ImportOutcome reports a stored résumé and how it was structured.
type ImportOutcome struct {
	types.Result
	Name     string              `json:"name,omitempty"`
	Metadata *ingestion.Metadata `json:"metadata,omitempty"`
}

// ResumeListOutcome lists stored résumés.
type ResumeListOutcome struct {
	types.Result
	Resumes []storage.ResumeSummary `json:"resumes"`
}

// ResumeOutcome carries one stored résumé.
type ResumeOutcome struct {
	types.Result
	Resume *storage.StoredResume `json:"resume,omitempty"`
}

// Parser returns the résumé parser for the current credentials: the AI
// parser backed by the heuristic structurer when a key is saved, otherwise
// the heuristic structurer alone. The returned close func releases the client.
func (s *Service) Parser(ctx context.Context) (ingestion.ResumeParser, func()) {
	client, api, err := s.client(ctx)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("using heuristic resume parser")
		return ingestion.HeuristicParser{}, func() {}
	}
	parser := ingestion.FallbackParser{
		Primary:   ingestion.NewLLMParser(client, api.Model),
		Secondary: ingestion.HeuristicParser{},
	}
	return parser, func() { _ = client.Close() }
}

// ImportResume structures src if needed and stores it under name.
func (s *Service) ImportResume(ctx context.Context, name string, src *ingestion.Source) ImportOutcome {
	name = strings.TrimSpace(name)
	if name == "" {
		return ImportOutcome{Result: types.Fail("Error importing resume", &InputError{Field: "name", Message: "is required"})}
	}
	if src == nil {
		return ImportOutcome{Result: types.Fail("Error importing resume", &InputError{Field: "source", Message: "is required"})}
	}
	metadata := src.Metadata
	if metadata == nil {
		metadata = ingestion.NewMetadata(src.Text, "")
	}

	doc := src.Document
	if src.IsDocument() {
		if metadata.Parser == "" {
			metadata.Parser = ingestion.ParserJSON
		}
	} else {
		if strings.TrimSpace(src.Text) == "" {
			return ImportOutcome{Result: types.Fail("Error importing resume", &InputError{Field: "text", Message: "is empty"})}
		}

		parser, release := s.Parser(ctx)
		parsed, err := parser.Parse(ctx, src.Text)
		release()
		if err != nil {
			return ImportOutcome{Result: types.Fail("Error parsing resume", err)}
		}
		metadata.Record(parsed)
		if err := s.recordUsage(ctx, parsed.TokensUsed); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to record token usage")
		}

		if err := schemas.ValidateValue(schemas.ResumeSchema, map[string]any(parsed.Document)); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("parser", parsed.Parser).Msg("parsed resume does not match schema")
		}
		doc = parsed.Document
	}

	if err := s.store.SaveResume(ctx, name, doc); err != nil {
		return ImportOutcome{Result: types.Fail("Error saving resume", err)}
	}

	logging.Ctx(ctx).Info().Str("resume", name).Str("parser", metadata.Parser).Msg("resume imported")
	return ImportOutcome{
		Result:   types.OK("Resume %q saved", name),
		Name:     name,
		Metadata: metadata,
	}
}

// ListResumes lists stored résumés by name.
func (s *Service) ListResumes(ctx context.Context) ResumeListOutcome {
	resumes, err := s.store.ListResumes(ctx)
	if err != nil {
		return ResumeListOutcome{Result: types.Fail("Error listing resumes", err)}
	}
	return ResumeListOutcome{Result: types.OK("%d resumes", len(resumes)), Resumes: resumes}
}

// GetResume returns a résumé by name; an empty name selects the active one.
func (s *Service) GetResume(ctx context.Context, name string) ResumeOutcome {
	stored, err := s.resumeFor(ctx, name)
	if err != nil {
		return ResumeOutcome{Result: types.Fail("Error loading resume", err)}
	}
	return ResumeOutcome{Result: types.OK("Resume %q", stored.Name), Resume: stored}
}

// DeleteResume removes a résumé.
func (s *Service) DeleteResume(ctx context.Context, name string) types.Result {
	if err := s.store.DeleteResume(ctx, name); err != nil {
		return types.Fail("Error deleting resume", err)
	}
	return types.OK("Resume %q deleted", name)
}

// SetActiveResume marks a stored résumé active.
func (s *Service) SetActiveResume(ctx context.Context, name string) types.Result {
	if err := s.store.SetActiveResume(ctx, name); err != nil {
		return types.Fail("Error activating resume", err)
	}
	return types.OK("Resume %q is now active", name)
}
