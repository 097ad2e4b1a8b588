package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/jobfiller/internal/llm"
	"github.com/jonathan/jobfiller/internal/prompts"
	"github.com/jonathan/jobfiller/internal/structuring"
	"github.com/jonathan/jobfiller/internal/types"
)

// Request shape for AI résumé parsing.
const (
	MaxPromptChars     = 6000
	ParseTemperature   = 0.1
	ParseMaxTokens     = 1000
	unknownNameDefault = "Unknown Name"
)

// Parsed is a structured résumé together with how it was produced.
type Parsed struct {
	Document   types.Document
	Parser     string
	TokensUsed int
	Truncated  bool
	// Fallback is set when the preferred parser could not produce the document.
	Fallback bool
}

// ResumeParser turns résumé text into a document.
type ResumeParser interface {
	Parse(ctx context.Context, text string) (*Parsed, error)
}

// ParseError wraps a failure of the AI collaborator during parsing.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse resume with AI: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// LLMParser asks the AI collaborator to structure the text.
type LLMParser struct {
	client llm.Client
	model  string
}

// NewLLMParser creates a parser. An empty model uses the client's standard tier.
func NewLLMParser(client llm.Client, model string) *LLMParser {
	return &LLMParser{client: client, model: model}
}

// Parse sends at most MaxPromptChars characters of text. A reply with no
// recoverable JSON object yields MinimalDocument rather than an error;
// a failed request is returned as a ParseError.
func (p *LLMParser) Parse(ctx context.Context, text string) (*Parsed, error) {
	body, truncated := Truncate(text, MaxPromptChars)

	user, err := prompts.Render(prompts.ResumeFile, prompts.KeyParseResumeUser, map[string]string{"Text": body})
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Complete(ctx, llm.Request{
		Model: p.model,
		Tier:  llm.TierStandard,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: llm.BuildExtractionPrompt(llm.ResumeSchema())},
			{Role: llm.RoleUser, Content: user},
		},
		Temperature: ParseTemperature,
		MaxTokens:   ParseMaxTokens,
	})
	if err != nil {
		return nil, &ParseError{Cause: err}
	}

	parsed := &Parsed{Parser: ParserLLM, TokensUsed: resp.TokensUsed, Truncated: truncated}
	obj, err := llm.ExtractJSON(resp.Text)
	if err != nil {
		log.Debug().Err(err).Msg("no JSON object in resume reply, using minimal document")
		parsed.Document = MinimalDocument()
		parsed.Fallback = true
		return parsed, nil
	}
	parsed.Document = types.Document(obj)
	return parsed, nil
}

// HeuristicParser structures text with line rules and never calls out.
type HeuristicParser struct{}

// Parse runs the rule-based structurer.
func (HeuristicParser) Parse(_ context.Context, text string) (*Parsed, error) {
	doc, err := structuring.Structure(text).ToDocument()
	if err != nil {
		return nil, err
	}
	return &Parsed{Document: doc, Parser: ParserHeuristic}, nil
}

// FallbackParser tries Primary and, when it fails, Secondary.
type FallbackParser struct {
	Primary   ResumeParser
	Secondary ResumeParser
}

// Parse returns the primary result unless the primary call failed. Context
// cancellation is never papered over.
func (p FallbackParser) Parse(ctx context.Context, text string) (*Parsed, error) {
	parsed, err := p.Primary.Parse(ctx, text)
	if err == nil {
		return parsed, nil
	}
	if p.Secondary == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	log.Warn().Err(err).Msg("primary resume parser failed, falling back")
	parsed, secondaryErr := p.Secondary.Parse(ctx, text)
	if secondaryErr != nil {
		return nil, errors.Join(err, secondaryErr)
	}
	parsed.Fallback = true
	return parsed, nil
}

// MinimalDocument is the placeholder résumé used when an AI reply holds no
// usable JSON.
func MinimalDocument() types.Document {
	return types.Document{
		"personal": map[string]any{
			"name":  unknownNameDefault,
			"email": "",
			"phone": "",
		},
		"experience": []any{},
		"education":  []any{},
		"skills":     []any{},
	}
}

// Truncate cuts text to at most limit characters.
func Truncate(text string, limit int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= limit {
		return text, false
	}
	return string(runes[:limit]), true
}
