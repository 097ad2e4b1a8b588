package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/jobfiller/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// IngestFromURL downloads a résumé. JSON responses become documents, HTML is
// reduced to its main text, anything else is treated as plain text.
func IngestFromURL(ctx context.Context, urlStr string) (*Source, error) {
	page, err := fetch.Get(ctx, urlStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug().
		Str("url", page.FinalURL).
		Int("bytes", len(page.Body)).
		Str("media_type", page.MediaType).
		Str("charset", page.Charset).
		Msg("fetched resume")

	metadata := NewMetadata(page.Body, urlStr)
	switch {
	case page.IsJSON():
		doc, err := ParseJSONResume([]byte(page.Body))
		if err != nil {
			return nil, err
		}
		metadata.Parser = ParserJSON
		return &Source{Document: doc, Metadata: metadata}, nil
	case page.IsHTML():
		text, err := fetch.MainText(page.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
		return &Source{Text: CleanText(text), Metadata: metadata}, nil
	default:
		return &Source{Text: CleanText(page.Body), Metadata: metadata}, nil
	}
}
