package service

import "errors"

var (
	// ErrAINotConfigured is returned when an AI feature is used without an API key.
	ErrAINotConfigured = errors.New("AI provider is not configured; save an API key first")
	// ErrNoResume is returned when a fill has no résumé to draw from.
	ErrNoResume = errors.New("no resume data found; import a resume first")
)

// InputError reports a request that is malformed before any work is done.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Field + ": " + e.Message
}
