package ingestion

import (
	"fmt"

	"github.com/jonathan/jobfiller/internal/schemas"
	"github.com/jonathan/jobfiller/internal/types"
)

// DocumentError reports a JSON résumé that could not be accepted.
type DocumentError struct {
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid JSON resume: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid JSON resume: %s", e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// ParseJSONResume decodes an uploaded JSON résumé and checks it against the
// résumé schema before it is stored.
func ParseJSONResume(data []byte) (types.Document, error) {
	doc, err := types.ParseDocument(data)
	if err != nil {
		return nil, &DocumentError{Message: "not a JSON object", Cause: err}
	}
	if err := schemas.ValidateResume(data); err != nil {
		return nil, &DocumentError{Message: "schema mismatch", Cause: err}
	}
	return doc, nil
}
