package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobfiller/internal/fetch"
	"github.com/jonathan/jobfiller/internal/ingestion"
	"github.com/jonathan/jobfiller/internal/llm"
	"github.com/jonathan/jobfiller/internal/mapping"
	"github.com/jonathan/jobfiller/internal/schemas"
	"github.com/jonathan/jobfiller/internal/service"
	"github.com/jonathan/jobfiller/internal/storage"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		inputErr      *service.InputError
		schemaErr     *schemas.ValidationError
		documentErr   *ingestion.DocumentError
		patternErr    *mapping.PatternError
		fieldErrs     validator.ValidationErrors
		apiErr        *llm.APIError
		fetchErr      *fetch.Error
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, service.ErrNoResume):
		return http.StatusNotFound
	case errors.As(err, &validationErr), errors.As(err, &inputErr), errors.As(err, &schemaErr),
		errors.As(err, &documentErr), errors.As(err, &patternErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAINotConfigured):
		return http.StatusPreconditionFailed
	case errors.As(err, &apiErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
