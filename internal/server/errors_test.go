package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobfiller/internal/fetch"
	"github.com/jonathan/jobfiller/internal/ingestion"
	"github.com/jonathan/jobfiller/internal/llm"
	"github.com/jonathan/jobfiller/internal/schemas"
	"github.com/jonathan/jobfiller/internal/service"
	"github.com/jonathan/jobfiller/internal/storage"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "html", Message: "is required"}
	assert.Equal(t, "validation error: html - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", &storage.NotFoundError{Kind: "resume", Name: "x"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", storage.ErrNotFound), http.StatusNotFound},
		{"no resume", service.ErrNoResume, http.StatusNotFound},
		{"input", &service.InputError{Field: "name", Message: "is required"}, http.StatusBadRequest},
		{"schema", &schemas.ValidationError{Schema: schemas.ResumeSchema}, http.StatusBadRequest},
		{"document", &ingestion.DocumentError{Message: "not a JSON object"}, http.StatusBadRequest},
		{"ai not configured", service.ErrAINotConfigured, http.StatusPreconditionFailed},
		{"provider", &llm.APIError{StatusCode: 500, Message: "boom"}, http.StatusBadGateway},
		{"fetch", &fetch.Error{URL: "https://x", Message: "HTTP 500"}, http.StatusBadGateway},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unknown", assert.AnError, http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
