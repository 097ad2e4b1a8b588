package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/jobfiller/internal/ingestion"
	"github.com/jonathan/jobfiller/internal/types"
)

// ImportResumeRequest uploads a résumé as a JSON document or as plain text.
type ImportResumeRequest struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data,omitempty"`
	Text string          `json:"text,omitempty"`
}

// ActiveResumeRequest selects the active résumé.
type ActiveResumeRequest struct {
	Name string `json:"name"`
}

// handleListResumes lists stored résumés
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	out := s.svc.ListResumes(r.Context())
	s.outcomeResponse(w, out.Result, out)
}

// handleGetResume returns one stored résumé
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	out := s.svc.GetResume(r.Context(), r.PathValue("name"))
	s.outcomeResponse(w, out.Result, out)
}

// handleImportResume stores an uploaded résumé, structuring text uploads
func (s *Server) handleImportResume(w http.ResponseWriter, r *http.Request) {
	var req ImportResumeRequest
	if !s.decode(w, r, &req) {
		return
	}

	var src *ingestion.Source
	switch {
	case len(req.Data) > 0 && req.Text != "":
		s.errorResponse(w, http.StatusBadRequest, "Provide either data or text, not both")
		return
	case len(req.Data) > 0:
		doc, err := ingestion.ParseJSONResume(req.Data)
		if err != nil {
			result := types.Fail("Error importing resume", err)
			s.outcomeResponse(w, result, result)
			return
		}
		src = &ingestion.Source{Document: doc, Metadata: ingestion.NewMetadata(string(req.Data), "upload")}
	default:
		src = &ingestion.Source{Text: ingestion.CleanText(req.Text), Metadata: ingestion.NewMetadata(req.Text, "upload")}
	}

	out := s.svc.ImportResume(r.Context(), req.Name, src)
	if out.Success {
		s.jsonResponse(w, http.StatusCreated, out)
		return
	}
	s.outcomeResponse(w, out.Result, out)
}

// handleDeleteResume removes a résumé
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	result := s.svc.DeleteResume(r.Context(), r.PathValue("name"))
	s.outcomeResponse(w, result, result)
}

// handleSetActiveResume marks a résumé active
func (s *Server) handleSetActiveResume(w http.ResponseWriter, r *http.Request) {
	var req ActiveResumeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	result := s.svc.SetActiveResume(r.Context(), req.Name)
	s.outcomeResponse(w, result, result)
}
