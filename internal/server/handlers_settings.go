package server

import (
	"net/http"

	"github.com/jonathan/jobfiller/internal/types"
)

// SettingsRequest updates preferences, credentials, or both.
type SettingsRequest struct {
	Settings    *types.Settings    `json:"settings,omitempty"`
	APISettings *types.APISettings `json:"apiSettings,omitempty"`
}

// handleGetSettings returns settings with the API key masked
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	out := s.svc.GetSettings(r.Context())
	s.outcomeResponse(w, out.Result, out)
}

// handleSaveSettings stores preferences and credentials
func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Settings == nil && req.APISettings == nil {
		s.errorResponse(w, http.StatusBadRequest, "settings or apiSettings is required")
		return
	}

	if req.Settings != nil {
		if result := s.svc.SaveSettings(r.Context(), *req.Settings); !result.Success {
			s.outcomeResponse(w, result, result)
			return
		}
	}
	if req.APISettings != nil {
		if result := s.svc.SaveAPISettings(r.Context(), *req.APISettings); !result.Success {
			s.outcomeResponse(w, result, result)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, types.OK("Settings saved"))
}

// handleTestConnection probes the saved AI credentials
func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	out := s.svc.TestConnection(r.Context())
	s.outcomeResponse(w, out.Result, out)
}
