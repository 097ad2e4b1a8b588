package server

import (
	"net/http"

	"github.com/jonathan/jobfiller/internal/mapping"
)

// handleListMappingDomains lists domains with saved mappings
func (s *Server) handleListMappingDomains(w http.ResponseWriter, r *http.Request) {
	out := s.svc.ListMappingDomains(r.Context())
	s.outcomeResponse(w, out.Result, out)
}

// handleGetMappings returns a domain's saved mappings
func (s *Server) handleGetMappings(w http.ResponseWriter, r *http.Request) {
	out := s.svc.GetMappings(r.Context(), r.PathValue("domain"))
	s.outcomeResponse(w, out.Result, out)
}

// handleSaveMappings replaces a domain's mappings. The body is an object of
// résumé path to pattern or pattern list.
func (s *Server) handleSaveMappings(w http.ResponseWriter, r *http.Request) {
	var m mapping.FieldMapping
	if !s.decode(w, r, &m) {
		return
	}
	result := s.svc.SaveMappings(r.Context(), r.PathValue("domain"), m)
	s.outcomeResponse(w, result, result)
}

// handleDeleteMappings removes a domain's mappings
func (s *Server) handleDeleteMappings(w http.ResponseWriter, r *http.Request) {
	result := s.svc.DeleteMappings(r.Context(), r.PathValue("domain"))
	s.outcomeResponse(w, result, result)
}
