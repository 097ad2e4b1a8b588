package server

import (
	"context"
	"net/http"

	"github.com/jonathan/jobfiller/internal/dom/htmlpage"
	"github.com/jonathan/jobfiller/internal/fetch"
	"github.com/jonathan/jobfiller/internal/service"
	"github.com/jonathan/jobfiller/internal/types"
)

// PageRequest carries a page either inline or by URL.
type PageRequest struct {
	HTML       string `json:"html,omitempty"`
	URL        string `json:"url,omitempty"`
	Domain     string `json:"domain,omitempty"`
	ResumeName string `json:"resumeName,omitempty"`
	UseAI      bool   `json:"useAI,omitempty"`
	Wait       bool   `json:"wait,omitempty"`
}

// FillResponse is a fill outcome plus the filled document.
type FillResponse struct {
	types.FillOutcome
	HTML string `json:"html,omitempty"`
}

// loadPage resolves the request into a static page and its mapping domain.
// A fetched page takes its domain from the host it was finally served by.
func (s *Server) loadPage(ctx context.Context, req *PageRequest) (*htmlpage.Page, error) {
	if req.HTML == "" && req.URL == "" {
		return nil, &ErrValidation{Field: "html", Message: "html or url is required"}
	}
	deriveDomain := req.Domain == "" && req.URL != ""
	if deriveDomain {
		domain, err := fetch.Domain(req.URL)
		if err != nil {
			return nil, &ErrValidation{Field: "url", Message: err.Error()}
		}
		req.Domain = domain
	}
	if req.HTML == "" {
		fetched, err := fetch.Get(ctx, req.URL)
		if err != nil {
			return nil, err
		}
		req.HTML = fetched.Body
		if deriveDomain {
			req.Domain = fetched.Domain()
		}
	}
	return htmlpage.FromString(req.HTML)
}

// handleAnalyzePage reports the fields of a page and their mapped paths
func (s *Server) handleAnalyzePage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !s.decode(w, r, &req) {
		return
	}

	page, err := s.loadPage(r.Context(), &req)
	if err != nil {
		out := types.AnalyzeOutcome{Result: types.Fail("Error analyzing page", err)}
		s.outcomeResponse(w, out.Result, out)
		return
	}

	out := s.svc.Analyze(r.Context(), page, req.Domain)
	s.outcomeResponse(w, out.Result, out)
}

// handleFillPage fills a page and returns the filled HTML
func (s *Server) handleFillPage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !s.decode(w, r, &req) {
		return
	}

	page, err := s.loadPage(r.Context(), &req)
	if err != nil {
		result := types.Fail("Error filling form", err)
		s.outcomeResponse(w, result, FillResponse{FillOutcome: types.FillOutcome{Result: result}})
		return
	}

	out, report := s.svc.Fill(r.Context(), page, service.FillRequest{
		Domain:     req.Domain,
		ResumeName: req.ResumeName,
		UseAI:      req.UseAI,
		Wait:       req.Wait,
	})
	resp := FillResponse{FillOutcome: out}
	if report != nil {
		if html, err := page.HTML(); err == nil {
			resp.HTML = html
		}
	}
	s.outcomeResponse(w, out.Result, resp)
}
