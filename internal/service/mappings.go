package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/jobfiller/internal/mapping"
	"github.com/jonathan/jobfiller/internal/storage"
	"github.com/jonathan/jobfiller/internal/types"
)

// MappingOutcome carries one domain's stored mapping set.
type MappingOutcome struct {
	types.Result
	Domain   string               `json:"domain,omitempty"`
	Mappings mapping.FieldMapping `json:"mappings"`
}

// DomainsOutcome lists domains with saved mappings.
type DomainsOutcome struct {
	types.Result
	Domains []string `json:"domains"`
}

func normalizeDomain(domain string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
}

// GetMappings returns the stored overrides for domain.
// A domain with nothing saved has an empty mapping set.
func (s *Service) GetMappings(ctx context.Context, domain string) MappingOutcome {
	domain = normalizeDomain(domain)
	m, err := s.store.GetMappings(ctx, domain)
	if errors.Is(err, storage.ErrNotFound) {
		return MappingOutcome{Result: types.OK("No field mappings saved for %s", domain), Domain: domain, Mappings: mapping.New()}
	}
	if err != nil {
		return MappingOutcome{Result: types.Fail("Error loading field mappings", err), Domain: domain}
	}
	return MappingOutcome{Result: types.OK("%d mappings for %s", m.Len(), domain), Domain: domain, Mappings: m}
}

// SaveMappings replaces the overrides for domain.
func (s *Service) SaveMappings(ctx context.Context, domain string, m mapping.FieldMapping) types.Result {
	domain = normalizeDomain(domain)
	if domain == "" {
		return types.Fail("Error saving field mappings", &InputError{Field: "domain", Message: "is required"})
	}
	if err := s.store.SaveMappings(ctx, domain, m); err != nil {
		return types.Fail("Error saving field mappings", err)
	}
	return types.OK("Field mappings saved successfully")
}

// DeleteMappings removes the overrides for domain.
func (s *Service) DeleteMappings(ctx context.Context, domain string) types.Result {
	domain = normalizeDomain(domain)
	if err := s.store.DeleteMappingsForDomain(ctx, domain); err != nil {
		return types.Fail("Error deleting field mappings", err)
	}
	return types.OK("Field mappings for %s deleted", domain)
}

// ListMappingDomains lists domains with stored overrides.
func (s *Service) ListMappingDomains(ctx context.Context) DomainsOutcome {
	domains, err := s.store.ListMappingDomains(ctx)
	if err != nil {
		return DomainsOutcome{Result: types.Fail("Error listing field mappings", err)}
	}
	return DomainsOutcome{Result: types.OK("%d domains", len(domains)), Domains: domains}
}

// ImportMappings stores a mapping file. domain, when set, overrides the file's domain.
func (s *Service) ImportMappings(ctx context.Context, file *mapping.File, domain string) types.Result {
	if file == nil {
		return types.Fail("Error importing field mappings", &InputError{Field: "file", Message: "is required"})
	}
	if domain == "" {
		domain = file.Domain
	}
	return s.SaveMappings(ctx, domain, file.Mappings)
}

// ExportMappings returns the stored overrides for domain as a mapping file.
func (s *Service) ExportMappings(ctx context.Context, domain string) (*mapping.File, types.Result) {
	out := s.GetMappings(ctx, domain)
	if !out.Success {
		return nil, out.Result
	}
	return &mapping.File{Domain: out.Domain, Mappings: out.Mappings}, out.Result
}
