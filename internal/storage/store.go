package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/jobfiller/internal/mapping"
	"github.com/jonathan/jobfiller/internal/types"
)

// Key layout.
const (
	resumePrefix   = "resume:"
	mappingPrefix  = "mappings:"
	activeKey      = "active_resume"
	settingsKey    = "settings"
	apiSettingsKey = "api_settings"
)

// NotFoundError reports a missing résumé or mapping set.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Is makes errors.Is(err, ErrNotFound) hold for NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StoredResume is a résumé document with its save time.
type StoredResume struct {
	Name      string         `json:"name"`
	Data      types.Document `json:"data"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ResumeSummary is one row of ListResumes.
type ResumeSummary struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
	Active    bool      `json:"active"`
}

type resumeRecord struct {
	Data      types.Document `json:"data"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Store is the typed layer over a Backend.
type Store struct {
	backend Backend
	// mu serializes read-modify-write sequences within this process.
	mu  sync.Mutex
	now func() time.Time
}

// NewStore wraps a backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) getJSON(ctx context.Context, key string, v any) error {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.backend.Put(ctx, key, data)
}

// SaveResume stores or replaces a résumé. The first résumé saved while none
// is active becomes active.
func (s *Store) SaveResume(ctx context.Context, name string, doc types.Document) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("resume name is required")
	}
	if doc == nil {
		return fmt.Errorf("resume %q has no data", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := resumeRecord{Data: doc, UpdatedAt: s.now().UTC()}
	if err := s.putJSON(ctx, resumePrefix+name, record); err != nil {
		return err
	}

	active, err := s.activeName(ctx)
	if err != nil {
		return err
	}
	if active == "" {
		return s.backend.Put(ctx, activeKey, []byte(name))
	}
	return nil
}

// GetResume returns a stored résumé.
func (s *Store) GetResume(ctx context.Context, name string) (*StoredResume, error) {
	var record resumeRecord
	err := s.getJSON(ctx, resumePrefix+name, &record)
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{Kind: "resume", Name: name}
	}
	if err != nil {
		return nil, err
	}
	return &StoredResume{Name: name, Data: record.Data, UpdatedAt: record.UpdatedAt}, nil
}

// ListResumes returns every stored résumé ordered by name.
func (s *Store) ListResumes(ctx context.Context) ([]ResumeSummary, error) {
	keys, err := s.backend.Keys(ctx, resumePrefix)
	if err != nil {
		return nil, err
	}
	active, err := s.activeName(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ResumeSummary, 0, len(keys))
	for _, key := range keys {
		var record resumeRecord
		if err := s.getJSON(ctx, key, &record); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		name := strings.TrimPrefix(key, resumePrefix)
		out = append(out, ResumeSummary{Name: name, UpdatedAt: record.UpdatedAt, Active: name == active})
	}
	return out, nil
}

// DeleteResume removes a résumé. Deleting the active résumé activates the
// first remaining one by name, or clears the active résumé.
func (s *Store) DeleteResume(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.backend.Get(ctx, resumePrefix+name); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &NotFoundError{Kind: "resume", Name: name}
		}
		return err
	}
	if err := s.backend.Delete(ctx, resumePrefix+name); err != nil {
		return err
	}

	active, err := s.activeName(ctx)
	if err != nil || active != name {
		return err
	}

	remaining, err := s.backend.Keys(ctx, resumePrefix)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return s.backend.Delete(ctx, activeKey)
	}
	return s.backend.Put(ctx, activeKey, []byte(strings.TrimPrefix(remaining[0], resumePrefix)))
}

// SetActiveResume marks an existing résumé active.
func (s *Store) SetActiveResume(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.backend.Get(ctx, resumePrefix+name); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &NotFoundError{Kind: "resume", Name: name}
		}
		return err
	}
	return s.backend.Put(ctx, activeKey, []byte(name))
}

// ActiveResumeName returns the active résumé name, or "" when none is set.
func (s *Store) ActiveResumeName(ctx context.Context) (string, error) {
	return s.activeName(ctx)
}

func (s *Store) activeName(ctx context.Context) (string, error) {
	data, err := s.backend.Get(ctx, activeKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetActiveResume returns the active résumé.
func (s *Store) GetActiveResume(ctx context.Context) (*StoredResume, error) {
	name, err := s.activeName(ctx)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &NotFoundError{Kind: "active resume", Name: ""}
	}
	return s.GetResume(ctx, name)
}

// SaveMappings stores the mapping set for a domain after validating it.
func (s *Store) SaveMappings(ctx context.Context, domain string, m mapping.FieldMapping) error {
	if domain == "" {
		return fmt.Errorf("domain is required")
	}
	if err := m.Validate(); err != nil {
		return err
	}
	return s.putJSON(ctx, mappingPrefix+domain, m)
}

// GetMappings returns the mapping set saved for a domain.
func (s *Store) GetMappings(ctx context.Context, domain string) (mapping.FieldMapping, error) {
	var m mapping.FieldMapping
	err := s.getJSON(ctx, mappingPrefix+domain, &m)
	if errors.Is(err, ErrNotFound) {
		return mapping.FieldMapping{}, &NotFoundError{Kind: "mappings for domain", Name: domain}
	}
	return m, err
}

// DeleteMappingsForDomain removes a domain's mapping set.
func (s *Store) DeleteMappingsForDomain(ctx context.Context, domain string) error {
	if _, err := s.backend.Get(ctx, mappingPrefix+domain); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &NotFoundError{Kind: "mappings for domain", Name: domain}
		}
		return err
	}
	return s.backend.Delete(ctx, mappingPrefix+domain)
}

// ListMappingDomains returns every domain with a saved mapping set.
func (s *Store) ListMappingDomains(ctx context.Context) ([]string, error) {
	keys, err := s.backend.Keys(ctx, mappingPrefix)
	if err != nil {
		return nil, err
	}
	domains := make([]string, len(keys))
	for i, key := range keys {
		domains[i] = strings.TrimPrefix(key, mappingPrefix)
	}
	return domains, nil
}

// GetSettings returns the saved settings, or the defaults.
func (s *Store) GetSettings(ctx context.Context) (types.Settings, error) {
	settings := types.DefaultSettings()
	err := s.getJSON(ctx, settingsKey, &settings)
	if errors.Is(err, ErrNotFound) {
		return types.DefaultSettings(), nil
	}
	return settings, err
}

// SaveSettings validates and stores settings.
func (s *Store) SaveSettings(ctx context.Context, settings types.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return s.putJSON(ctx, settingsKey, settings)
}

// GetAPISettings returns the saved credentials, or an unconfigured record.
func (s *Store) GetAPISettings(ctx context.Context) (types.APISettings, error) {
	var api types.APISettings
	err := s.getJSON(ctx, apiSettingsKey, &api)
	if errors.Is(err, ErrNotFound) {
		return types.APISettings{ConnectionStatus: types.ConnectionUnknown}, nil
	}
	return api, err
}

// SaveAPISettings validates and stores credentials. Token usage restarts at zero.
func (s *Store) SaveAPISettings(ctx context.Context, api types.APISettings) error {
	api.TokenUsage = 0
	if api.ConnectionStatus == "" {
		api.ConnectionStatus = types.ConnectionUnknown
	}
	if err := api.Validate(); err != nil {
		return fmt.Errorf("invalid API settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putJSON(ctx, apiSettingsKey, api)
}

// SetConnectionStatus records the outcome of a credential test.
func (s *Store) SetConnectionStatus(ctx context.Context, status types.ConnectionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	api, err := s.GetAPISettings(ctx)
	if err != nil {
		return err
	}
	api.ConnectionStatus = status
	return s.putJSON(ctx, apiSettingsKey, api)
}

// AddTokenUsage adds tokens to the cumulative counter and returns the new total.
func (s *Store) AddTokenUsage(ctx context.Context, tokens int) (int64, error) {
	if tokens < 0 {
		return 0, fmt.Errorf("token count must be non-negative, got %d", tokens)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	api, err := s.GetAPISettings(ctx)
	if err != nil {
		return 0, err
	}
	api.TokenUsage += int64(tokens)
	if err := s.putJSON(ctx, apiSettingsKey, api); err != nil {
		return 0, err
	}
	return api.TokenUsage, nil
}
