// Package service exposes the user-facing operations shared by the CLI and the
// HTTP server. Every operation returns an envelope carrying a success flag and
// a message; failures never escape as errors.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/jobfiller/internal/llm"
	"github.com/jonathan/jobfiller/internal/storage"
	"github.com/jonathan/jobfiller/internal/types"
)

// ClientFactory builds an AI client from stored credentials.
type ClientFactory func(ctx context.Context, api types.APISettings) (llm.Client, error)

// NewClientFactory returns a factory for the real providers. baseURL, when
// set, points the OpenAI client at a compatible endpoint.
func NewClientFactory(baseURL string) ClientFactory {
	return func(ctx context.Context, api types.APISettings) (llm.Client, error) {
		provider, err := llm.ParseProvider(api.Provider)
		if err != nil {
			return nil, err
		}
		config := llm.ConfigFor(provider)
		if api.Model != "" {
			config = config.WithModel(llm.TierStandard, api.Model)
		}

		if provider == llm.ProviderOpenAI {
			client, err := llm.NewOpenAIClient(config, api.APIKey)
			if err != nil {
				return nil, err
			}
			if baseURL != "" {
				client = client.WithBaseURL(baseURL)
			}
			return client, nil
		}
		return llm.NewClient(ctx, config, api.APIKey)
	}
}

// Service implements the operations over a Store.
type Service struct {
	store     *storage.Store
	newClient ClientFactory
	envAPI    types.APISettings
	wait      func(ctx context.Context, d time.Duration) error
}

// New creates a service. A nil factory disables AI features.
func New(store *storage.Store, factory ClientFactory) *Service {
	return &Service{store: store, newClient: factory, wait: sleep}
}

// WithEnvCredentials sets credentials used while none are saved.
func (s *Service) WithEnvCredentials(api types.APISettings) *Service {
	s.envAPI = api
	return s
}

// Store returns the underlying store.
func (s *Service) Store() *storage.Store {
	return s.store
}

// apiSettings returns the saved credentials, or the environment's when none are saved.
func (s *Service) apiSettings(ctx context.Context) (types.APISettings, error) {
	api, err := s.store.GetAPISettings(ctx)
	if err != nil || api.Configured() || !s.envAPI.Configured() {
		return api, err
	}
	env := s.envAPI
	env.TokenUsage = api.TokenUsage
	env.ConnectionStatus = api.ConnectionStatus
	return env, nil
}

// client builds an AI client from the active credentials.
func (s *Service) client(ctx context.Context) (llm.Client, types.APISettings, error) {
	api, err := s.apiSettings(ctx)
	if err != nil {
		return nil, api, err
	}
	if !api.Configured() || s.newClient == nil {
		return nil, api, ErrAINotConfigured
	}
	client, err := s.newClient(ctx, api)
	if err != nil {
		return nil, api, fmt.Errorf("failed to create AI client: %w", err)
	}
	return client, api, nil
}

// recordUsage adds tokens to the cumulative counter. Accounting failures are
// logged by the caller and never fail the operation.
func (s *Service) recordUsage(ctx context.Context, tokens int) error {
	if tokens <= 0 {
		return nil
	}
	_, err := s.store.AddTokenUsage(ctx, tokens)
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
