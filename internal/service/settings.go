package service

import (
	"context"

	"github.com/jonathan/jobfiller/internal/llm"
	"github.com/jonathan/jobfiller/internal/logging"
	"github.com/jonathan/jobfiller/internal/types"
)

// SettingsOutcome carries the user preferences and the credential record.
// The API key is masked.
type SettingsOutcome struct {
	types.Result
	Settings    types.Settings    `json:"settings"`
	APISettings types.APISettings `json:"apiSettings"`
}

// ConnectionOutcome reports a credential test.
type ConnectionOutcome struct {
	types.Result
	Status     types.ConnectionStatus `json:"status"`
	TokenUsage int64                  `json:"tokenUsage"`
}

// GetSettings returns the settings with the API key masked.
func (s *Service) GetSettings(ctx context.Context) SettingsOutcome {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return SettingsOutcome{Result: types.Fail("Error loading settings", err)}
	}
	api, err := s.store.GetAPISettings(ctx)
	if err != nil {
		return SettingsOutcome{Result: types.Fail("Error loading settings", err)}
	}
	api.APIKey = api.MaskedKey()
	return SettingsOutcome{Result: types.OK("Settings loaded"), Settings: settings, APISettings: api}
}

// SaveSettings stores the user preferences.
func (s *Service) SaveSettings(ctx context.Context, settings types.Settings) types.Result {
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return types.Fail("Error saving settings", err)
	}
	return types.OK("Settings saved")
}

// SaveAPISettings stores new credentials, resetting token usage.
func (s *Service) SaveAPISettings(ctx context.Context, api types.APISettings) types.Result {
	if api.Provider != "" {
		if _, err := llm.ParseProvider(api.Provider); err != nil {
			return types.Fail("Error saving API settings", err)
		}
	}
	api.ConnectionStatus = types.ConnectionUnknown
	if err := s.store.SaveAPISettings(ctx, api); err != nil {
		return types.Fail("Error saving API settings", err)
	}
	return types.OK("API settings saved")
}

// TestConnection probes the saved credentials and records the status.
func (s *Service) TestConnection(ctx context.Context) ConnectionOutcome {
	client, api, err := s.client(ctx)
	if err != nil {
		return ConnectionOutcome{Result: types.Fail("Error testing connection", err), Status: api.ConnectionStatus}
	}
	defer client.Close()

	status, tokens := llm.TestConnection(ctx, client, api.Model)
	if err := s.store.SetConnectionStatus(ctx, status); err != nil {
		return ConnectionOutcome{Result: types.Fail("Error testing connection", err), Status: status}
	}
	total := api.TokenUsage
	if tokens > 0 {
		total, err = s.store.AddTokenUsage(ctx, tokens)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to record token usage")
			total = api.TokenUsage
		}
	}

	out := ConnectionOutcome{Status: status, TokenUsage: total}
	switch status {
	case types.ConnectionConnected:
		out.Result = types.OK("Connection successful")
	case types.ConnectionInvalid:
		out.Result = types.Result{Message: "Invalid API key"}
	default:
		out.Result = types.Result{Message: "Connection failed"}
	}
	return out
}
