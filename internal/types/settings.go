package types

import (
	"github.com/go-playground/validator/v10"
)

// Settings holds user preferences
type Settings struct {
	AutofillOnLoad   bool `json:"autofillOnLoad"`
	AutofillDelay    int  `json:"autofillDelay" validate:"gte=0,lte=60000"`
	DarkMode         bool `json:"darkMode"`
	AnalyticsEnabled bool `json:"analyticsEnabled"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		AutofillOnLoad:   false,
		AutofillDelay:    2000,
		DarkMode:         false,
		AnalyticsEnabled: false,
	}
}

// Validate validates the Settings using the validator.
func (s *Settings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// ConnectionStatus is the last observed state of the AI credentials.
type ConnectionStatus string

// Connection states reported by a credential test
const (
	ConnectionUnknown   ConnectionStatus = "unknown"
	ConnectionConnected ConnectionStatus = "connected"
	ConnectionInvalid   ConnectionStatus = "invalid"
	ConnectionError     ConnectionStatus = "error"
)

// APISettings holds AI collaborator credentials and usage accounting.
type APISettings struct {
	Provider           string           `json:"provider" validate:"omitempty,oneof=gemini openai"`
	APIKey             string           `json:"apiKey"`
	Model              string           `json:"model"`
	UseForFieldMapping bool             `json:"useForFieldMapping"`
	TokenUsage         int64            `json:"tokenUsage" validate:"gte=0"`
	ConnectionStatus   ConnectionStatus `json:"connectionStatus" validate:"omitempty,oneof=unknown connected invalid error"`
}

// Validate validates the APISettings using the validator.
func (a *APISettings) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// Configured reports whether an API key is present.
func (a *APISettings) Configured() bool {
	return a != nil && a.APIKey != ""
}

// MaskedKey returns the key with all but the last four characters hidden.
func (a *APISettings) MaskedKey() string {
	if len(a.APIKey) <= 4 {
		if a.APIKey == "" {
			return ""
		}
		return "****"
	}
	return "****" + a.APIKey[len(a.APIKey)-4:]
}
