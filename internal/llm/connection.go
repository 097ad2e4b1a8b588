package llm

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/jobfiller/internal/types"
)

const connectionPrompt = "Test connection. Respond with 'connected'."

// TestConnection sends a tiny prompt and classifies the outcome.
// The returned token count is what the probe consumed, zero on failure.
func TestConnection(ctx context.Context, client Client, model string) (types.ConnectionStatus, int) {
	resp, err := client.Complete(ctx, Request{
		Model: model,
		Tier:  TierLite,
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a helpful assistant."},
			{Role: RoleUser, Content: connectionPrompt},
		},
		MaxTokens: 10,
	})
	if err != nil {
		log.Debug().Err(err).Str("model", model).Msg("connection test failed")
		if IsInvalidCredentials(err) {
			return types.ConnectionInvalid, 0
		}
		return types.ConnectionError, 0
	}
	if strings.Contains(strings.ToLower(resp.Text), "connected") {
		return types.ConnectionConnected, resp.TokensUsed
	}
	return types.ConnectionError, resp.TokensUsed
}
