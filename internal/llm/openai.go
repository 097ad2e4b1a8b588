package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIBaseURL is the public chat-completions endpoint root.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements Client over the OpenAI chat-completions API
type OpenAIClient struct {
	client   *openai.Client
	settings openai.ClientConfig
	config   *Config
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	settings := openai.DefaultConfig(apiKey)
	settings.BaseURL = DefaultOpenAIBaseURL
	settings.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	return &OpenAIClient{
		client:   openai.NewClientWithConfig(settings),
		settings: settings,
		config:   config,
	}, nil
}

// WithBaseURL points the client at another compatible endpoint.
func (c *OpenAIClient) WithBaseURL(baseURL string) *OpenAIClient {
	c.settings.BaseURL = strings.TrimRight(baseURL, "/")
	c.client = openai.NewClientWithConfig(c.settings)
	return c
}

// Complete sends the messages as one chat completion
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Response, error) {
	model, err := modelFor(c.config, req)
	if err != nil {
		return nil, err
	}

	chat := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(req.Messages)),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	for _, msg := range req.Messages {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: string(msg.Role), Content: msg.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, openAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &Response{
		Text:       resp.Choices[0].Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// openAIError maps SDK failures onto APIError so callers can classify them.
func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		typ := apiErr.Type
		if typ == "" {
			typ = ErrorTypeAPI
		}
		return &APIError{Provider: ProviderOpenAI, StatusCode: apiErr.HTTPStatusCode, Type: typ, Message: apiErr.Message, Cause: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &APIError{
			Provider:   ProviderOpenAI,
			StatusCode: reqErr.HTTPStatusCode,
			Type:       ErrorTypeAPI,
			Message:    fmt.Sprintf("unknown error occurred (status %d)", reqErr.HTTPStatusCode),
			Cause:      err,
		}
	}
	return &APIError{Provider: ProviderOpenAI, Type: ErrorTypeTransport, Message: "calling OpenAI API", Cause: err}
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the SDK client holds no resources.
func (c *OpenAIClient) Close() error {
	return nil
}
