// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/jonathan/jobfiller/internal/llm"
)

// Reply is one scripted outcome.
type Reply struct {
	Text   string
	Tokens int
	Err    error
}

// Client returns scripted replies in order and records every request.
// When the script runs out the last reply repeats.
type Client struct {
	mu       sync.Mutex
	replies  []Reply
	requests []llm.Request
	Model    string
}

// New creates a client that answers with replies.
func New(replies ...Reply) *Client {
	return &Client{replies: replies, Model: "fake-model"}
}

// Complete returns the next scripted reply.
func (c *Client) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.replies) == 0 {
		return nil, errors.New("llmtest: no scripted replies")
	}

	reply := c.replies[0]
	if len(c.replies) > 1 {
		c.replies = c.replies[1:]
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return &llm.Response{Text: reply.Text, TokensUsed: reply.Tokens}, nil
}

// Requests returns the requests seen so far.
func (c *Client) Requests() []llm.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.Request(nil), c.requests...)
}

// GetModel returns the fixed model name.
func (c *Client) GetModel(llm.ModelTier) string {
	return c.Model
}

// Close does nothing.
func (c *Client) Close() error {
	return nil
}
