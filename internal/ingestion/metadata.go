package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Parser names recorded in Metadata.
const (
	ParserJSON      = "json"
	ParserLLM       = "llm"
	ParserHeuristic = "heuristic"
)

// Metadata describes where a résumé came from and how it was structured.
type Metadata struct {
	Source     string `json:"source,omitempty"` // file path or URL
	Timestamp  string `json:"timestamp"`        // RFC3339 format
	Hash       string `json:"hash"`             // SHA256 hex digest of the raw input
	Parser     string `json:"parser,omitempty"`
	Truncated  bool   `json:"truncated,omitempty"`
	Fallback   bool   `json:"fallback,omitempty"` // AI parse failed and a substitute was used
	TokensUsed int    `json:"tokens_used,omitempty"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// Record copies a parse outcome into the metadata.
func (m *Metadata) Record(p *Parsed) {
	m.Parser = p.Parser
	m.Truncated = p.Truncated
	m.Fallback = p.Fallback
	m.TokensUsed += p.TokensUsed
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
