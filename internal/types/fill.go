package types

import "fmt"

// FillResult counts the outcome of one fill pass over a page.
// Filled + Failed + Skipped always equals Total.
type FillResult struct {
	Total   int `json:"total"`
	Filled  int `json:"filled"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// PageFieldSnapshot describes one eligible control as seen by the analyzer.
type PageFieldSnapshot struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Label  string `json:"label"`
	Mapped string `json:"mapped"`
}

// Result is the outcome envelope returned by every user-facing operation.
// Err keeps the cause of a failure for callers that need to classify it.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Err     error  `json:"-"`
}

// OK builds a successful envelope.
func OK(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Fail builds a failed envelope whose message is prefix followed by the error text.
func Fail(prefix string, err error) Result {
	return Result{Success: false, Message: fmt.Sprintf("%s: %v", prefix, err), Err: err}
}

// FillOutcome is a fill result together with its envelope.
type FillOutcome struct {
	Result
	FillID string     `json:"fill_id"`
	Counts FillResult `json:"counts"`
}

// AnalyzeOutcome is an analysis together with its envelope.
type AnalyzeOutcome struct {
	Result
	Fields []PageFieldSnapshot `json:"fields"`
}
