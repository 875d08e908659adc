// File: services/intelligence/interface.go
package ai

import "context"

// ToolParam declares one parameter of a tool schema.
type ToolParam struct {
	Name     string
	Type     string // "string", "number", "integer", "object" or "array"
	Required bool
}

// Tool is a function a worker is permitted to invoke, declared to the
// model as a function schema.
type Tool struct {
	Name        string
	Description string
	Params      []ToolParam
}

// CompletionRequest is a single completion turn: system context, one user
// prompt and the tool schemas available for this call.
type CompletionRequest struct {
	System      string
	Prompt      string
	Tools       []Tool
	MaxTokens   int32
	Temperature float32
}

// CompletionClient issues one completion request against a hosted model.
// A nil client means no credential is configured and callers must use
// their deterministic fallback path.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
