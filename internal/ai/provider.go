package ai

import "context"

// CompletionRequest is a single-shot prompt for a generative backend.
// Zero-valued tuning fields fall back to per-backend defaults.
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
	TopP        float32
	TopK        int
}

// Completion is the raw result of a completion call. Blocked reports a
// content-safety rejection of the prompt itself; it is not an error, the
// caller routes it to the fallback generator.
type Completion struct {
	Text        string
	Blocked     bool
	BlockReason string
}

// Provider abstracts the two interchangeable completion backends (the
// hosted agent endpoint and a directly-configured Gemini endpoint).
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
