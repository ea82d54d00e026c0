// Package keys validates and probes user-supplied API keys.
package keys

import (
	"context"
	"regexp"
	"strings"

	"promptpilot_server/internal/ai"
)

var secondaryKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateFormat is a cheap offline plausibility check, run before any
// network probe. It accepts the Google AI Studio shape (AIza prefix,
// 35 to 45 characters) or a generic token of 32 to 64 URL-safe
// characters.
func ValidateFormat(key string) bool {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, "AIza") && len(key) >= 35 && len(key) <= 45 {
		return true
	}
	return len(key) >= 32 && len(key) <= 64 && secondaryKeyPattern.MatchString(key)
}

// Test verifies a key end to end by sending the cheapest possible
// completion through the provider built with it. A nil error means the
// key works; a classified error says why it does not.
func Test(ctx context.Context, provider ai.Provider) error {
	_, err := provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      `Say "test successful"`,
		MaxTokens:   50,
		Temperature: 0.1,
		TopP:        0.1,
		TopK:        1,
	})
	return err
}
