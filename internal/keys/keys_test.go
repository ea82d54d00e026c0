package keys

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptpilot_server/internal/ai"
)

func TestValidateFormat(t *testing.T) {
	cases := []struct {
		key   string
		valid bool
	}{
		{"AIzaSyD-123456789012345678901234", true},       // 32 url-safe chars, secondary form
		{"AIza" + strings.Repeat("x", 31), true},         // Google form, exactly 35
		{"AIza" + strings.Repeat("x", 41), true},         // Google form, exactly 45
		{"AIza" + strings.Repeat("!", 42), false},        // 46 chars and bad chars
		{"AIzaShort", false},                             // Google prefix but too short either way
		{strings.Repeat("a", 32), true},                  // secondary form, min length
		{strings.Repeat("a", 64), true},                  // secondary form, max length
		{strings.Repeat("a", 31), false},                 // too short
		{strings.Repeat("a", 65), false},                 // too long
		{strings.Repeat("a", 20) + "-_" + strings.Repeat("b", 18), true}, // url-safe chars ok
		{strings.Repeat("a", 20) + " " + strings.Repeat("b", 19), false}, // space rejected
		{strings.Repeat("a", 20) + "!" + strings.Repeat("b", 19), false}, // punctuation rejected
		{"short", false},
		{"", false},
		{"  " + strings.Repeat("a", 32) + "  ", true}, // surrounding whitespace trimmed
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, ValidateFormat(tc.key), "key: %q", tc.key)
	}
}

type stubProvider struct {
	req *ai.CompletionRequest
	err error
}

func (s *stubProvider) Complete(_ context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	s.req = &req
	if s.err != nil {
		return nil, s.err
	}
	return &ai.Completion{Text: "test successful"}, nil
}

func TestTest_SendsMinimalProbe(t *testing.T) {
	stub := &stubProvider{}
	require.NoError(t, Test(context.Background(), stub))

	require.NotNil(t, stub.req)
	assert.Equal(t, `Say "test successful"`, stub.req.Prompt)
	assert.Equal(t, 50, stub.req.MaxTokens)
	assert.InDelta(t, 0.1, stub.req.Temperature, 0.001)
	assert.InDelta(t, 0.1, stub.req.TopP, 0.001)
	assert.Equal(t, 1, stub.req.TopK)
}

func TestTest_PropagatesClassifiedError(t *testing.T) {
	stub := &stubProvider{err: ai.E(ai.KindInvalidAPIKey, "rejected", errors.New("401"))}
	err := Test(context.Background(), stub)
	require.Error(t, err)
	assert.Equal(t, ai.KindInvalidAPIKey, ai.KindOf(err))
}
