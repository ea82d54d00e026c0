package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindQuotaExceeded, KindOf(E(KindQuotaExceeded, "too many", nil)))
	assert.Equal(t, KindRequestFailed, KindOf(errors.New("plain error")))

	// Classification survives wrapping.
	wrapped := fmt.Errorf("calling backend: %w", E(KindInvalidAPIKey, "bad key", nil))
	assert.Equal(t, KindInvalidAPIKey, KindOf(wrapped))
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("http 401")
	err := E(KindInvalidAPIKey, "rejected", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "rejected")
	assert.Contains(t, err.Error(), "http 401")
}

func TestUserMessage_NeverLeaksInternals(t *testing.T) {
	kinds := []Kind{
		KindInvalidAPIKey, KindQuotaExceeded, KindPermissionDenied,
		KindContentBlocked, KindNetworkError, KindValidation,
		KindDecode, KindRequestFailed, Kind("unknown"),
	}
	for _, k := range kinds {
		msg := UserMessage(k)
		assert.NotEmpty(t, msg)
		assert.NotContains(t, msg, "http")
		assert.NotContains(t, msg, "json")
	}
}
