package ai

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure into one of the categories the UI
// is allowed to show. Backends map their native error codes into a Kind
// at the client boundary; nothing above that layer inspects error text.
type Kind string

const (
	KindInvalidAPIKey    Kind = "invalid_api_key"
	KindQuotaExceeded    Kind = "quota_exceeded"
	KindPermissionDenied Kind = "permission_denied"
	KindContentBlocked   Kind = "content_blocked"
	KindNetworkError     Kind = "network_error"
	KindValidation       Kind = "validation_error"
	KindDecode           Kind = "decode_error"
	KindRequestFailed    Kind = "request_failed"
)

// Error is a classified pipeline error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a classified error.
func E(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the classification of err, or KindRequestFailed for
// anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRequestFailed
}

// UserMessage maps a Kind to the text shown to the end user. Raw backend
// and parser errors never reach the UI.
func UserMessage(kind Kind) string {
	switch kind {
	case KindInvalidAPIKey:
		return "Invalid API key. Please check your Gemini API key from Google AI Studio."
	case KindQuotaExceeded:
		return "API quota exceeded. Please check your Gemini API usage limits."
	case KindPermissionDenied:
		return "Permission denied. Please ensure your API key has Gemini API access enabled."
	case KindContentBlocked:
		return "Content was blocked by safety filters. Please try rephrasing your request."
	case KindNetworkError:
		return "Network error. Please check your internet connection and try again."
	case KindValidation:
		return "The request is incomplete. Please provide a prompt and select at least one layer to generate."
	default:
		return "The request failed. Please verify your API key is active and has API access enabled."
	}
}
