package utils

import (
	"errors"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ShouldRetry reports whether a completion call failed with a transient
// condition worth one retry before giving up.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "connection reset by peer") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return true
	}
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		if openAIErr.HTTPStatusCode >= 500 || openAIErr.HTTPStatusCode == 429 {
			return true
		}
	}
	return false
}

// RetryableStatus reports whether an HTTP status from a completion
// backend indicates a transient server-side failure.
func RetryableStatus(status int) bool {
	return status == 429 || status >= 500
}

// DetermineFileType guesses a display language for a logical file path.
// Used as an editor hint on file listings.
func DetermineFileType(filename string) string {
	lowerFilename := strings.ToLower(filename)
	switch filepath.Ext(lowerFilename) {
	case ".html":
		return "HTML"
	case ".css":
		return "CSS"
	case ".js":
		return "JavaScript"
	case ".jsx":
		return "JSX"
	case ".ts":
		return "TypeScript"
	case ".tsx":
		return "TSX"
	case ".json":
		return "JSON"
	case ".md":
		return "Markdown"
	case ".txt":
		return "Text"
	case ".yaml", ".yml":
		return "YAML"
	case ".sh":
		return "Shell"
	case ".py":
		return "Python"
	case ".go":
		return "Go"
	case ".svg":
		return "SVG"
	default:
		base := filepath.Base(lowerFilename)
		if strings.Contains(base, "dockerfile") {
			return "Dockerfile"
		}
		if strings.Contains(base, "vite.config") || strings.Contains(base, "tailwind.config") {
			return "Config"
		}
		if strings.Contains(base, "tsconfig") || strings.Contains(base, "package.json") {
			return "JSON"
		}
		return "Unknown"
	}
}
