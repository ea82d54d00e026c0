package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"promptpilot_server/internal/utils"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-1.5-flash"
)

// GeminiClient calls the Gemini generateContent REST endpoint with a
// user-supplied API key. One client per key; the key is never persisted
// server-side.
type GeminiClient struct {
	BaseURL string
	HTTP    *http.Client

	apiKey string
	model  string
}

// NewGeminiClient creates a Gemini client. An empty model selects
// gemini-1.5-flash.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{
		BaseURL: defaultGeminiBaseURL,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting  `json:"safetySettings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// All categories run with BLOCK_NONE so ordinary app-building prompts are
// not rejected spuriously.
var geminiSafetySettings = []geminiSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     req.Temperature,
			TopK:            req.TopK,
			TopP:            req.TopP,
			MaxOutputTokens: req.MaxTokens,
		},
		SafetySettings: geminiSafetySettings,
	}
	if body.GenerationConfig.Temperature == 0 {
		body.GenerationConfig.Temperature = 0.7
	}
	if body.GenerationConfig.TopK == 0 {
		body.GenerationConfig.TopK = 40
	}
	if body.GenerationConfig.TopP == 0 {
		body.GenerationConfig.TopP = 0.95
	}
	if body.GenerationConfig.MaxOutputTokens == 0 {
		body.GenerationConfig.MaxOutputTokens = 8192
	}

	out, status, err := c.post(ctx, body)
	if err != nil && (utils.ShouldRetry(err) || utils.RetryableStatus(status)) {
		log.Printf("gemini completion failed (http %d), retrying once after delay: %v", status, err)
		time.Sleep(2 * time.Second)
		out, _, err = c.post(ctx, body)
	}
	if err != nil {
		return nil, err
	}

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return &Completion{Blocked: true, BlockReason: out.PromptFeedback.BlockReason}, nil
	}

	var text strings.Builder
	if len(out.Candidates) > 0 {
		for _, part := range out.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
	}
	return &Completion{Text: text.String()}, nil
}

func (c *GeminiClient) post(ctx context.Context, body geminiRequest) (*geminiResponse, int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, 0, E(KindRequestFailed, "gemini marshal request", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, 0, E(KindRequestFailed, "gemini build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, 0, E(KindNetworkError, "gemini unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, resp.StatusCode, E(KindNetworkError, "gemini read response", err)
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, resp.StatusCode, E(KindRequestFailed, "gemini decode response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, classifyGeminiError(resp.StatusCode, &out)
	}
	return &out, resp.StatusCode, nil
}

// classifyGeminiError maps the endpoint's native status/reason codes into
// the typed taxonomy.
func classifyGeminiError(httpStatus int, out *geminiResponse) error {
	status, message := "", ""
	if out.Error != nil {
		status = out.Error.Status
		message = out.Error.Message
	}
	wrapped := fmt.Errorf("gemini error (http %d, status %s): %s", httpStatus, status, message)

	switch httpStatus {
	case http.StatusBadRequest:
		if strings.Contains(message, "API_KEY_INVALID") ||
			(status == "INVALID_ARGUMENT" && strings.Contains(strings.ToLower(message), "api key")) {
			return E(KindInvalidAPIKey, "gemini rejected API key", wrapped)
		}
		return E(KindRequestFailed, "gemini bad request", wrapped)
	case http.StatusUnauthorized:
		return E(KindInvalidAPIKey, "gemini rejected API key", wrapped)
	case http.StatusForbidden:
		return E(KindPermissionDenied, "gemini denied access", wrapped)
	case http.StatusTooManyRequests:
		return E(KindQuotaExceeded, "gemini quota exceeded", wrapped)
	}
	return E(KindRequestFailed, "gemini request failed", wrapped)
}
