package ai

import (
	"context"
	"errors"
	"log"
	"net"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"promptpilot_server/internal/utils"
)

const agentSystemPrompt = "You are a helpful AI assistant that generates code based on user prompts and specific formatting instructions."

// AgentClient talks to the hosted multi-purpose agent backend through its
// OpenAI-compatible chat completion API.
type AgentClient struct {
	client *openai.Client
	model  string
}

// NewAgentClient creates a client for the agent backend. An empty model
// selects gpt-4o.
func NewAgentClient(apiKey, model string) *AgentClient {
	if model == "" {
		model = openai.GPT4o
	}
	return &AgentClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *AgentClient) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = 0.3
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	chatReq := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: agentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil && utils.ShouldRetry(err) {
		log.Printf("agent completion failed, retrying once after delay: %v", err)
		time.Sleep(2 * time.Second)
		resp, err = c.client.CreateChatCompletion(ctx, chatReq)
	}
	if err != nil {
		return nil, classifyAgentError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, E(KindRequestFailed, "agent returned no choices", nil)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return &Completion{Blocked: true, BlockReason: "content_filter"}, nil
	}

	return &Completion{Text: choice.Message.Content}, nil
}

// classifyAgentError maps go-openai errors into the typed taxonomy using
// the backend's native status codes.
func classifyAgentError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401:
			return E(KindInvalidAPIKey, "agent rejected API key", err)
		case 403:
			return E(KindPermissionDenied, "agent denied access", err)
		case 429:
			return E(KindQuotaExceeded, "agent quota exceeded", err)
		}
		return E(KindRequestFailed, "agent request failed", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return E(KindNetworkError, "agent unreachable", err)
	}
	return E(KindRequestFailed, "agent request failed", err)
}
