package agent

import (
	"context"
	"log"
	"strings"

	"promptpilot_server/internal/ai"
	"promptpilot_server/internal/ai/prompts"
	"promptpilot_server/internal/types"
)

// Chat intents.
const (
	IntentFix     = "fix"
	IntentImprove = "improve"
	IntentExplain = "explain"
)

// ChatResult is what a revision chat turn produced. FileUpdated is set
// when the turn rewrote the target file's content.
type ChatResult struct {
	Reply       string `json:"reply"`
	Intent      string `json:"intent"`
	FileUpdated bool   `json:"fileUpdated"`
	FileID      string `json:"fileId,omitempty"`
	FilePath    string `json:"filePath,omitempty"`
}

// classifyIntent decides what the user wants from the wording of their
// message. Fix and improve turns rewrite the file; explain turns answer
// in prose.
func classifyIntent(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "fix") || strings.Contains(m, "bug"):
		return IntentFix
	case strings.Contains(m, "explain"):
		return IntentExplain
	default:
		return IntentImprove
	}
}

// Chat handles one revision chat turn against a target file. The intent
// decides how the model's answer is applied: fix and improve replace
// the file content, explain returns the answer verbatim. Backend
// failures become apologetic chat replies rather than errors, so the
// conversation never breaks mid-session. Every turn is appended to the
// project's conversation log.
func (a *AIAgent) Chat(ctx context.Context, userID, projectID, fileID, message string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ai.E(ai.KindValidation, "message is required", nil)
	}

	intent := classifyIntent(message)

	var file *types.ProjectFile
	var err error
	if fileID != "" {
		file, err = a.store.GetFile(ctx, userID, fileID)
		if err != nil {
			return nil, err
		}
		if file.ProjectID != projectID {
			return nil, ai.E(ai.KindValidation, "file does not belong to this project", nil)
		}
	}

	result := a.runChatTurn(ctx, userID, intent, message, file)

	conv := &types.Conversation{
		ProjectID:   projectID,
		UserID:      userID,
		Message:     message,
		Response:    result.Reply,
		MessageType: intent,
	}
	if err := a.store.AddConversation(ctx, conv); err != nil {
		log.Printf("record conversation for %s: %v", projectID, err)
	}

	return result, nil
}

func (a *AIAgent) runChatTurn(ctx context.Context, userID, intent, message string, file *types.ProjectFile) *ChatResult {
	var prompt string
	switch {
	case file == nil:
		prompt = prompts.BuildChatPrompt("(no file selected)", message)
		intent = IntentExplain
	case intent == IntentFix:
		prompt = prompts.BuildFixPrompt(file.Content, message)
	case intent == IntentExplain:
		prompt = prompts.BuildExplainPrompt(file.Content)
	default:
		prompt = prompts.BuildImprovePrompt(file.Content, message)
	}

	completion, err := a.provider.Complete(ctx, ai.CompletionRequest{Prompt: prompt, MaxTokens: 4096})
	if err != nil {
		log.Printf("chat completion failed: %v", err)
		return &ChatResult{Reply: ai.UserMessage(ai.KindOf(err)), Intent: intent}
	}
	if completion.Blocked {
		return &ChatResult{Reply: ai.UserMessage(ai.KindContentBlocked), Intent: intent}
	}

	text := strings.TrimSpace(completion.Text)
	if text == "" {
		return &ChatResult{Reply: ai.UserMessage(ai.KindRequestFailed), Intent: intent}
	}

	if intent == IntentExplain || file == nil {
		return &ChatResult{Reply: text, Intent: intent}
	}

	// Fix and improve turns return a replacement file body.
	content := stripCodeFences(text)
	if err := a.store.UpdateFileContent(ctx, userID, file.ID, content); err != nil {
		log.Printf("apply chat edit to %s: %v", file.ID, err)
		return &ChatResult{Reply: ai.UserMessage(ai.KindRequestFailed), Intent: intent}
	}
	if err := a.store.TouchProject(ctx, userID, file.ProjectID); err != nil {
		log.Printf("touch project %s: %v", file.ProjectID, err)
	}

	reply := "I've updated " + file.FilePath + " with the requested fix."
	if intent == IntentImprove {
		reply = "I've updated " + file.FilePath + " with the requested improvements."
	}
	return &ChatResult{
		Reply:       reply,
		Intent:      intent,
		FileUpdated: true,
		FileID:      file.ID,
		FilePath:    file.FilePath,
	}
}
