package agent

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"promptpilot_server/internal/ai"
	"promptpilot_server/internal/ai/prompts"
	"promptpilot_server/internal/store"
	"promptpilot_server/internal/types"
)

// AIAgent drives the full generation and revision pipeline: it composes
// prompts, calls the completion backend, decodes or falls back, and
// persists the result. It is cheap to construct, so handlers build one
// per request with whichever provider the request selects.
type AIAgent struct {
	provider ai.Provider
	store    *store.Store
}

func New(provider ai.Provider, st *store.Store) *AIAgent {
	return &AIAgent{provider: provider, store: st}
}

// GenerateRequest carries everything needed to generate a new app.
type GenerateRequest struct {
	UserID          string
	Prompt          string
	Name            string
	AppType         string
	IncludeFrontend bool
	IncludeBackend  bool
}

// GenerateApp runs the end-to-end generation flow. Validation failures
// are reported before any network call. Configuration-class backend
// failures (bad key, quota, permissions, network) mark the project as
// errored and surface to the caller; everything else (safety block,
// empty output, undecodable output) silently degrades to a fallback
// template so the user always ends up with a working project.
func (a *AIAgent) GenerateApp(ctx context.Context, req GenerateRequest) (*types.Project, []types.ProjectFile, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, nil, ai.E(ai.KindValidation, "prompt is required", nil)
	}
	if !req.IncludeFrontend && !req.IncludeBackend {
		return nil, nil, ai.E(ai.KindValidation, "at least one of frontend or backend must be selected", nil)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = deriveName(req.Prompt)
	}

	project := &types.Project{
		Name:    name,
		Prompt:  req.Prompt,
		UserID:  req.UserID,
		Status:  types.StatusGenerating,
		AppType: req.AppType,
	}
	if err := a.store.CreateProject(ctx, project); err != nil {
		return nil, nil, fmt.Errorf("create project: %w", err)
	}

	app, err := a.generate(ctx, req)
	if err != nil {
		if derr := a.store.UpdateProjectStatus(ctx, req.UserID, project.ID, types.StatusError, ""); derr != nil {
			log.Printf("failed to mark project %s as errored: %v", project.ID, derr)
		}
		return nil, nil, err
	}

	files, err := a.persistFiles(ctx, req.UserID, project.ID, app.Files)
	if err != nil {
		if derr := a.store.UpdateProjectStatus(ctx, req.UserID, project.ID, types.StatusError, ""); derr != nil {
			log.Printf("failed to mark project %s as errored: %v", project.ID, derr)
		}
		return nil, nil, err
	}

	if err := a.store.UpdateProjectStatus(ctx, req.UserID, project.ID, types.StatusGenerated, app.Description); err != nil {
		return nil, nil, err
	}

	project.Status = types.StatusGenerated
	project.Description = app.Description
	return project, files, nil
}

// generate performs the model call and decodes the result, degrading to
// a fallback template wherever that is safe.
func (a *AIAgent) generate(ctx context.Context, req GenerateRequest) (*types.GeneratedApp, error) {
	prompt := prompts.BuildGenerationPrompt(req.Prompt, req.IncludeFrontend, req.IncludeBackend)
	if req.AppType == types.AppTypeMobile {
		prompt = prompts.BuildAgentPrompt(req.Prompt, req.AppType)
	}

	completion, err := a.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   8192,
		Temperature: 0.7,
		TopP:        0.95,
		TopK:        40,
	})
	if err != nil {
		switch ai.KindOf(err) {
		case ai.KindInvalidAPIKey, ai.KindQuotaExceeded, ai.KindPermissionDenied, ai.KindNetworkError:
			return nil, err
		}
		log.Printf("generation call failed, using fallback: %v", err)
		return ai.FallbackApp(req.Prompt), nil
	}

	if completion.Blocked {
		log.Printf("prompt blocked by safety filters (%s), using fallback", completion.BlockReason)
		return ai.FallbackApp(req.Prompt), nil
	}
	if strings.TrimSpace(completion.Text) == "" {
		log.Printf("model returned empty output, using fallback")
		return ai.FallbackApp(req.Prompt), nil
	}

	app, err := ai.DecodeGeneratedApp(completion.Text)
	if err != nil {
		log.Printf("could not decode model output, using fallback: %v", err)
		return ai.FallbackApp(req.Prompt), nil
	}
	return app, nil
}

// persistFiles stores every generated file and returns the stored rows
// in path order.
func (a *AIAgent) persistFiles(ctx context.Context, userID, projectID string, files map[string]string) ([]types.ProjectFile, error) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]types.ProjectFile, 0, len(paths))
	for _, p := range paths {
		f := types.ProjectFile{
			ProjectID: projectID,
			FilePath:  p,
			Content:   files[p],
			UserID:    userID,
		}
		if err := a.store.CreateFile(ctx, &f); err != nil {
			return nil, fmt.Errorf("persist %s: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// CreateFile asks the model to write one new file that fits the
// project's existing structure, then persists it.
func (a *AIAgent) CreateFile(ctx context.Context, userID, projectID, filePath, instruction string) (*types.ProjectFile, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, ai.E(ai.KindValidation, "file path is required", nil)
	}

	if _, err := a.store.GetFileByPath(ctx, userID, projectID, filePath); err == nil {
		return nil, ai.E(ai.KindValidation, "file already exists: "+filePath, nil)
	}

	existing, err := a.store.ListFiles(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildCreateFilePrompt(filePath, instruction, projectContext(existing))
	completion, err := a.provider.Complete(ctx, ai.CompletionRequest{Prompt: prompt, MaxTokens: 4096})
	if err != nil {
		return nil, err
	}
	if completion.Blocked {
		return nil, ai.E(ai.KindContentBlocked, "file creation request blocked", nil)
	}

	content := stripCodeFences(completion.Text)
	if strings.TrimSpace(content) == "" {
		return nil, ai.E(ai.KindDecode, "model returned no file content", nil)
	}

	f := types.ProjectFile{
		ProjectID: projectID,
		FilePath:  filePath,
		Content:   content,
		UserID:    userID,
	}
	if err := a.store.CreateFile(ctx, &f); err != nil {
		return nil, err
	}
	if err := a.store.TouchProject(ctx, userID, projectID); err != nil {
		log.Printf("touch project %s: %v", projectID, err)
	}
	return &f, nil
}

// DeleteFile removes one file from the project.
func (a *AIAgent) DeleteFile(ctx context.Context, userID, projectID, fileID string) error {
	f, err := a.store.GetFile(ctx, userID, fileID)
	if err != nil {
		return err
	}
	if f.ProjectID != projectID {
		return store.ErrNotFound
	}
	if err := a.store.DeleteFile(ctx, userID, fileID); err != nil {
		return err
	}
	if err := a.store.TouchProject(ctx, userID, projectID); err != nil {
		log.Printf("touch project %s: %v", projectID, err)
	}
	return nil
}

// deriveName makes a project name from the first few words of the prompt.
func deriveName(prompt string) string {
	words := strings.Fields(strings.TrimSpace(prompt))
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}

// projectContext summarizes the existing files for a revision prompt.
// Content is truncated per file so the context stays within budget.
func projectContext(files []types.ProjectFile) string {
	if len(files) == 0 {
		return "(empty project)"
	}
	var b strings.Builder
	for _, f := range files {
		b.WriteString("--- ")
		b.WriteString(f.FilePath)
		b.WriteString(" ---\n")
		content := f.Content
		if len(content) > 1500 {
			content = content[:1500] + "\n... (truncated)"
		}
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	return b.String()
}

// stripCodeFences removes a leading/trailing markdown fence from model
// output that was asked for raw file content.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
