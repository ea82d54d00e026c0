package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"promptpilot_server/internal/agent"
	"promptpilot_server/internal/ai"
	"promptpilot_server/internal/keys"
	"promptpilot_server/internal/preview"
	"promptpilot_server/internal/store"
	"promptpilot_server/internal/utils"
)

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	store     *store.Store
	coalescer *store.Coalescer
	simulator *preview.Simulator

	backend    string // "agent" or "gemini"
	openAIKey  string
	agentModel string
	geminiKey  string // server-wide fallback; per-request header wins

	geminiModel string
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(st *store.Store, coalescer *store.Coalescer, sim *preview.Simulator,
	backend, openAIKey, agentModel, geminiKey, geminiModel string) *APIHandler {
	if backend == "" {
		backend = "agent"
	}
	return &APIHandler{
		store:       st,
		coalescer:   coalescer,
		simulator:   sim,
		backend:     backend,
		openAIKey:   openAIKey,
		agentModel:  agentModel,
		geminiKey:   geminiKey,
		geminiModel: geminiModel,
	}
}

// providerFor selects the completion backend for this request. The
// gemini backend takes the key from the X-Gemini-Key header so user
// keys never touch server config or storage; the agent backend always
// uses the server's own credentials.
func (h *APIHandler) providerFor(c *gin.Context) (ai.Provider, error) {
	if h.backend == "gemini" {
		key := strings.TrimSpace(c.GetHeader("X-Gemini-Key"))
		if key == "" {
			key = h.geminiKey
		}
		if key == "" {
			return nil, ai.E(ai.KindInvalidAPIKey, "no Gemini API key supplied", nil)
		}
		return ai.NewGeminiClient(key, h.geminiModel), nil
	}
	return ai.NewAgentClient(h.openAIKey, h.agentModel), nil
}

func (h *APIHandler) agentFor(c *gin.Context) (*agent.AIAgent, error) {
	provider, err := h.providerFor(c)
	if err != nil {
		return nil, err
	}
	return agent.New(provider, h.store), nil
}

// respondError translates pipeline and store errors into HTTP status
// codes and user-facing text. Raw backend errors are logged, never sent.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	kind := ai.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case ai.KindValidation:
		status = http.StatusBadRequest
	case ai.KindInvalidAPIKey:
		status = http.StatusUnauthorized
	case ai.KindPermissionDenied:
		status = http.StatusForbidden
	case ai.KindQuotaExceeded:
		status = http.StatusTooManyRequests
	case ai.KindNetworkError, ai.KindRequestFailed, ai.KindDecode:
		status = http.StatusBadGateway
	case ai.KindContentBlocked:
		status = http.StatusBadRequest
	}

	log.Printf("request failed (%s): %v", kind, err)
	c.JSON(status, gin.H{"error": ai.UserMessage(kind)})
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	Prompt          string `json:"prompt" binding:"required"`
	Name            string `json:"name"`
	AppType         string `json:"appType"`
	IncludeFrontend *bool  `json:"includeFrontend"`
	IncludeBackend  *bool  `json:"includeBackend"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	FileID  string `json:"fileId"`
}

type CreateFileRequest struct {
	FilePath    string `json:"filePath" binding:"required"`
	Instruction string `json:"instruction" binding:"required"`
}

type UpdateFileRequest struct {
	Content *string `json:"content" binding:"required"`
}

type TestKeyRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

// --- API Handlers ---

// POST /project/generate
func (h *APIHandler) GenerateProject(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	// Layers default to on; explicit false opts out.
	includeFrontend := req.IncludeFrontend == nil || *req.IncludeFrontend
	includeBackend := req.IncludeBackend == nil || *req.IncludeBackend

	ag, err := h.agentFor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	userID := currentUser(c)
	log.Printf("Received generation request from user %s", userID)

	project, files, err := ag.GenerateApp(c.Request.Context(), agent.GenerateRequest{
		UserID:          userID,
		Prompt:          req.Prompt,
		Name:            req.Name,
		AppType:         req.AppType,
		IncludeFrontend: includeFrontend,
		IncludeBackend:  includeBackend,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("Generation successful for user %s. Project ID: %s (%d files)", userID, project.ID, len(files))
	c.JSON(http.StatusCreated, gin.H{"project": project, "files": files})
}

// GET /projects
func (h *APIHandler) ListProjects(c *gin.Context) {
	projects, err := h.store.ListProjects(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GET /project/:id
func (h *APIHandler) GetProject(c *gin.Context) {
	project, err := h.store.GetProject(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DELETE /project/:id
func (h *APIHandler) DeleteProject(c *gin.Context) {
	if err := h.store.DeleteProject(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GET /project/:id/files
func (h *APIHandler) GetProjectFiles(c *gin.Context) {
	userID := currentUser(c)
	projectID := c.Param("id")

	// Distinguish empty project from missing project.
	if _, err := h.store.GetProject(c.Request.Context(), userID, projectID); err != nil {
		respondError(c, err)
		return
	}

	files, err := h.store.ListFiles(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// POST /project/:id/files
func (h *APIHandler) CreateProjectFile(c *gin.Context) {
	var req CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	ag, err := h.agentFor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := ag.CreateFile(c.Request.Context(), currentUser(c), c.Param("id"), req.FilePath, req.Instruction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"file":     file,
		"fileType": utils.DetermineFileType(file.FilePath),
	})
}

// PUT /project/:id/files/:fileId
// Saves go through the coalescer so rapid editor keystrokes collapse
// into one write.
func (h *APIHandler) UpdateProjectFile(c *gin.Context) {
	var req UpdateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID := currentUser(c)
	fileID := c.Param("fileId")

	file, err := h.store.GetFile(c.Request.Context(), userID, fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	if file.ProjectID != c.Param("id") {
		respondError(c, store.ErrNotFound)
		return
	}

	h.coalescer.Save(userID, fileID, *req.Content)
	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}

// DELETE /project/:id/files/:fileId
func (h *APIHandler) DeleteProjectFile(c *gin.Context) {
	ag, err := h.agentFor(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ag.DeleteFile(c.Request.Context(), currentUser(c), c.Param("id"), c.Param("fileId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// POST /project/:id/chat
func (h *APIHandler) ChatWithProject(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	ag, err := h.agentFor(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := ag.Chat(c.Request.Context(), currentUser(c), c.Param("id"), req.FileID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /project/:id/conversations
func (h *APIHandler) GetConversations(c *gin.Context) {
	conversations, err := h.store.ListConversations(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// GET /project/:id/build
// Streams simulated build progress as server-sent events, then reports
// the staged preview workspace.
func (h *APIHandler) BuildProject(c *gin.Context) {
	userID := currentUser(c)
	projectID := c.Param("id")

	files, err := h.store.ListFiles(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project contains no files to build"})
		return
	}

	fileSet := make(map[string]string, len(files))
	for _, f := range files {
		fileSet[f.FilePath] = f.Content
	}
	ws, err := preview.Stage(fileSet)
	if err != nil {
		respondError(c, err)
		return
	}
	defer ws.Cleanup()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	steps := h.simulator.Run(c.Request.Context())
	c.Stream(func(w io.Writer) bool {
		step, ok := <-steps
		if !ok {
			return false
		}
		c.SSEvent("progress", step)
		return true
	})
}

// POST /settings/api-key/validate
func (h *APIHandler) ValidateAPIKey(c *gin.Context) {
	var req TestKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": keys.ValidateFormat(req.APIKey)})
}

// POST /settings/api-key/test
// Runs the offline format check, then a minimal live completion.
func (h *APIHandler) TestAPIKey(c *gin.Context) {
	var req TestKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if !keys.ValidateFormat(req.APIKey) {
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"message": ai.UserMessage(ai.KindInvalidAPIKey),
		})
		return
	}

	provider := ai.NewGeminiClient(req.APIKey, h.geminiModel)
	if err := keys.Test(c.Request.Context(), provider); err != nil {
		kind := ai.KindOf(err)
		log.Printf("API key test failed (%s): %v", kind, err)
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"message": ai.UserMessage(kind),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "message": "API key is working"})
}

// GET /health
func (h *APIHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": fmt.Sprintf("db: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": h.backend})
}
