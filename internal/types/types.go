package types

import "time"

// Project lifecycle statuses.
const (
	StatusGenerating = "generating"
	StatusGenerated  = "generated"
	StatusError      = "error"
)

// Application categories.
const (
	AppTypeWeb    = "web"
	AppTypeMobile = "mobile"
)

// Project is one generated application owned by a user.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Prompt      string    `json:"prompt,omitempty"`
	UserID      string    `json:"userId"`
	Status      string    `json:"status"`
	AppType     string    `json:"appType"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectFile is one source file inside a project. FilePath is a
// slash-delimited logical path (e.g. "src/App.tsx"), not a real
// filesystem path.
type ProjectFile struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	FilePath  string    `json:"filePath"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Conversation is one user/assistant turn of the revision chat.
// Records are append-only.
type Conversation struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	UserID      string    `json:"userId"`
	Message     string    `json:"message"`
	Response    string    `json:"response"`
	MessageType string    `json:"messageType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GeneratedApp is the payload the model must produce for a generation
// request: a path->content mapping plus a description and the list of
// technologies used. It is transient; files are persisted individually.
type GeneratedApp struct {
	Name         string            `json:"projectName,omitempty"`
	Files        map[string]string `json:"files"`
	Description  string            `json:"description"`
	Technologies []string          `json:"technologies"`
}
