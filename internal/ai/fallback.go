package ai

import (
	"strings"

	"promptpilot_server/internal/types"
)

// Fallback template kinds.
const (
	templateTodo = "todo"
	templateBlog = "blog"
	templateChat = "chat"
)

// FallbackApp deterministically selects one of the hardcoded example
// applications from the user's prompt. This path performs no network
// call and cannot fail; it guarantees generation always terminates in a
// usable project even when the model output is blocked or undecodable.
func FallbackApp(prompt string) *types.GeneratedApp {
	switch classifyTemplate(prompt) {
	case templateBlog:
		return &types.GeneratedApp{
			Name: "AI Generated Blog App",
			Files: map[string]string{
				"src/App.tsx":  blogAppCode,
				"src/App.css":  basicCSS,
				"package.json": packageJSON("blog-app"),
			},
			Description:  "A modern blog platform with search functionality and responsive design",
			Technologies: []string{"React", "TypeScript", "Tailwind CSS", "Vite"},
		}
	case templateChat:
		return &types.GeneratedApp{
			Name: "AI Generated Chat App",
			Files: map[string]string{
				"src/App.tsx":  chatAppCode,
				"src/App.css":  basicCSS,
				"package.json": packageJSON("chat-app"),
			},
			Description:  "A real-time chat application with AI assistant simulation",
			Technologies: []string{"React", "TypeScript", "Tailwind CSS", "Vite"},
		}
	default:
		return &types.GeneratedApp{
			Name: "AI Generated Todo App",
			Files: map[string]string{
				"src/App.tsx":  todoAppCode,
				"src/App.css":  basicCSS,
				"package.json": packageJSON("todo-app"),
			},
			Description:  "A beautiful and functional todo application with priority levels and filtering",
			Technologies: []string{"React", "TypeScript", "Tailwind CSS", "Vite"},
		}
	}
}

func classifyTemplate(prompt string) string {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "todo"):
		return templateTodo
	case strings.Contains(p, "blog"):
		return templateBlog
	case strings.Contains(p, "chat"):
		return templateChat
	default:
		return templateTodo
	}
}
