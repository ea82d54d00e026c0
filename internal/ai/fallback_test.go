package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackApp_TemplateSelection(t *testing.T) {
	cases := []struct {
		prompt   string
		wantName string
	}{
		{"build me a todo list", "AI Generated Todo App"},
		{"a personal BLOG with search", "AI Generated Blog App"},
		{"real-time chat with friends", "AI Generated Chat App"},
		{"an inventory dashboard", "AI Generated Todo App"}, // default
		{"", "AI Generated Todo App"},
	}
	for _, tc := range cases {
		app := FallbackApp(tc.prompt)
		assert.Equal(t, tc.wantName, app.Name, "prompt: %q", tc.prompt)
	}
}

func TestFallbackApp_AlwaysComplete(t *testing.T) {
	for _, prompt := range []string{"todo", "blog", "chat", "anything else"} {
		app := FallbackApp(prompt)
		require.Len(t, app.Files, 3)
		assert.Contains(t, app.Files, "src/App.tsx")
		assert.Contains(t, app.Files, "src/App.css")
		assert.Contains(t, app.Files, "package.json")
		assert.NotEmpty(t, app.Description)
		assert.Equal(t, []string{"React", "TypeScript", "Tailwind CSS", "Vite"}, app.Technologies)
		for path, content := range app.Files {
			assert.NotEmpty(t, content, "file %s must have content", path)
		}
	}
}

func TestFallbackApp_TodoWinsOverLaterKeywords(t *testing.T) {
	// "todo" is checked first, so a prompt mentioning several templates
	// still resolves deterministically.
	app := FallbackApp("a blog with a todo widget and chat")
	assert.Equal(t, "AI Generated Todo App", app.Name)
}
