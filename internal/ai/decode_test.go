package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
  "files": {"src/App.tsx": "export default function App() { return null }"},
  "description": "A minimal app",
  "technologies": ["React", "TypeScript"]
}`

func TestDecodeGeneratedApp_PlainJSON(t *testing.T) {
	app, err := DecodeGeneratedApp(validPayload)
	require.NoError(t, err)
	assert.Equal(t, "A minimal app", app.Description)
	assert.Len(t, app.Files, 1)
	assert.Equal(t, []string{"React", "TypeScript"}, app.Technologies)
}

func TestDecodeGeneratedApp_MarkdownFences(t *testing.T) {
	raw := "```json\n" + validPayload + "\n```"
	app, err := DecodeGeneratedApp(raw)
	require.NoError(t, err)
	assert.Len(t, app.Files, 1)
}

func TestDecodeGeneratedApp_SurroundingProse(t *testing.T) {
	raw := "Sure! Here is your app:\n" + validPayload + "\nLet me know if you need changes."
	app, err := DecodeGeneratedApp(raw)
	require.NoError(t, err)
	assert.Equal(t, "A minimal app", app.Description)
}

func TestDecodeGeneratedApp_AgentVariantWithProjectName(t *testing.T) {
	raw := `{
  "projectName": "todo-app",
  "files": {"src/App.tsx": "x", "package.json": "{}"},
  "description": "A todo app",
  "technologies": ["React"]
}`
	app, err := DecodeGeneratedApp(raw)
	require.NoError(t, err)
	assert.Equal(t, "todo-app", app.Name)
	assert.Len(t, app.Files, 2)
}

func TestDecodeGeneratedApp_Failures(t *testing.T) {
	cases := map[string]string{
		"empty input":        "",
		"no json object":     "I could not generate the application, sorry.",
		"invalid json":       `{"files": {"a": }`,
		"missing files":      `{"description": "x", "technologies": []}`,
		"missing desc":       `{"files": {"a": "b"}, "technologies": []}`,
		"missing tech":       `{"files": {"a": "b"}, "description": "x"}`,
		"empty files":        `{"files": {}, "description": "x", "technologies": []}`,
		"blank description":  `{"files": {"a": "b"}, "description": "   ", "technologies": []}`,
		"files not a map":    `{"files": ["a"], "description": "x", "technologies": []}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeGeneratedApp(raw)
			require.Error(t, err)
			assert.Equal(t, KindDecode, KindOf(err))
		})
	}
}

func TestDecodeGeneratedApp_Idempotent(t *testing.T) {
	first, err := DecodeGeneratedApp(validPayload)
	require.NoError(t, err)
	second, err := DecodeGeneratedApp(validPayload)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
