package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGenerationPrompt_LayerSelection(t *testing.T) {
	both := BuildGenerationPrompt("a todo app", true, true)
	assert.Contains(t, both, "React + TypeScript + Vite + Tailwind CSS")
	assert.Contains(t, both, "Express API with proper endpoints and structure")
	assert.Contains(t, both, "a todo app")

	frontendOnly := BuildGenerationPrompt("a todo app", true, false)
	assert.Contains(t, frontendOnly, "React + TypeScript + Vite + Tailwind CSS")
	assert.Contains(t, frontendOnly, "Backend: Not needed")

	backendOnly := BuildGenerationPrompt("a todo app", false, true)
	assert.Contains(t, backendOnly, "Frontend: Not needed")
	assert.Contains(t, backendOnly, "Express API")
}

func TestBuildGenerationPrompt_DemandsPureJSON(t *testing.T) {
	p := BuildGenerationPrompt("x", true, true)
	assert.Contains(t, p, "ONLY a valid JSON object")
	assert.Contains(t, p, `"files"`)
	assert.Contains(t, p, `"description"`)
	assert.Contains(t, p, `"technologies"`)
}

func TestBuildAgentPrompt(t *testing.T) {
	p := BuildAgentPrompt("a fitness tracker", "mobile")
	assert.Contains(t, p, "mobile application")
	assert.Contains(t, p, "a fitness tracker")
	assert.Contains(t, p, `"projectName"`)
}

func TestRevisionPrompts_EmbedInputs(t *testing.T) {
	code := "const x = 1"

	improve := BuildImprovePrompt(code, "use let")
	assert.Contains(t, improve, code)
	assert.Contains(t, improve, "use let")
	assert.Contains(t, improve, "ONLY the improved code")

	fix := BuildFixPrompt(code, "x is undefined")
	assert.Contains(t, fix, code)
	assert.Contains(t, fix, "x is undefined")
	assert.Contains(t, fix, "ONLY the fixed code")

	explain := BuildExplainPrompt(code)
	assert.Contains(t, explain, code)

	create := BuildCreateFilePrompt("src/utils.ts", "add a date helper", "--- src/App.tsx ---")
	assert.Contains(t, create, "src/utils.ts")
	assert.Contains(t, create, "add a date helper")
	assert.Contains(t, create, "src/App.tsx")

	chat := BuildChatPrompt("project files here", "how does routing work?")
	assert.Contains(t, chat, "project files here")
	assert.Contains(t, chat, "how does routing work?")
}
