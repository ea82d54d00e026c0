package prompts

import "fmt"

// Revision prompts embed the current content of one target file and ask
// the model for either a complete replacement file body (improve, fix)
// or prose (explain). They never ask for JSON.

func BuildImprovePrompt(code, request string) string {
	return fmt.Sprintf(`You are a code improvement expert. Improve the given code based on the user's request.

Current code:
%s

Request: %s

Return ONLY the improved code without any explanations or markdown formatting.`, code, request)
}

func BuildFixPrompt(code, issue string) string {
	return fmt.Sprintf(`You are a debugging expert. Fix the bug in this code:

Code:
%s

Error/Issue: %s

Return ONLY the fixed code without explanations.`, code, issue)
}

func BuildExplainPrompt(code string) string {
	return fmt.Sprintf(`Explain this code clearly and concisely:

%s

Provide a helpful explanation that covers what the code does and how it works.`, code)
}

// BuildCreateFilePrompt asks for the full content of a new file, given a
// summary of the existing project so the model matches its patterns.
func BuildCreateFilePrompt(filePath, instruction, projectContext string) string {
	return fmt.Sprintf(`You are an expert developer creating a new file for an existing project.

EXISTING PROJECT STRUCTURE:
%s

CREATE NEW FILE: %s
REQUIREMENTS: %s

IMPORTANT:
- Follow the existing project patterns and architecture
- Use consistent coding style with existing files
- Import from existing components/utilities when appropriate
- Return ONLY the complete file content, no explanations

Generate the complete file content:`, projectContext, filePath, instruction)
}

// BuildChatPrompt asks for a prose answer about the project.
func BuildChatPrompt(fileContext, message string) string {
	return fmt.Sprintf(`You are an expert AI programming assistant working on a web application project.

PROJECT CONTEXT:
%s

USER MESSAGE: %s

Provide a helpful, accurate response that assists with the development of this project.`, fileContext, message)
}
