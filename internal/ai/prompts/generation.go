package prompts

import "fmt"

// BuildGenerationPrompt renders the full instruction string for a new
// app generation request. Pure function of its inputs; validation of the
// user prompt happens in the pipeline before this is called.
func BuildGenerationPrompt(userPrompt string, includeFrontend, includeBackend bool) string {
	frontend := "Not needed"
	if includeFrontend {
		frontend = "React + TypeScript + Vite + Tailwind CSS"
	}
	backend := "Not needed"
	if includeBackend {
		backend = "Express API with proper endpoints and structure"
	}

	template := `You are PromptPilot, an expert full-stack AI developer that generates complete web applications from prompts.

GENERATION REQUIREMENTS:
- Frontend: %s
- Backend: %s
- Generate clean, production-ready code
- Use modern React patterns (hooks, functional components)
- Include proper error handling and loading states
- Make it responsive and accessible

RESPONSE FORMAT:
You MUST respond with ONLY a valid JSON object. No markdown, no explanations, no code blocks - just pure JSON:

{
  "files": {
    "src/App.tsx": "import React from 'react'...",
    "src/components/Header.tsx": "import React from 'react'...",
    "package.json": "{ \"name\": \"generated-app\"... }",
    "src/index.css": "@tailwind base;..."
  },
  "description": "Brief description of the generated app",
  "technologies": ["React", "TypeScript", "Tailwind CSS"]
}

CRITICAL RULES:
1. Return ONLY valid JSON - no markdown formatting
2. Escape all quotes properly in code strings
3. Keep individual files under 2000 characters
4. Focus on core functionality first
5. Make it beautiful and functional

User's request: %s`

	return fmt.Sprintf(template, frontend, backend, userPrompt)
}

// BuildAgentPrompt renders the agent-backend variant of the generation
// prompt. The agent flow also cares about the app category (web or
// mobile) and may name the project itself.
func BuildAgentPrompt(userPrompt, appType string) string {
	template := `You are an advanced AI agent that builds complete applications.

MISSION: Generate a complete, production-ready %s application from the user's prompt.

TECH STACK TO USE:
- Frontend: React 18+ with TypeScript, Vite, Tailwind CSS
- UI Components: shadcn/ui components with modern design
- Icons: Lucide React icons
- State Management: React hooks and context

YOUR RESPONSE FORMAT:
Return a JSON object with this exact structure:
{
  "projectName": "string",
  "description": "string",
  "files": {
    "src/App.tsx": "complete React app code...",
    "src/components/Header.tsx": "component code...",
    "package.json": "dependencies...",
    "src/index.css": "global styles..."
  },
  "technologies": ["React", "TypeScript", "Tailwind CSS"]
}

CRITICAL REQUIREMENTS:
1. Generate COMPLETE, working applications - never half-implementations
2. Create beautiful, modern UIs with proper responsive design
3. Include proper TypeScript types and interfaces
4. Generate 8-15 files for a complete application structure
5. Make it production-ready with proper architecture

USER'S REQUEST: %s

Generate a complete application that perfectly fulfills this request.`

	return fmt.Sprintf(template, appType, userPrompt)
}
