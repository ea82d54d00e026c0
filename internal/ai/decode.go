package ai

import (
	"encoding/json"
	"log"
	"strings"

	"promptpilot_server/internal/types"
)

// DecodeGeneratedApp extracts the generation payload from raw model
// output. Models wrap the JSON in markdown fences or surround it with
// prose often enough that the cleanup steps here are load-bearing:
//
//  1. trim the text
//  2. drop ```json / ``` fence markers
//  3. slice from the first '{' to the last '}'
//  4. parse and require files (non-empty), description and technologies
//
// Any failure returns a KindDecode error; callers route that to the
// fallback generator, never to the user.
func DecodeGeneratedApp(raw string) (*types.GeneratedApp, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return nil, E(KindDecode, "no JSON object in model output", nil)
	}
	jsonStr := cleaned[start : end+1]

	var members map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &members); err != nil {
		log.Printf("model output is not valid JSON: %v (payload: %s)", err, truncate(jsonStr, 500))
		return nil, E(KindDecode, "model output is not valid JSON", err)
	}

	for _, key := range []string{"files", "description", "technologies"} {
		if _, ok := members[key]; !ok {
			return nil, E(KindDecode, "model output missing "+key, nil)
		}
	}

	var app types.GeneratedApp
	if err := json.Unmarshal([]byte(jsonStr), &app); err != nil {
		log.Printf("generation payload has wrong shape: %v (payload: %s)", err, truncate(jsonStr, 500))
		return nil, E(KindDecode, "generation payload has wrong shape", err)
	}

	if len(app.Files) == 0 {
		return nil, E(KindDecode, "generation payload contains no files", nil)
	}
	if strings.TrimSpace(app.Description) == "" {
		return nil, E(KindDecode, "generation payload missing description", nil)
	}
	return &app, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
