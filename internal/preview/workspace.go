// Package preview stages generated projects on disk and simulates their
// build for the live preview panel.
package preview

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is a staged on-disk copy of a project's files, laid out so
// external tooling (bundlers, preview servers) can point at Root.
type Workspace struct {
	Root string
}

// Stage writes the path->content file set into a fresh temp directory,
// creating intermediate directories as needed. Paths are cleaned and
// must stay inside the workspace; anything escaping it is rejected.
func Stage(files map[string]string) (*Workspace, error) {
	root, err := os.MkdirTemp("", "promptpilot-preview-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	for path, content := range files {
		clean := filepath.Clean(filepath.FromSlash(path))
		if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
			os.RemoveAll(root)
			return nil, fmt.Errorf("invalid file path %q", path)
		}
		dst := filepath.Join(root, clean)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			os.RemoveAll(root)
			return nil, fmt.Errorf("stage %s: %w", path, err)
		}
		if err := os.WriteFile(dst, []byte(content), 0644); err != nil {
			os.RemoveAll(root)
			return nil, fmt.Errorf("stage %s: %w", path, err)
		}
	}

	log.Printf("staged %d files under %s", len(files), root)
	return &Workspace{Root: root}, nil
}

// Cleanup removes the staged directory.
func (w *Workspace) Cleanup() {
	if w.Root == "" {
		return
	}
	if err := os.RemoveAll(w.Root); err != nil {
		log.Printf("cleanup workspace %s: %v", w.Root, err)
	}
}
