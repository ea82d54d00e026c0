package preview

import (
	"context"
	"time"
)

// buildSteps are the progress messages the preview panel streams while
// a project "builds". No real toolchain runs; the preview renders the
// staged files directly.
var buildSteps = []string{
	"Installing dependencies...",
	"Resolving packages...",
	"Compiling TypeScript...",
	"Bundling application...",
	"Optimizing assets...",
	"Build complete. Preview ready.",
}

// Simulator emits canned build progress on a fixed cadence.
type Simulator struct {
	StepDelay time.Duration
}

func NewSimulator(stepDelay time.Duration) *Simulator {
	if stepDelay <= 0 {
		stepDelay = 400 * time.Millisecond
	}
	return &Simulator{StepDelay: stepDelay}
}

// Run streams the build steps one by one. The channel closes after the
// final step or as soon as ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		ticker := time.NewTicker(s.StepDelay)
		defer ticker.Stop()
		for _, step := range buildSteps {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			select {
			case <-ctx.Done():
				return
			case out <- step:
			}
		}
	}()
	return out
}
