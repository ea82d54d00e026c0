package store

import (
	"context"
	"log"
	"sync"
	"time"
)

// Coalescer batches rapid successive saves of the same file into one
// database write. Each Save resets the file's quiet-period timer; the
// write fires only once the editor has been idle for the full period,
// so keystroke-level updates do not hammer sqlite.
type Coalescer struct {
	store *Store
	quiet time.Duration

	mu      sync.Mutex
	pending map[string]*pendingSave
	closed  bool
}

type pendingSave struct {
	timer   *time.Timer
	userID  string
	content string
}

// DefaultQuietPeriod is used when NewCoalescer is given a non-positive
// duration.
const DefaultQuietPeriod = 750 * time.Millisecond

func NewCoalescer(s *Store, quiet time.Duration) *Coalescer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Coalescer{
		store:   s,
		quiet:   quiet,
		pending: make(map[string]*pendingSave),
	}
}

// Save schedules a write of the file's full content. A newer Save for
// the same file supersedes the old one; only the latest content ever
// reaches the database.
func (c *Coalescer) Save(userID, fileID, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if p, ok := c.pending[fileID]; ok {
		p.userID = userID
		p.content = content
		p.timer.Reset(c.quiet)
		return
	}

	p := &pendingSave{userID: userID, content: content}
	p.timer = time.AfterFunc(c.quiet, func() { c.fire(fileID) })
	c.pending[fileID] = p
}

func (c *Coalescer) fire(fileID string) {
	c.mu.Lock()
	p, ok := c.pending[fileID]
	if !ok {
		c.mu.Unlock()
		return
	}
	delete(c.pending, fileID)
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.store.UpdateFileContent(ctx, p.userID, fileID, p.content); err != nil {
		log.Printf("coalesced save failed for %s: %v", fileID, err)
	}
}

// Flush writes every pending save immediately. Called on shutdown so no
// buffered edit is lost.
func (c *Coalescer) Flush(ctx context.Context) error {
	c.mu.Lock()
	drained := make(map[string]*pendingSave, len(c.pending))
	for id, p := range c.pending {
		p.timer.Stop()
		drained[id] = p
	}
	c.pending = make(map[string]*pendingSave)
	c.mu.Unlock()

	var firstErr error
	for id, p := range drained {
		if err := c.store.UpdateFileContent(ctx, p.userID, id, p.content); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close flushes outstanding saves and rejects further ones.
func (c *Coalescer) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return c.Flush(ctx)
}
