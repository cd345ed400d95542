package pipeline

import (
	"context"
	"errors"
	"sync"
)

// ErrCanceled is returned by Run when the session was deleted or the server
// is shutting down mid-analysis.
var ErrCanceled = errors.New("analysis canceled")

// Control is the cooperative pause/resume/cancel handle for one running
// pipeline. The pipeline checks in between steps; in-flight provider calls
// are never interrupted, matching the client contract where pause takes
// effect at the next step boundary.
type Control struct {
	mu       sync.Mutex
	paused   bool
	canceled bool
	resume   chan struct{}
}

func NewControl() *Control {
	return &Control{
		resume: make(chan struct{}),
	}
}

// Pause requests a stop at the next step boundary. No-op while paused.
func (c *Control) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused || c.canceled {
		return
	}
	c.paused = true
	c.resume = make(chan struct{})
}

// Resume releases a paused pipeline. No-op when not paused.
func (c *Control) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.paused = false
	close(c.resume)
}

// Cancel permanently stops the pipeline, releasing it if paused.
func (c *Control) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.canceled {
		return
	}
	c.canceled = true
	if c.paused {
		c.paused = false
		close(c.resume)
	}
}

// Paused reports whether the pipeline is currently held.
func (c *Control) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Checkpoint blocks while paused and returns ErrCanceled once canceled.
// Called by the pipeline between steps.
func (c *Control) Checkpoint(ctx context.Context) error {
	for {
		c.mu.Lock()
		if c.canceled {
			c.mu.Unlock()
			return ErrCanceled
		}
		if !c.paused {
			c.mu.Unlock()
			return nil
		}
		resume := c.resume
		c.mu.Unlock()

		select {
		case <-resume:
			// re-check: a Cancel may have raced the Resume
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
