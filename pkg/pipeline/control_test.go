package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCheckpointPassesWhenNotPaused(t *testing.T) {
	ctl := NewControl()
	if err := ctl.Checkpoint(context.Background()); err != nil {
		t.Fatalf("Checkpoint() = %v, want nil", err)
	}
}

func TestCheckpointBlocksWhilePaused(t *testing.T) {
	ctl := NewControl()
	ctl.Pause()

	released := make(chan error, 1)
	go func() {
		released <- ctl.Checkpoint(context.Background())
	}()

	select {
	case err := <-released:
		t.Fatalf("Checkpoint returned %v while paused", err)
	case <-time.After(50 * time.Millisecond):
	}

	ctl.Resume()

	select {
	case err := <-released:
		if err != nil {
			t.Errorf("Checkpoint after Resume = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Checkpoint did not release after Resume")
	}
}

func TestCheckpointReturnsErrCanceled(t *testing.T) {
	ctl := NewControl()
	ctl.Cancel()

	if err := ctl.Checkpoint(context.Background()); !errors.Is(err, ErrCanceled) {
		t.Errorf("Checkpoint() = %v, want ErrCanceled", err)
	}
}

func TestCancelReleasesPausedCheckpoint(t *testing.T) {
	ctl := NewControl()
	ctl.Pause()

	released := make(chan error, 1)
	go func() {
		released <- ctl.Checkpoint(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	ctl.Cancel()

	select {
	case err := <-released:
		if !errors.Is(err, ErrCanceled) {
			t.Errorf("Checkpoint after Cancel = %v, want ErrCanceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Checkpoint did not release after Cancel")
	}
}

func TestCheckpointHonorsContextWhilePaused(t *testing.T) {
	ctl := NewControl()
	ctl.Pause()

	ctx, cancel := context.WithCancel(context.Background())

	released := make(chan error, 1)
	go func() {
		released <- ctl.Checkpoint(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-released:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Checkpoint = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Checkpoint did not release on context cancellation")
	}
}

func TestPauseAndResumeAreIdempotent(t *testing.T) {
	ctl := NewControl()

	ctl.Resume() // no-op when not paused
	ctl.Pause()
	ctl.Pause() // no-op while paused
	if !ctl.Paused() {
		t.Error("Paused() = false after Pause")
	}

	ctl.Resume()
	if ctl.Paused() {
		t.Error("Paused() = true after Resume")
	}
}

func TestPauseAfterCancelIsIgnored(t *testing.T) {
	ctl := NewControl()
	ctl.Cancel()
	ctl.Pause()

	if ctl.Paused() {
		t.Error("Pause took effect after Cancel")
	}
	if err := ctl.Checkpoint(context.Background()); !errors.Is(err, ErrCanceled) {
		t.Errorf("Checkpoint() = %v, want ErrCanceled", err)
	}
}
