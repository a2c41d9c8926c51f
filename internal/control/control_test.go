package control

import (
	"context"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	t.Cleanup(w.Close)
	return w
}

func TestCancelSignal(t *testing.T) {
	w := newTestWatcher(t)

	if w.Cancelled() {
		t.Fatal("fresh watcher should not be cancelled")
	}
	if err := w.SendCancel(); err != nil {
		t.Fatalf("send cancel: %v", err)
	}

	// Stat fallback makes this deterministic even if the fs event lags.
	if !w.Cancelled() {
		t.Error("cancel signal not observed")
	}
}

func TestBindContextCancelledBySignal(t *testing.T) {
	w := newTestWatcher(t)

	ctx, cancel := w.BindContext(context.Background())
	defer cancel()

	if err := w.SendCancel(); err != nil {
		t.Fatalf("send cancel: %v", err)
	}
	// Force signal pickup; the watcher may deliver it asynchronously.
	w.Cancelled()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("bound context not cancelled by signal")
	}
}

func TestBindContextAfterCancel(t *testing.T) {
	w := newTestWatcher(t)

	if err := w.SendCancel(); err != nil {
		t.Fatalf("send cancel: %v", err)
	}
	w.Cancelled()

	ctx, cancel := w.BindContext(context.Background())
	defer cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context bound after cancel should start cancelled")
	}
}

func TestPauseResume(t *testing.T) {
	w := newTestWatcher(t)

	if err := w.SendPause(); err != nil {
		t.Fatalf("send pause: %v", err)
	}
	if !w.Paused() {
		t.Fatal("pause signal not observed")
	}

	done := make(chan error, 1)
	go func() {
		done <- w.WaitWhilePaused(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("WaitWhilePaused returned while paused")
	default:
	}

	if err := w.SendResume(); err != nil {
		t.Fatalf("send resume: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("wait after resume: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitWhilePaused did not unblock after resume")
	}
}

func TestClear(t *testing.T) {
	w := newTestWatcher(t)

	w.SendCancel()
	w.SendPause()
	w.Cancelled()
	w.Paused()

	w.Clear()

	if w.Cancelled() || w.Paused() {
		t.Error("signals should be cleared")
	}
}
