// Package control provides file-based run control via the .cortex
// directory. Dropping a "cancel" file into .cortex/control stops the
// current run cooperatively; "pause" holds the scheduler between
// dispatches until a "resume" file clears it.
package control

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Signal file names recognized in the control directory.
const (
	SignalCancel = "cancel"
	SignalPause  = "pause"
	SignalResume = "resume"
)

// Watcher monitors the control directory for signal files.
type Watcher struct {
	controlDir string

	mu          sync.RWMutex
	cancelled   bool
	paused      bool
	cancelFuncs []context.CancelFunc

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a watcher over {workingDir}/.cortex/control.
// If fsnotify is unavailable the watcher degrades to stat-based polls
// in Cancelled/Paused rather than failing.
func NewWatcher(workingDir string) (*Watcher, error) {
	controlDir := filepath.Join(workingDir, ".cortex", "control")
	if err := os.MkdirAll(controlDir, 0755); err != nil {
		return nil, err
	}

	w := &Watcher{
		controlDir: controlDir,
		done:       make(chan struct{}),
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return w, nil
	}
	if err := fw.Add(controlDir); err != nil {
		fw.Close()
		return w, nil
	}
	w.watcher = fw
	go w.watchSignals()

	return w, nil
}

// BindContext derives a context that is cancelled when a cancel signal
// arrives.
func (w *Watcher) BindContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	w.mu.Lock()
	if w.cancelled {
		cancel()
	} else {
		w.cancelFuncs = append(w.cancelFuncs, cancel)
	}
	w.mu.Unlock()

	return ctx, cancel
}

// watchSignals monitors the control directory for signal files.
func (w *Watcher) watchSignals() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == 0 && event.Op&fsnotify.Write == 0 {
				continue
			}
			w.apply(filepath.Base(event.Name))
		case <-w.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

func (w *Watcher) apply(signal string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch signal {
	case SignalCancel:
		w.cancelled = true
		for _, cancel := range w.cancelFuncs {
			cancel()
		}
		w.cancelFuncs = nil
	case SignalPause:
		w.paused = true
	case SignalResume:
		w.paused = false
		os.Remove(filepath.Join(w.controlDir, SignalPause))
		os.Remove(filepath.Join(w.controlDir, SignalResume))
	}
}

// Cancelled reports whether a cancel signal has been received.
// The signal file is also checked directly in case the watcher missed it.
func (w *Watcher) Cancelled() bool {
	if _, err := os.Stat(filepath.Join(w.controlDir, SignalCancel)); err == nil {
		w.apply(SignalCancel)
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cancelled
}

// Paused reports whether a pause signal is in effect.
func (w *Watcher) Paused() bool {
	if _, err := os.Stat(filepath.Join(w.controlDir, SignalResume)); err == nil {
		w.apply(SignalResume)
	} else if _, err := os.Stat(filepath.Join(w.controlDir, SignalPause)); err == nil {
		w.apply(SignalPause)
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.paused
}

// WaitWhilePaused blocks until the pause signal clears, the context is
// cancelled, or a cancel signal arrives.
func (w *Watcher) WaitWhilePaused(ctx context.Context) error {
	for w.Paused() {
		if w.Cancelled() {
			return context.Canceled
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return nil
}

// SendCancel creates a cancel signal file.
func (w *Watcher) SendCancel() error {
	return w.send(SignalCancel)
}

// SendPause creates a pause signal file.
func (w *Watcher) SendPause() error {
	return w.send(SignalPause)
}

// SendResume creates a resume signal file, clearing a pause.
func (w *Watcher) SendResume() error {
	return w.send(SignalResume)
}

func (w *Watcher) send(signal string) error {
	path := filepath.Join(w.controlDir, signal)
	return os.WriteFile(path, []byte(time.Now().Format(time.RFC3339)), 0644)
}

// Clear removes all signal files and resets signal state.
func (w *Watcher) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cancelled = false
	w.paused = false

	for _, signal := range []string{SignalCancel, SignalPause, SignalResume} {
		os.Remove(filepath.Join(w.controlDir, signal))
	}
}

// ControlDir returns the path to the control directory.
func (w *Watcher) ControlDir() string {
	return w.controlDir
}

// Close shuts down the watcher.
func (w *Watcher) Close() {
	close(w.done)
	if w.watcher != nil {
		w.watcher.Close()
	}
}
