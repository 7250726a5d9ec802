// Package watcher monitors a single file for changes, debouncing the bursts
// of writes that editors and atomic saves produce into one settled event.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options configures the watcher behavior.
type Options struct {
	// SettleDelay is how long the file must stay unchanged before an event
	// is emitted. Each burst of writes collapses into a single event.
	SettleDelay time.Duration
}

// setDefaults applies default values to unset options.
func (o *Options) setDefaults() {
	if o.SettleDelay == 0 {
		o.SettleDelay = 200 * time.Millisecond
	}
}

// Watcher watches one file through its parent directory. Watching the
// directory rather than the file itself also catches atomic saves, where an
// editor writes a temp file and renames it over the target.
type Watcher struct {
	path    string
	opts    Options
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending *pendingChange
	known   bool // file existed at the last settled observation

	events chan Event
	errors chan error
	done   chan struct{}
	wg     sync.WaitGroup
}

// pendingChange is a snapshot of the file taken when a change was noticed.
// The settle timer compares against it to decide whether the file is still
// being written.
type pendingChange struct {
	exists  bool
	size    int64
	modTime time.Time
	timer   *time.Timer
}

// New creates a watcher for the given file. The file itself does not have to
// exist yet, but its directory must.
func New(path string, logger *slog.Logger, opts Options) (*Watcher, error) {
	opts.setDefaults()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	_, statErr := os.Stat(abs)

	return &Watcher{
		path:    abs,
		opts:    opts,
		logger:  logger,
		watcher: fsw,
		known:   statErr == nil,
		events:  make(chan Event, 16),
		errors:  make(chan error, 4),
		done:    make(chan struct{}),
	}, nil
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching for events.
// This method blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.wg.Add(1)
	go w.processEvents(ctx)

	<-ctx.Done()
	return nil
}

// processEvents drains fsnotify events until cancelled or stopped.
func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFsnotifyEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				w.logger.Warn("dropping watcher error", "error", err)
			}
		}
	}
}

// handleFsnotifyEvent filters raw events down to the watched file and starts
// the settle timer. Every operation goes through settling, including removes
// and renames: an editor may rename the file away and recreate it a moment
// later, which must surface as a single modification.
func (w *Watcher) handleFsnotifyEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	w.startSettling()
}

// startSettling snapshots the file state and (re)arms the settle timer.
func (w *Watcher) startSettling() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.timer.Stop()
	}

	pending := &pendingChange{}
	if info, err := os.Stat(w.path); err == nil {
		pending.exists = true
		pending.size = info.Size()
		pending.modTime = info.ModTime()
	}

	pending.timer = time.AfterFunc(w.opts.SettleDelay, w.checkSettled)
	w.pending = pending
}

// checkSettled re-examines the file when the settle timer fires. If the file
// changed since the snapshot it is still being written, so the timer restarts.
// Otherwise the settled state is compared with the last known state and the
// matching event is emitted.
func (w *Watcher) checkSettled() {
	w.mu.Lock()

	pending := w.pending
	if pending == nil {
		w.mu.Unlock()
		return
	}

	info, err := os.Stat(w.path)
	exists := err == nil

	// Still changing, restart the timer with a fresh snapshot.
	if exists != pending.exists ||
		(exists && (info.Size() != pending.size || info.ModTime() != pending.modTime)) {
		pending.exists = exists
		if exists {
			pending.size = info.Size()
			pending.modTime = info.ModTime()
		} else {
			pending.size = 0
			pending.modTime = time.Time{}
		}
		pending.timer = time.AfterFunc(w.opts.SettleDelay, w.checkSettled)
		w.mu.Unlock()
		return
	}

	w.pending = nil

	var event Event
	emit := true
	switch {
	case exists && !w.known:
		event = Event{Type: EventAdded, Path: w.path, Size: info.Size(), ModTime: info.ModTime()}
	case exists:
		event = Event{Type: EventModified, Path: w.path, Size: info.Size(), ModTime: info.ModTime()}
	case w.known:
		event = Event{Type: EventRemoved, Path: w.path}
	default:
		// A temp file flickered into existence and vanished again.
		emit = false
	}
	w.known = exists
	w.mu.Unlock()

	if emit {
		w.emitEvent(event)
	}
}

// emitEvent sends an event unless the watcher is stopping.
func (w *Watcher) emitEvent(event Event) {
	select {
	case w.events <- event:
	case <-w.done:
	}
}

// Events returns the channel for receiving settled file events.
// The channel stays open after Stop; consumers exit through their context.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel for receiving watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)

	w.mu.Lock()
	if w.pending != nil {
		w.pending.timer.Stop()
		w.pending = nil
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
