package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Op identifies the kind of change observed on an artifact file.
type Op string

const (
	// OpCreate signals a new artifact appearing in the store.
	OpCreate Op = "create"
	// OpWrite signals an in-place modification of an artifact file.
	OpWrite Op = "write"
	// OpRemove signals an artifact being deleted.
	OpRemove Op = "remove"
	// OpRename signals an artifact being renamed away.
	OpRename Op = "rename"
)

// Event describes an observed change to an artifact in the store. Events are
// raised for changes made by any process, not just this one, which makes the
// watcher the cross-process counterpart to polling List.
type Event struct {
	RunID string
	Name  string
	Op    Op
}

// Watcher observes a Store's root directory and emits artifact change events.
// Consume Events and Errors until they are closed; both close after Close is
// called or the watch context is cancelled.
type Watcher struct {
	fw        *fsnotify.Watcher
	events    chan Event
	errs      chan error
	closeOnce sync.Once
	closeErr  error
}

// Watch starts observing the store for artifact changes. Existing run
// directories are registered up front; run directories created later are
// picked up automatically. Files written into a new run directory before its
// registration completes are reported through a rescan of that directory, so
// consumers may occasionally see a duplicate event for the same artifact.
// The watcher stops when ctx is cancelled or Close is called.
func (s *Store) Watch(ctx context.Context) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	if err := fw.Add(s.root); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch artifact root: %w", err)
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("scan artifact root: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if err := fw.Add(filepath.Join(s.root, e.Name())); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch run directory: %w", err)
		}
	}

	w := &Watcher{fw: fw, events: make(chan Event, 16), errs: make(chan error, 1)}
	go w.run(ctx, s.root)
	return w, nil
}

// Events returns the channel of observed artifact changes.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns the channel of watch errors.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher. Safe to call multiple times and concurrently with
// context cancellation.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() { w.closeErr = w.fw.Close() })
	return w.closeErr
}

func (w *Watcher) run(ctx context.Context, root string) {
	defer close(w.events)
	defer close(w.errs)
	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(ctx, root, ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default: // drop when the consumer lags; the watch itself continues
			}
		}
	}
}

// handle translates a raw filesystem notification into an artifact Event.
// Dot-prefixed names (metadata tree, renameio temp files) are ignored.
func (w *Watcher) handle(ctx context.Context, root string, ev fsnotify.Event) {
	rel, err := filepath.Rel(root, ev.Name)
	if err != nil {
		return
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, p := range parts {
		if strings.HasPrefix(p, ".") {
			return
		}
	}
	switch len(parts) {
	case 1:
		// Run-directory level: register newly created run directories so
		// their artifact events are observed too.
		if ev.Has(fsnotify.Create) {
			if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
				if w.fw.Add(ev.Name) == nil {
					w.rescan(ctx, parts[0], ev.Name)
				}
			}
		}
	case 2:
		op, ok := opFor(ev.Op)
		if !ok {
			return
		}
		select {
		case w.events <- Event{RunID: parts[0], Name: parts[1], Op: op}:
		case <-ctx.Done():
		}
	}
}

// rescan reports files already present in a just-registered run directory.
// Files landing between directory creation and registration would otherwise
// be lost; files racing the registration may instead be reported twice.
func (w *Watcher) rescan(ctx context.Context, runID, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		select {
		case w.events <- Event{RunID: runID, Name: e.Name(), Op: OpCreate}:
		case <-ctx.Done():
			return
		}
	}
}

func opFor(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	default:
		return "", false // chmod etc.
	}
}
