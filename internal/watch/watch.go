// Package watch re-runs a build whenever watched theme files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/delvui/delvui/internal/logger"
)

// DefaultDebounce is the quiet period that closes a burst of events.
const DefaultDebounce = 200 * time.Millisecond

// ErrNothingToWatch is returned when none of the paths exist.
var ErrNothingToWatch = errors.New("no existing paths to watch")

// BuildFunc performs one build. Errors are logged and watching continues.
type BuildFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	// Paths are files or directories. Directories are watched recursively.
	Paths    []string
	Debounce time.Duration
	Logger   *logger.Logger
}

// Watcher rebuilds after bursts of filesystem events.
type Watcher struct {
	paths    []string
	debounce time.Duration
	build    BuildFunc
	log      *logger.Logger

	// files maps a watched file to true; dirs holds recursively watched roots.
	files map[string]bool
	dirs  []string
}

// New creates a watcher that calls build.
func New(build BuildFunc, opts Options) *Watcher {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{
		paths:    opts.Paths,
		debounce: debounce,
		build:    build,
		log:      log,
		files:    make(map[string]bool),
	}
}

// Run builds once, then again after every burst of changes, until ctx is
// cancelled. Cancellation is not an error.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.register(fw); err != nil {
		return err
	}

	w.rebuild(ctx, "initial build")

	var fire <-chan time.Time
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watch stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) && w.insideDir(ev.Name) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(fw, ev.Name); err != nil {
						w.log.Error(err, "failed to watch new directory")
					}
				}
			}

			w.log.WithFields(map[string]any{"path": ev.Name, "op": ev.Op.String()}).Debug("change detected")
			timer.Reset(w.debounce)
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error(err, "watch error")

		case <-fire:
			fire = nil
			w.rebuild(ctx, "theme rebuilt")
		}
	}
}

func (w *Watcher) register(fw *fsnotify.Watcher) error {
	watched := 0
	for _, path := range w.paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}

		info, err := os.Stat(abs)
		if errors.Is(err, fs.ErrNotExist) {
			w.log.WithFields(map[string]any{"path": path}).Debug("skipping missing path")
			continue
		}
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			if err := addTree(fw, abs); err != nil {
				return err
			}
			w.dirs = append(w.dirs, abs)
		} else {
			// Editors often replace files by rename, so the parent directory is
			// watched and events are filtered by name.
			if err := fw.Add(filepath.Dir(abs)); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			w.files[abs] = true
		}
		watched++
	}

	if watched == 0 {
		return ErrNothingToWatch
	}
	return nil
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[name] || w.insideDir(name)
}

func (w *Watcher) insideDir(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.dirs {
		rel, err := filepath.Rel(dir, abs)
		if err == nil && rel != ".." && !startsWithParent(rel) {
			return true
		}
	}
	return false
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}

func (w *Watcher) rebuild(ctx context.Context, msg string) {
	start := time.Now()
	if err := w.build(ctx); err != nil {
		w.log.Error(err, "rebuild failed")
		return
	}
	w.log.WithFields(map[string]any{"duration": time.Since(start).String()}).Info(msg)
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
