// Package watch re-runs a callback when files under a directory tree change.
package watch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before fn runs.
const DefaultDebounce = 300 * time.Millisecond

// Options configures Run.
type Options struct {
	Root     string
	Debounce time.Duration
	// Ignore reports whether an event path should not trigger a run.
	Ignore func(path string) bool
	Logger *slog.Logger
}

// Run watches Root recursively and calls fn once immediately and again after
// every burst of changes. It returns when ctx is done. Runs never overlap.
func Run(ctx context.Context, opts Options, fn func(context.Context)) error {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addRecursive(w, opts.Root); err != nil {
		return err
	}

	var mu sync.Mutex
	run := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		fn(ctx)
	}
	run()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if skipPath(opts.Root, ev.Name) || (opts.Ignore != nil && opts.Ignore(ev.Name)) {
				continue
			}
			// 新しいディレクトリも監視対象に加える
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addRecursive(w, ev.Name); err != nil {
						logger.Warn("watch add failed", "path", ev.Name, "err", err)
					}
				}
			}
			logger.Debug("change", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(opts.Debounce, run)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

func skipDir(name string) bool {
	switch name {
	case ".git", "node_modules", "target", "vendor":
		return true
	}
	return false
}

// skipPath reports whether p lies in a directory that is never watched,
// judged relative to root so the root itself may sit under such a name.
func skipPath(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		rel = p
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if skipDir(part) {
			return true
		}
	}
	return false
}
