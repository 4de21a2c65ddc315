// Package watch triggers rescans when source or specification files change.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/RouteLens/routelens/internal/logger"
	"github.com/RouteLens/routelens/internal/source"
)

// DefaultDebounce batches change bursts (editor saves, branch switches) into
// a single rescan.
const DefaultDebounce = 300 * time.Millisecond

// skipDirs mirrors the walker's exclusions; watching build output would make
// every rescan trigger itself.
var skipDirs = map[string]struct{}{
	".git":         {},
	".idea":        {},
	"node_modules": {},
	"target":       {},
	"build":        {},
	"out":          {},
}

// Watcher reruns a callback when relevant files under a root change.
type Watcher struct {
	root     string
	debounce time.Duration
	log      *logger.Logger
	onChange func()
}

// New creates a watcher over root invoking onChange after each debounced
// batch of relevant events.
func New(root string, debounce time.Duration, log *logger.Logger, onChange func()) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:     root,
		debounce: debounce,
		log:      log.WithComponent("watch"),
		onChange: onChange,
	}
}

// Run watches until stop is closed. The initial callback invocation is the
// caller's responsibility; Run only reacts to changes.
func (w *Watcher) Run(stop <-chan struct{}) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init: %w", err)
	}
	defer fw.Close()

	if err := addRecursive(fw, w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}

	var timer *time.Timer
	for {
		select {
		case <-stop:
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev.Name) {
				continue
			}
			// New directories must be picked up for future events.
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addRecursive(fw, ev.Name)
				}
			}
			w.log.WithFile(ev.Name).Debug("Change detected")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.onChange)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("Watch error")
		}
	}
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if _, skip := skipDirs[info.Name()]; skip {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

// relevant reports whether a changed path can affect a scan: source files,
// candidate specification documents, or directories.
func relevant(path string) bool {
	if source.IsSourceFile(path) {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	case "":
		// Directory events arrive without extension. Extensionless files
		// (LICENSE, Makefile) do not affect a scan; routes files were already
		// accepted above.
		info, err := os.Stat(path)
		return err == nil && info.IsDir()
	default:
		return false
	}
}
