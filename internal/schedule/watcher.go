package schedule

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceWindow = 500 * time.Millisecond

// Watcher regenerates the graph when entity files change on disk. Change
// bursts (editor saves, git checkouts) are debounced into one run.
type Watcher struct {
	root    string
	runner  *Runner
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
	logger  *zap.Logger
}

// NewWatcher creates a filesystem trigger watching the memory root and
// its immediate type subdirectories.
func NewWatcher(root string, runner *Runner, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(root); err != nil {
		fw.Close()
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		fw.Close()
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := fw.Add(filepath.Join(root, e.Name())); err != nil {
				logger.Warn("watch subdirectory failed",
					zap.String("dir", e.Name()), zap.Error(err))
			}
		}
	}
	return &Watcher{
		root:    root,
		runner:  runner,
		watcher: fw,
		done:    make(chan struct{}),
		logger:  logger,
	}, nil
}

// Start launches the watch loop.
func (w *Watcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go func() {
		defer close(w.done)

		var pending *time.Timer
		fire := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				// New type directory: start watching it too.
				if ev.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						_ = w.watcher.Add(ev.Name)
					}
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(debounceWindow, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watch error", zap.Error(err))
			case <-fire:
				w.logger.Info("entity tree changed, regenerating")
				if _, err := w.runner.Run(ctx); err != nil {
					w.logger.Warn("watch-triggered regeneration failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop halts the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.watcher.Close()
	<-w.done
}
