package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"winterroom/internal/scene"
	"winterroom/internal/utils"
)

// DefaultDebounce batches the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a scene layout file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	layouts  chan scene.Layout
	cancel   context.CancelFunc
	done     chan struct{}
}

// Watch starts watching the layout file at path. The parent directory is
// watched so that editors which replace the file on save keep working.
// Layouts that fail to parse are logged and skipped.
func Watch(ctx context.Context, path string) (*Watcher, error) {
	return WatchWithDebounce(ctx, path, DefaultDebounce)
}

func WatchWithDebounce(ctx context.Context, path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		watcher:  fw,
		layouts:  make(chan scene.Layout, 1),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go w.run(ctx)

	utils.Info("Watching scene file: %s", abs)
	return w, nil
}

// Layouts delivers reloaded layouts. Only the newest pending layout is kept.
// The channel is closed once the watcher stops.
func (w *Watcher) Layouts() <-chan scene.Layout {
	return w.layouts
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.cancel()
	<-w.done
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.layouts)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			utils.Debug("Scene file event: %s", event)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			utils.Warn("Scene watcher error: %v", err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	layout, err := scene.LoadLayout(w.path)
	if err != nil {
		utils.Error("Failed to reload scene: %v", err)
		return
	}
	utils.Info("Scene reloaded: %d props", len(layout.Props))

	// Replace a layout the render loop has not picked up yet.
	select {
	case <-w.layouts:
	default:
	}
	w.layouts <- layout
}
