package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"imagepicker/internal/eventbus"
)

// Watcher reloads a config file when it changes on disk and publishes a
// ConfigChangedEvent carrying the reloaded preselection
type Watcher struct {
	svc  ConfigService
	bus  eventbus.EventBus
	path string

	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher for the config file at path
func NewWatcher(svc ConfigService, bus eventbus.EventBus, path string) *Watcher {
	return &Watcher{
		svc:  svc,
		bus:  bus,
		path: filepath.Clean(path),
	}
}

// Start begins watching until ctx is done or Close is called. The parent
// directory is watched so editors that replace the file are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.watcher = fw

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Close stops the watcher and waits for its goroutine
func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.svc.LoadFromPath(w.path)
	if err != nil {
		// Partial writes fail to parse; the next write event retries
		log.Printf("Failed to reload config %s: %v", w.path, err)
		return
	}
	w.bus.Publish(eventbus.ConfigChangedEvent{
		Path:        w.path,
		Preselected: cfg.Preselected,
	})
}
