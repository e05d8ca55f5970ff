package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and hands the new
// config to OnChange. Invalid edits are logged and ignored so a half-saved
// file never replaces a working config.
type Watcher struct {
	Path     string
	OnChange func(*UserConfig)
	Debounce time.Duration
	Logger   *slog.Logger
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, onChange func(*UserConfig)) *Watcher {
	return &Watcher{
		Path:     path,
		OnChange: onChange,
		Debounce: 150 * time.Millisecond,
		Logger:   slog.Default(),
	}
}

func (w *Watcher) String() string {
	return "config-watcher"
}

// Serve watches the config directory until ctx is cancelled. The directory is
// watched rather than the file because editors replace files on save.
func (w *Watcher) Serve(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.Path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.Path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("config watcher error", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.Path)
	if err != nil {
		w.Logger.Warn("ignoring invalid config", "path", w.Path, "err", err)
		return
	}
	w.Logger.Info("config reloaded", "path", w.Path)
	if w.OnChange != nil {
		w.OnChange(cfg)
	}
}
