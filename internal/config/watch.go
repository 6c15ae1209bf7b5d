package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// Watch watches the config file at path and applies log level changes
// to level without a restart. Fields that cannot change live (the
// listen address) are logged as requiring a restart. It blocks until
// the context is cancelled.
//
// The parent directory is watched rather than the file itself, since
// editors typically replace the file on save.
func Watch(ctx context.Context, path string, current *Config, level *slog.LevelVar) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	logger := slog.With("component", "config")
	logger.Info("watching config file for changes", "path", path)

	last := *current

	// Debounce timer: bursts of events collapse into one reload,
	// performed on this goroutine when the timer fires.
	reload := make(chan struct{}, 1)
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("config file changed", "op", event.Op)

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			cfg, err := Load(path)
			if err != nil {
				logger.Error("config reload failed, keeping previous settings", "error", err)
				continue
			}

			if cfg.LogLevel != last.LogLevel {
				lvl, err := cfg.Level()
				if err != nil {
					logger.Error("config reload failed, keeping previous settings", "error", err)
					continue
				}
				level.Set(lvl)
				logger.Info("log level updated", "level", cfg.LogLevel)
			}

			if cfg.ListenAddr != last.ListenAddr {
				logger.Warn("listen_addr changed, restart required to take effect",
					"current", last.ListenAddr,
					"new", cfg.ListenAddr)
			}

			last = *cfg

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher error", "error", err)
		}
	}
}
