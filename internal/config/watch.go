package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/backdrop"
)

// WatchTuning calls apply with the new backdrop config each time the tuning
// file at path is written. Invalid edits are logged and skipped. It blocks
// until ctx is done.
func WatchTuning(ctx context.Context, path string, apply func(backdrop.Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// watch the directory so editors that replace the file are seen
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cfg, err := BackdropConfig(path)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("tuning reload rejected")
				continue
			}
			log.Info().Str("path", path).Msg("backdrop tuning reloaded")
			apply(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("tuning watcher")
		}
	}
}
