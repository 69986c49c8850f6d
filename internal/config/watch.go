package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch invalidates cached configs when YAML files in the source directories
// change. Directories that do not exist are skipped. onChange, if non-nil, is
// called with the game ID after invalidation. Watch blocks until ctx is done.
func (s *Source) Watch(ctx context.Context, logger *log.Logger, onChange func(game string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: cannot create watcher: %w", err)
	}
	defer w.Close()

	watched := 0
	for _, dir := range s.Dirs() {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("config: cannot watch %s: %w", dir, err)
		}
		watched++
	}
	if watched == 0 {
		<-ctx.Done()
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			game, ok := gameForEvent(ev)
			if !ok {
				continue
			}
			s.Invalidate(game)
			if logger != nil {
				logger.Info("config changed", "game", game, "op", ev.Op.String())
			}
			if onChange != nil {
				onChange(game)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.Warn("config watcher", "err", err)
			}
		}
	}
}

func gameForEvent(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	name := filepath.Base(ev.Name)
	if filepath.Ext(name) != ".yaml" {
		return "", false
	}
	return strings.TrimSuffix(name, ".yaml"), true
}
