package remote

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jetkvm/remote/internal/activity"
	"github.com/rs/zerolog"
)

const activitiesReloadDelay = 100 * time.Millisecond

// watchActivities reloads path whenever it is written and sends the new
// table on out. A file that fails to parse is logged and the running table
// is kept.
func watchActivities(ctx context.Context, path string, out chan *activity.Table, logger *zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// editors replace files instead of writing them, so watch the directory
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	l := logger.With().Str("service", "activities_watcher").Str("path", path).Logger()
	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(activitiesReloadDelay, func() {
					reloadActivities(path, out, &l)
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.Warn().Err(err).Msg("watcher error")
			}
		}
	}()
	return nil
}

func reloadActivities(path string, out chan *activity.Table, l *zerolog.Logger) {
	table, err := activity.LoadFile(path)
	if err != nil {
		l.Warn().Err(err).Msg("keeping current activities")
		return
	}

	// only the newest table matters
	select {
	case <-out:
	default:
	}
	select {
	case out <- table:
		l.Info().Strs("activities", table.Names()).Msg("Reloaded activities")
	default:
	}
}
