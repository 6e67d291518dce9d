package fingerprint

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// CatalogWatcher watches an XML catalog file and rebuilds the database when
// the file changes. Rapid successive writes are debounced into a single
// reload.
//
// The watcher never hands out a partially built database: the catalog is
// loaded fully, and only on success is the OnReload callback invoked with
// the new immutable Database. Callers typically swap in a fresh Matcher
// inside the callback; existing matchers keep serving the old database.
type CatalogWatcher struct {
	path          string
	watcher       *fsnotify.Watcher
	debounceDelay time.Duration
	logger        zerolog.Logger

	// OnReload receives each successfully reloaded database.
	OnReload func(*Database)

	mu            sync.Mutex
	debounceTimer *time.Timer
}

// NewCatalogWatcher creates a watcher for the catalog file at path.
func NewCatalogWatcher(path string, logger zerolog.Logger) (*CatalogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &CatalogWatcher{
		path:          path,
		watcher:       watcher,
		debounceDelay: 100 * time.Millisecond,
		logger:        logger.With().Str("component", "fingerprint.watcher").Logger(),
	}, nil
}

// Start begins watching the catalog file and blocks until ctx is canceled.
// Run it in its own goroutine:
//
//	go watcher.Start(ctx)
//
// The parent directory is watched rather than the file itself so that
// editors which replace the file (rename-over-write) keep triggering events.
func (w *CatalogWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.logger.Debug().Str("path", w.path).Msg("watching fingerprint catalog")

	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("catalog watcher error")
		}
	}
}

func (w *CatalogWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.reload)
}

func (w *CatalogWatcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

func (w *CatalogWatcher) reload() {
	db, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", w.path).Msg("catalog reload failed, keeping previous database")
		return
	}

	w.logger.Info().Str("path", w.path).Int("fingerprints", db.Len()).Msg("catalog reloaded")
	if w.OnReload != nil {
		w.OnReload(db)
	}
}
