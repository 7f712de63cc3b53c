package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Store holds the current options and reloads them when the backing file
// changes. A zero-value Store is not usable; create one with NewStore.
//
// Store is safe for concurrent use. Options returns a copy, which makes
// it suitable as the options getter a completion Provider takes.
type Store struct {
	mu   sync.RWMutex
	opts Options

	logger *zap.SugaredLogger

	watchMu sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
	closed  bool
}

// NewStore creates a store seeded with the given options.
func NewStore(opts Options, logger *zap.SugaredLogger) *Store {
	return &Store{opts: opts, logger: logger}
}

// Options returns the current options.
func (s *Store) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// Set replaces the current options.
func (s *Store) Set(opts Options) {
	s.mu.Lock()
	s.opts = opts
	s.mu.Unlock()
}

// Watch reloads options from path whenever the file is written or
// recreated. Reload failures keep the previous options: a broken edit of
// the options file must not take completion down. Watch returns after
// the watcher is installed; call Close to stop it.
func (s *Store) Watch(path string) error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if s.watcher != nil {
		return nil // Already watching
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return err
	}

	s.watcher = w
	s.done = make(chan struct{})

	go s.watchLoop(path)
	return nil
}

func (s *Store) watchLoop(path string) {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			opts, err := Load(path)
			if err != nil {
				if s.logger != nil {
					s.logger.Warnw("options reload failed", "path", path, "error", err)
				}
				continue
			}
			s.Set(opts)
			if s.logger != nil {
				s.logger.Infow("options reloaded", "path", path)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			if s.logger != nil {
				s.logger.Warnw("options watcher error", "path", path, "error", err)
			}
		}
	}
}

// Close stops watching. It is safe to call multiple times.
func (s *Store) Close() error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.watcher != nil {
		close(s.done)
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}
