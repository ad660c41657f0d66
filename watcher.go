package msgfmt

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// WatchStore is a Store that reloads its snapshot when bundle files
// change, so translators can edit messages without a process restart.
// Reads always see a complete snapshot: the swap is atomic under the lock
// and a failed reload keeps the previous snapshot in place.
type WatchStore struct {
	mu      sync.RWMutex
	loader  Loader
	current *StaticStore
	watcher *fsnotify.Watcher
	onError func(error)
	done    chan struct{}
}

var _ Store = &WatchStore{}

type WatchStoreOption func(*WatchStore)

// WithWatchErrorHandler receives reload and watcher errors; without it
// they are dropped.
func WithWatchErrorHandler(fn func(error)) WatchStoreOption {
	return func(s *WatchStore) {
		s.onError = fn
	}
}

// NewWatchStore loads an initial snapshot through the loader and watches
// the given files and directories for changes.
func NewWatchStore(loader Loader, paths []string, opts ...WatchStoreOption) (*WatchStore, error) {
	initial, err := NewStaticStoreFromLoader(loader)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	store := &WatchStore{
		loader:  loader,
		current: initial,
		watcher: watcher,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(store)
	}

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go store.watch()

	return store, nil
}

func (s *WatchStore) watch() {
	defer close(s.done)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !bundleFile(event.Name) {
				continue
			}
			s.reload()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.reportError(err)
		}
	}
}

func bundleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}

func (s *WatchStore) reload() {
	next, err := NewStaticStoreFromLoader(s.loader)
	if err != nil {
		s.reportError(err)
		return
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

func (s *WatchStore) reportError(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

// Get implements Store against the current snapshot.
func (s *WatchStore) Get(locale, key string) (string, bool) {
	s.mu.RLock()
	snapshot := s.current
	s.mu.RUnlock()
	return snapshot.Get(locale, key)
}

// Locales implements Store against the current snapshot.
func (s *WatchStore) Locales() []string {
	s.mu.RLock()
	snapshot := s.current
	s.mu.RUnlock()
	return snapshot.Locales()
}

// Close stops watching. The store keeps serving its last snapshot.
func (s *WatchStore) Close() error {
	err := s.watcher.Close()
	<-s.done
	return err
}
