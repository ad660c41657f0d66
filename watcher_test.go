package msgfmt

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForMessage(t *testing.T, store Store, locale, key, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if got, ok := store.Get(locale, key); ok && got == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	got, ok := store.Get(locale, key)
	t.Fatalf("store never served %q, last value %q ok=%v", want, got, ok)
}

func TestWatchStoreReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	if err := os.WriteFile(path, []byte(`{"en": {"greet": "hi"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := NewWatchStore(NewFileLoader(path), []string{dir})
	if err != nil {
		t.Fatalf("NewWatchStore: %v", err)
	}
	defer store.Close()

	if got, ok := store.Get("en", "greet"); !ok || got != "hi" {
		t.Fatalf("initial Get = %q, ok=%v", got, ok)
	}

	if err := os.WriteFile(path, []byte(`{"en": {"greet": "hello again"}}`), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	waitForMessage(t, store, "en", "greet", "hello again")
}

func TestWatchStoreKeepsSnapshotOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	if err := os.WriteFile(path, []byte(`{"en": {"greet": "hi"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	errs := make(chan error, 10)
	store, err := NewWatchStore(NewFileLoader(path), []string{dir},
		WithWatchErrorHandler(func(err error) { errs <- err }))
	if err != nil {
		t.Fatalf("NewWatchStore: %v", err)
	}
	defer store.Close()

	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("reload error never reported")
	}

	if got, ok := store.Get("en", "greet"); !ok || got != "hi" {
		t.Fatalf("snapshot lost after failed reload: %q, ok=%v", got, ok)
	}
}

func TestWatchStoreIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	if err := os.WriteFile(path, []byte(`{"en": {"greet": "hi"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := NewWatchStore(NewFileLoader(path), []string{dir})
	if err != nil {
		t.Fatalf("NewWatchStore: %v", err)
	}
	defer store.Close()

	// An unrelated file changing must not disturb the snapshot.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o644); err != nil {
		t.Fatalf("write unrelated: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if got, ok := store.Get("en", "greet"); !ok || got != "hi" {
		t.Fatalf("Get = %q, ok=%v", got, ok)
	}
}

func TestWatchStoreClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	if err := os.WriteFile(path, []byte(`{"en": {"greet": "hi"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := NewWatchStore(NewFileLoader(path), []string{dir})
	if err != nil {
		t.Fatalf("NewWatchStore: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The last snapshot keeps serving after Close.
	if got, ok := store.Get("en", "greet"); !ok || got != "hi" {
		t.Fatalf("Get after Close = %q, ok=%v", got, ok)
	}
}
