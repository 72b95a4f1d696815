package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hablalab/speech-coach/pkg/config"
)

func testStore(t *testing.T) *TTSFileStore {
	t.Helper()
	store, err := NewTTSFileStore(config.TTSConfig{
		Dir:           t.TempDir(),
		FileTTL:       time.Hour,
		SweepInterval: time.Minute,
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestSaveAndPath(t *testing.T) {
	store := testStore(t)

	name, err := store.Save([]byte("mp3 bytes"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(name, "tts_") || !strings.HasSuffix(name, ".mp3") {
		t.Fatalf("unexpected filename shape: %q", name)
	}

	path, err := store.Path(name)
	if err != nil {
		t.Fatalf("path lookup failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "mp3 bytes" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestPathRejectsInvalidNames(t *testing.T) {
	store := testStore(t)

	for _, name := range []string{
		"../../etc/passwd",
		"tts_not-a-uuid.mp3",
		"tts_0ae310callback.mp3",
		"notes.txt",
		"",
		"tts_.mp3",
	} {
		if _, err := store.Path(name); err == nil {
			t.Fatalf("filename %q should be rejected", name)
		}
	}
}

func TestPathMissingFile(t *testing.T) {
	store := testStore(t)
	if _, err := store.Path("tts_00000000-0000-0000-0000-000000000000.mp3"); err == nil {
		t.Fatalf("nonexistent file should not resolve")
	}
}

func TestRemoveExpired(t *testing.T) {
	store := testStore(t)

	fresh, err := store.Save([]byte("fresh"))
	if err != nil {
		t.Fatal(err)
	}
	stale, err := store.Save([]byte("stale"))
	if err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(filepath.Join(store.dir, stale), old, old); err != nil {
		t.Fatal(err)
	}

	store.removeExpired()

	if _, err := store.Path(fresh); err != nil {
		t.Fatalf("fresh file should survive the sweep: %v", err)
	}
	if _, err := store.Path(stale); err == nil {
		t.Fatalf("stale file should be removed")
	}
}

func TestPurge(t *testing.T) {
	store := testStore(t)
	name, err := store.Save([]byte("bytes"))
	if err != nil {
		t.Fatal(err)
	}

	store.Purge()

	if _, err := store.Path(name); err == nil {
		t.Fatalf("purge should remove all stored audio")
	}
}
