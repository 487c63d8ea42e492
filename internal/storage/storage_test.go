package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/storage"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bookmarks.json")

	remindAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store := model.NewStore()
	store.Add(model.Bookmark{
		ID:          "b1",
		URL:         "https://example.com",
		Title:       "Test",
		Description: "a site",
		Tags:        []string{"other"},
		Likes:       3,
		Dislikes:    1,
		Archived:    true,
		DateAdded:   time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC),
		RemindAt:    &remindAt,
		Analytics:   &model.Analytics{Visits: 5},
	})

	s := storage.NewJSONStorage(path)
	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("storage file was not created")
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(loaded.Bookmarks))
	}

	b := loaded.Bookmarks[0]
	if b.ID != "b1" || b.Likes != 3 || b.Dislikes != 1 || !b.Archived {
		t.Errorf("fields did not round-trip: %+v", b)
	}
	if !b.DateAdded.Equal(time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)) {
		t.Errorf("dateAdded did not re-hydrate: %v", b.DateAdded)
	}
	if b.RemindAt == nil || !b.RemindAt.Equal(remindAt) {
		t.Errorf("remindAt did not re-hydrate: %v", b.RemindAt)
	}
	if b.Analytics == nil || b.Analytics.Visits != 5 {
		t.Errorf("analytics did not round-trip: %+v", b.Analytics)
	}
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	store, err := storage.NewJSONStorage(path).Load()
	if err != nil {
		t.Fatalf("expected empty store for missing file, got error: %v", err)
	}
	if len(store.Bookmarks) != 0 {
		t.Errorf("expected empty store, got %d bookmarks", len(store.Bookmarks))
	}
}

func TestJSONStorage_NilSlicesInitialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	if err := os.WriteFile(path, []byte(`{"bookmarks":[{"id":"x","url":"https://a.com","title":"A","dateAdded":"2023-01-01T00:00:00Z"}]}`), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := storage.NewJSONStorage(path).Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if store.Bookmarks[0].Tags == nil {
		t.Error("expected tags slice initialized")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if config.EnhanceBatchSize != 5 {
		t.Errorf("expected default batch size 5, got %d", config.EnhanceBatchSize)
	}
	if config.ListenAddr == "" {
		t.Error("expected default listen address")
	}

	// File should have been created with defaults.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file created: %v", err)
	}
}

func TestLoadConfig_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"listenAddr":"0.0.0.0:9000"}`), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if config.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("expected explicit listen addr kept, got %q", config.ListenAddr)
	}
	if config.EnhanceBatchSize != 5 {
		t.Errorf("expected default batch size filled in, got %d", config.EnhanceBatchSize)
	}
}
