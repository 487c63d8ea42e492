// Package storage persists the bookmark collection. Two backends:
// a single JSON file and a SQLite database.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/nlohse/stash/internal/model"
)

// Storage defines the interface for persisting bookmarks.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
}

// JSONStorage implements Storage using a single JSON file. This is the
// collection serialized under one key; time fields re-hydrate from
// their RFC 3339 form on load.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the store from the JSON file.
// Returns an empty store if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, err
	}

	var store model.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, err
	}

	if store.Bookmarks == nil {
		store.Bookmarks = []model.Bookmark{}
	}
	for i := range store.Bookmarks {
		if store.Bookmarks[i].Tags == nil {
			store.Bookmarks[i].Tags = []string{}
		}
	}

	return &store, nil
}

// Save writes the store to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// DefaultJSONPath returns the default JSON store path:
// ~/.config/stash/bookmarks.json
func DefaultJSONPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "stash", "bookmarks.json"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenStorage() (Storage, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath)
	}

	jsonPath, err := DefaultJSONPath()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(jsonPath), nil
}
