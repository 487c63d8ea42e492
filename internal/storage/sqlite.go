package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nlohse/stash/internal/model"
)

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh.
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			favicon TEXT NOT NULL DEFAULT '',
			screenshot TEXT NOT NULL DEFAULT '',
			likes INTEGER NOT NULL DEFAULT 0,
			dislikes INTEGER NOT NULL DEFAULT 0,
			archived INTEGER NOT NULL DEFAULT 0,
			date_added TEXT NOT NULL,
			remind_at TEXT,
			last_viewed_at TEXT,
			visits INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_date_added ON bookmarks(date_added);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_archived ON bookmarks(archived) WHERE archived = 1;

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the store from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	store := model.NewStore()

	rows, err := s.db.Query(`
		SELECT id, url, title, description, tags, favicon, screenshot,
		       likes, dislikes, archived, date_added, remind_at, last_viewed_at, visits
		FROM bookmarks
		ORDER BY date_added
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bookmark
		var tagsJSON string
		var archived, visits int
		var dateAddedStr string
		var remindAtStr, lastViewedAtStr sql.NullString

		if err := rows.Scan(
			&b.ID, &b.URL, &b.Title, &b.Description, &tagsJSON,
			&b.Favicon, &b.Screenshot, &b.Likes, &b.Dislikes,
			&archived, &dateAddedStr, &remindAtStr, &lastViewedAtStr, &visits,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(tagsJSON), &b.Tags); err != nil {
			b.Tags = []string{}
		}
		b.Archived = archived == 1
		b.DateAdded, _ = time.Parse(time.RFC3339, dateAddedStr)
		b.RemindAt = parseNullTime(remindAtStr)
		b.LastViewedAt = parseNullTime(lastViewedAtStr)
		if visits > 0 {
			b.Analytics = &model.Analytics{Visits: visits}
		}

		store.Bookmarks = append(store.Bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// Save writes the store to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(store *model.Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO bookmarks (
			id, url, title, description, tags, favicon, screenshot,
			likes, dislikes, archived, date_added, remind_at, last_viewed_at, visits
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range store.Bookmarks {
		tagsJSON, _ := json.Marshal(b.Tags)
		if b.Tags == nil {
			tagsJSON = []byte("[]")
		}

		archived := 0
		if b.Archived {
			archived = 1
		}
		visits := 0
		if b.Analytics != nil {
			visits = b.Analytics.Visits
		}

		if _, err := stmt.Exec(
			b.ID, b.URL, b.Title, b.Description, string(tagsJSON),
			b.Favicon, b.Screenshot, b.Likes, b.Dislikes, archived,
			b.DateAdded.Format(time.RFC3339),
			formatNullTime(b.RemindAt), formatNullTime(b.LastViewedAt),
			visits,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func parseNullTime(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil
	}
	return &t
}

func formatNullTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

// DefaultSQLitePath returns the default SQLite database path:
// ~/.config/stash/bookmarks.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "stash", "bookmarks.db"), nil
}
