// Package storage provides SQLite-based persistence for sprite documents.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-sprite/internal/editor"
)

// ErrNotFound is returned when a sprite name has no saved document.
var ErrNotFound = errors.New("storage: sprite not found")

// Store manages the SQLite database connection for sprite persistence.
type Store struct {
	db *sql.DB
}

// SpriteInfo summarizes a saved sprite without loading its pixels.
type SpriteInfo struct {
	ID        int64
	Name      string
	Width     int
	Height    int
	FPS       int
	Frames    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// The SSH server shares one store between sessions; SQLite allows a
	// single writer, so keep one connection and let database/sql queue.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS sprites (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			fps INTEGER NOT NULL DEFAULT 8,
			palette TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS frames (
			sprite_id INTEGER NOT NULL REFERENCES sprites(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			pixels BLOB NOT NULL,
			PRIMARY KEY (sprite_id, position)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveDocument stores doc under name, replacing any previous frames.
// The sprite row keeps its id and creation time across saves.
func (s *Store) SaveDocument(name string, doc editor.Document) error {
	if name == "" {
		return errors.New("storage: sprite name is empty")
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("storage: cannot save %q: %w", name, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sprites (name, width, height, fps, palette)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   width = excluded.width,
		   height = excluded.height,
		   fps = excluded.fps,
		   palette = excluded.palette,
		   updated_at = CURRENT_TIMESTAMP`,
		name, doc.Width, doc.Height, doc.FPS, strings.Join(doc.Palette, ","),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save sprite: %w", err)
	}

	var id int64
	if err := tx.QueryRow("SELECT id FROM sprites WHERE name = ?", name).Scan(&id); err != nil {
		return fmt.Errorf("storage: cannot get sprite ID: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM frames WHERE sprite_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot clear frames: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO frames (sprite_id, position, pixels) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for i, pix := range doc.Frames {
		if _, err := stmt.Exec(id, i, pix); err != nil {
			return fmt.Errorf("storage: cannot save frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit sprite: %w", err)
	}
	return nil
}

// LoadDocument reads the document saved under name.
// Returns ErrNotFound if no such sprite exists.
func (s *Store) LoadDocument(name string) (editor.Document, error) {
	var doc editor.Document
	var id int64
	var palette string

	err := s.db.QueryRow(
		"SELECT id, width, height, fps, palette FROM sprites WHERE name = ?",
		name,
	).Scan(&id, &doc.Width, &doc.Height, &doc.FPS, &palette)
	if errors.Is(err, sql.ErrNoRows) {
		return doc, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return doc, fmt.Errorf("storage: cannot query sprite: %w", err)
	}
	if palette != "" {
		doc.Palette = strings.Split(palette, ",")
	}

	rows, err := s.db.Query(
		"SELECT pixels FROM frames WHERE sprite_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return doc, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pix []byte
		if err := rows.Scan(&pix); err != nil {
			return doc, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		doc.Frames = append(doc.Frames, pix)
	}
	if err := rows.Err(); err != nil {
		return doc, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return doc, nil
}

// ListSprites returns every saved sprite ordered by most recent update.
func (s *Store) ListSprites() ([]SpriteInfo, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.name, s.width, s.height, s.fps, COUNT(f.position), s.created_at, s.updated_at
		 FROM sprites s
		 LEFT JOIN frames f ON f.sprite_id = s.id
		 GROUP BY s.id
		 ORDER BY s.updated_at DESC, s.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sprites: %w", err)
	}
	defer rows.Close()

	var sprites []SpriteInfo
	for rows.Next() {
		var info SpriteInfo
		var createdAt, updatedAt any
		if err := rows.Scan(&info.ID, &info.Name, &info.Width, &info.Height, &info.FPS,
			&info.Frames, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		info.UpdatedAt = parseTime(updatedAt)
		sprites = append(sprites, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sprites, nil
}

// DeleteSprite removes a sprite and its frames.
// Returns ErrNotFound if no such sprite exists.
func (s *Store) DeleteSprite(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM frames WHERE sprite_id = (SELECT id FROM sprites WHERE name = ?)",
		name,
	); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}

	res, err := tx.Exec("DELETE FROM sprites WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete sprite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// Exists reports whether a sprite with the given name is saved.
func (s *Store) Exists(name string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sprites WHERE name = ?", name).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot query sprite: %w", err)
	}
	return n > 0, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Ensure Store implements DocumentStore
var _ editor.DocumentStore = (*Store)(nil)
