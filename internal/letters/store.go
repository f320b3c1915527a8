// Package letters owns the neighbor-letter workflow: the per-auction
// template store, default letter generation and the processed-address
// files an upload leaves behind.
package letters

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrTemplateNotFound is returned when no template was saved for an
// auction code yet.
var ErrTemplateNotFound = errors.New("no letter template found for auction")

// Store persists letter templates keyed by auction code. Last write
// wins; the database provides the only concurrency control.
type Store struct {
	db *sql.DB
}

// OpenStore creates or opens the template database under dataDir.
func OpenStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "letters.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS letter_templates (
		auction_code TEXT PRIMARY KEY,
		content      TEXT NOT NULL,
		updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored template for an auction code.
func (s *Store) Get(auctionCode string) (string, error) {
	var content string
	err := s.db.QueryRow(
		"SELECT content FROM letter_templates WHERE auction_code = ?", auctionCode,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrTemplateNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read letter template: %w", err)
	}
	return content, nil
}

// Put saves or overwrites the template for an auction code.
func (s *Store) Put(auctionCode, content string) error {
	_, err := s.db.Exec(`
		INSERT INTO letter_templates (auction_code, content, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(auction_code) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at`,
		auctionCode, content)
	if err != nil {
		return fmt.Errorf("failed to save letter template: %w", err)
	}
	return nil
}
