// Package scans tracks QR-code label scans so the daily report can
// tell auction managers which lots are drawing attention.
package scans

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store records label scans and the watermark of the last report sent
// per auction.
type Store struct {
	db *sql.DB
}

func OpenStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "qr_tracking.db"))
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
	CREATE TABLE IF NOT EXISTS qr_scans (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		auction_code TEXT NOT NULL,
		lot_number   INTEGER NOT NULL,
		scan_date    TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_qr_scans_code_date ON qr_scans (auction_code, scan_date);

	CREATE TABLE IF NOT EXISTS last_reports (
		auction_code    TEXT PRIMARY KEY,
		last_scan_count INTEGER NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one scan event.
func (s *Store) Record(auctionCode string, lot int, at time.Time) error {
	_, err := s.db.Exec(
		"INSERT INTO qr_scans (auction_code, lot_number, scan_date) VALUES (?, ?, ?)",
		auctionCode, lot, at.UTC())
	if err != nil {
		return fmt.Errorf("failed to record scan: %w", err)
	}
	return nil
}

// ReportEntry is one line of the daily report.
type ReportEntry struct {
	AuctionCode string
	NewScans    int
}

// DailyReport returns, per auction, the number of scans since `since`
// that were not covered by the previous report, and advances the
// per-auction watermark. Auctions with no new scans are omitted.
func (s *Store) DailyReport(since time.Time) ([]ReportEntry, error) {
	rows, err := s.db.Query(`
		SELECT auction_code, COUNT(*) AS scan_count
		FROM qr_scans
		WHERE scan_date >= ?
		GROUP BY auction_code`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query scan counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var code string
		var count int
		if err := rows.Scan(&code, &count); err != nil {
			return nil, err
		}
		counts[code] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var entries []ReportEntry
	for code, count := range counts {
		var last int
		err := s.db.QueryRow(
			"SELECT last_scan_count FROM last_reports WHERE auction_code = ?", code,
		).Scan(&last)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}

		if count <= last {
			continue
		}
		entries = append(entries, ReportEntry{AuctionCode: code, NewScans: count - last})

		_, err = s.db.Exec(`
			INSERT INTO last_reports (auction_code, last_scan_count) VALUES (?, ?)
			ON CONFLICT(auction_code) DO UPDATE SET last_scan_count = excluded.last_scan_count`,
			code, count)
		if err != nil {
			return nil, fmt.Errorf("failed to update report watermark: %w", err)
		}
	}
	return entries, nil
}
