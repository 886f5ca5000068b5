package server

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/InvictusNavarchus/ytsubsdown/internal/config"
	_ "modernc.org/sqlite"
)

const historyDBFile = "history.db"

// FetchRecord is one subtitle fetch served by the API.
type FetchRecord struct {
	ID        string `json:"id"`
	VideoID   string `json:"video_id"`
	Title     string `json:"title"`
	TrackName string `json:"track_name"`
	LangCode  string `json:"lang_code"`
	Status    string `json:"status"`     // "ok" or "failed"
	FetchedAt int64  `json:"fetched_at"` // Unix timestamp
	Error     string `json:"error,omitempty"`
}

// HistoryDB manages the SQLite database of served subtitle fetches.
type HistoryDB struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewHistoryDB opens (and initializes) the history database in the
// config directory.
func NewHistoryDB() (*HistoryDB, error) {
	configDir, err := config.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	return OpenHistoryDB(filepath.Join(configDir, historyDBFile))
}

// OpenHistoryDB opens a history database at an explicit path.
func OpenHistoryDB(path string) (*HistoryDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS fetch_history (
			id TEXT PRIMARY KEY,
			video_id TEXT NOT NULL,
			title TEXT,
			track_name TEXT,
			lang_code TEXT,
			status TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			error_message TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_fetched_at ON fetch_history(fetched_at DESC);
		CREATE INDEX IF NOT EXISTS idx_fetch_status ON fetch_history(status);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}

	return &HistoryDB{db: db}, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// RecordFetch saves one served subtitle fetch.
func (h *HistoryDB) RecordFetch(rec FetchRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rec.FetchedAt == 0 {
		rec.FetchedAt = time.Now().Unix()
	}

	_, err := h.db.Exec(`
		INSERT OR REPLACE INTO fetch_history
		(id, video_id, title, track_name, lang_code, status, fetched_at, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.VideoID,
		rec.Title,
		rec.TrackName,
		rec.LangCode,
		rec.Status,
		rec.FetchedAt,
		rec.Error,
	)

	return err
}

// Recent returns fetch history with pagination, newest first.
func (h *HistoryDB) Recent(limit, offset int) ([]FetchRecord, int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var total int
	err := h.db.QueryRow("SELECT COUNT(*) FROM fetch_history").Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count history: %w", err)
	}

	rows, err := h.db.Query(`
		SELECT id, video_id, title, track_name, lang_code, status, fetched_at, error_message
		FROM fetch_history
		ORDER BY fetched_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	records := make([]FetchRecord, 0)
	for rows.Next() {
		var r FetchRecord
		var errorMsg sql.NullString

		err := rows.Scan(
			&r.ID,
			&r.VideoID,
			&r.Title,
			&r.TrackName,
			&r.LangCode,
			&r.Status,
			&r.FetchedAt,
			&errorMsg,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan history row: %w", err)
		}

		if errorMsg.Valid {
			r.Error = errorMsg.String
		}
		records = append(records, r)
	}

	return records, total, nil
}

// Stats returns fetch counters.
func (h *HistoryDB) Stats() (ok int, failed int, err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	err = h.db.QueryRow(`
		SELECT
			COUNT(CASE WHEN status = 'ok' THEN 1 END),
			COUNT(CASE WHEN status = 'failed' THEN 1 END)
		FROM fetch_history
	`).Scan(&ok, &failed)

	return
}

// Clear deletes all history records.
func (h *HistoryDB) Clear() (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.db.Exec("DELETE FROM fetch_history")
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
