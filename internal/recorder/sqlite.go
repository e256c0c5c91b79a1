package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/model"
)

// SQLiteRecorder persists exchanges to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external tools can read the transcript while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS exchanges (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			query          TEXT,
			ticker         TEXT,
			quote_status   TEXT,
			rec_status     TEXT,
			article_status TEXT,
			article_count  INTEGER,
			answer         TEXT,
			elapsed_ms     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exchanges_ts ON exchanges(timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordExchange appends one completed query/answer round.
func (r *SQLiteRecorder) RecordExchange(ex *model.Exchange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(
		`INSERT INTO exchanges
		 (timestamp, query, ticker, quote_status, rec_status, article_status, article_count, answer, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ex.Timestamp.Unix(),
		ex.Query,
		ex.Ticker,
		ex.QuoteStatus.String(),
		ex.RecStatus.String(),
		ex.ArticleStatus.String(),
		ex.ArticleCount,
		ex.Answer,
		ex.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert exchange: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
