// Package storage provides the SQLite word lexicon.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/typefall/internal/wordbank"
)

// Store manages the SQLite database connection for the lexicon.
type Store struct {
	db *sql.DB
}

// WordEntry is a single lexicon row.
type WordEntry struct {
	Word      string
	Length    int
	Tier      wordbank.Tier
	Source    string
	CreatedAt time.Time
}

// Stats summarizes the lexicon contents.
type Stats struct {
	Total      int
	ByTier     map[wordbank.Tier]int
	ByLength   map[int]int
	LastImport time.Time
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
		CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			word TEXT NOT NULL UNIQUE,
			length INTEGER NOT NULL,
			tier INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_words_length ON words(length);
		CREATE INDEX IF NOT EXISTS idx_words_tier ON words(tier);
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

// ImportWords normalizes words and inserts the ones not already present.
// Words that normalize to nothing are skipped. Returns how many were added.
func (s *Store) ImportWords(ctx context.Context, words []string, tier wordbank.Tier, source string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO words (word, length, tier, source) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare import: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range words {
		w = wordbank.Normalize(w)
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, w, len(w), int(tier), source)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot import %q: %w", w, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit import: %w", err)
	}
	return added, nil
}

// ImportReader imports one word per line. Blank lines and lines starting
// with # are skipped.
func (s *Store) ImportReader(ctx context.Context, r io.Reader, tier wordbank.Tier, source string) (int, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("storage: cannot read word list: %w", err)
	}
	return s.ImportWords(ctx, words, tier, source)
}

// RandomWords returns up to count random words with length in
// [minLen, maxLen]. A maxLen of 0 means no upper bound.
func (s *Store) RandomWords(ctx context.Context, count, minLen, maxLen int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	if maxLen <= 0 {
		maxLen = 1 << 16
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM words
		 WHERE length BETWEEN ? AND ?
		 ORDER BY RANDOM()
		 LIMIT ?`,
		minLen, maxLen, count,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return words, nil
}

// WordsByTier lists the words of a tier ordered alphabetically.
func (s *Store) WordsByTier(ctx context.Context, tier wordbank.Tier) ([]WordEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, length, tier, source, created_at
		 FROM words
		 WHERE tier = ?
		 ORDER BY word`,
		int(tier),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tier: %w", err)
	}
	defer rows.Close()

	var entries []WordEntry
	for rows.Next() {
		var e WordEntry
		var tierNum int
		var createdAt any
		if err := rows.Scan(&e.Word, &e.Length, &tierNum, &e.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Tier = wordbank.Tier(tierNum)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Count returns the number of words in the lexicon.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM words").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count words: %w", err)
	}
	return n, nil
}

// Stats returns counts per tier and per length.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByTier:   make(map[wordbank.Tier]int),
		ByLength: make(map[int]int),
	}

	rows, err := s.db.QueryContext(ctx, "SELECT tier, length, COUNT(*) FROM words GROUP BY tier, length")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get lexicon stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier, length, n int
		if err := rows.Scan(&tier, &length, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.ByTier[wordbank.Tier(tier)] += n
		stats.ByLength[length] += n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	var last any
	err = s.db.QueryRowContext(ctx, "SELECT created_at FROM words ORDER BY created_at DESC LIMIT 1").Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last import: %w", err)
	}
	if err == nil {
		stats.LastImport = parseTime(last)
	}

	return stats, nil
}

// ClearWords deletes every word.
func (s *Store) ClearWords(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM words"); err != nil {
		return fmt.Errorf("storage: cannot clear words: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
