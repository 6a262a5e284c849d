// Package cache persists HTTP responses for the Cache-Control aware caching
// transport. Entries are stored in sqlite with zstd-compressed bodies.
//
// Freshness is decided by the transport from the stored response headers;
// the store itself never expires entries.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/klauspost/compress/zstd"

	_ "modernc.org/sqlite"
)

// DefaultName is the file name used when no cache path is configured.
const DefaultName = "yr_cache.sqlite"

const schema = `CREATE TABLE IF NOT EXISTS responses (
    key TEXT PRIMARY KEY,
    body BLOB NOT NULL,
    stored_at TEXT NOT NULL
);`

// Store implements the httpcache.Cache interface on top of sqlite.
// It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	enc    *zstd.Encoder
	dec    *zstd.Decoder
	logger *slog.Logger
}

// Open opens (or creates) the cache database at path. ":memory:" gives a
// private in-memory cache.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	// A single connection serializes writers and keeps ":memory:" to one database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		logger.Warn("cache: could not enable WAL mode", "error", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}

	return &Store{db: db, enc: enc, dec: dec, logger: logger}, nil
}

// Get returns the stored response for key. A corrupt entry is treated as a
// miss and removed.
func (s *Store) Get(key string) ([]byte, bool) {
	var compressed []byte
	err := s.db.QueryRow(`SELECT body FROM responses WHERE key = ?`, key).Scan(&compressed)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("cache: read failed", "key", key, "error", err)
		return nil, false
	}

	body, err := s.dec.DecodeAll(compressed, nil)
	if err != nil {
		s.logger.Warn("cache: dropping corrupt entry", "key", key, "error", err)
		s.Delete(key)
		return nil, false
	}
	return body, true
}

// Set stores a serialized response under key, replacing any previous entry.
func (s *Store) Set(key string, response []byte) {
	compressed := s.enc.EncodeAll(response, nil)
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO responses(key, body, stored_at) VALUES(?, ?, ?)`,
		key, compressed, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		s.logger.Warn("cache: write failed", "key", key, "error", err)
	}
}

// Delete removes the entry for key.
func (s *Store) Delete(key string) {
	if _, err := s.db.Exec(`DELETE FROM responses WHERE key = ?`, key); err != nil {
		s.logger.Warn("cache: delete failed", "key", key, "error", err)
	}
}

// Len reports the number of stored entries.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&n)
	return n, err
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database and codecs.
func (s *Store) Close() error {
	s.dec.Close()
	if err := s.enc.Close(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}
