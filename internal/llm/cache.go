package llm

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// Cache wraps a Generator with a SQLite-backed response cache keyed by a
// hash of the prompt. Only cache-eligible calls are looked up or stored;
// a miss or a storage failure degrades to calling the inner generator.
type Cache struct {
	inner Generator
	db    *sql.DB
}

// NewCache opens (or creates) the cache database at dbPath and wraps inner.
// Use ":memory:" for an in-memory cache.
func NewCache(inner Generator, dbPath string) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		prompt_hash TEXT PRIMARY KEY,
		response    TEXT NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}
	return &Cache{inner: inner, db: db}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Generate serves cache-eligible prompts from the cache when present,
// otherwise delegates to the inner generator and stores the reply.
func (c *Cache) Generate(ctx context.Context, prompt string, cacheEligible bool) (string, error) {
	key := promptHash(prompt)
	if cacheEligible {
		var cached string
		err := c.db.QueryRowContext(ctx,
			`SELECT response FROM responses WHERE prompt_hash = ?`, key).Scan(&cached)
		if err == nil {
			return cached, nil
		}
		if err != sql.ErrNoRows {
			log.Printf("cache lookup failed: %v", err)
		}
	}

	text, err := c.inner.Generate(ctx, prompt, cacheEligible)
	if err != nil {
		return "", err
	}

	if cacheEligible {
		_, err := c.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO responses (prompt_hash, response) VALUES (?, ?)`, key, text)
		if err != nil {
			log.Printf("cache store failed: %v", err)
		}
	}
	return text, nil
}

func promptHash(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
