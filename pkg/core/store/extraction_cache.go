package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finstat_engine/pkg/core/ingest"
)

// ExtractionCache caches LLM extraction results keyed by a hash of the
// source document. Hybrid: DB when a pool is configured, file system
// otherwise. Re-uploading the same document never pays for a second
// model call.
type ExtractionCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewExtractionCache creates a cache. If pool is nil it falls back to a
// file cache under dir (defaulting to .cache/extractions).
func NewExtractionCache(pool *pgxpool.Pool, dir string) *ExtractionCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "extractions")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check ExtractionCache dir: %v\n", err)
		}
	}
	return &ExtractionCache{pool: pool, fileDir: dir}
}

// cacheEntry is the file-cache envelope.
type cacheEntry struct {
	DocumentHash string                 `json:"document_hash"`
	Accounts     []ingest.ParsedAccount `json:"accounts"`
	ExtractedAt  time.Time              `json:"extracted_at"`
	Provider     string                 `json:"provider"`
}

// DocumentHash fingerprints a document's content.
func DocumentHash(document []byte) string {
	sum := sha256.Sum256(document)
	return hex.EncodeToString(sum[:])
}

// Get returns cached accounts for a document hash, nil on a miss.
func (c *ExtractionCache) Get(ctx context.Context, documentHash string) ([]ingest.ParsedAccount, error) {
	if c.pool != nil {
		query := `
			SELECT accounts
			FROM extraction_cache
			WHERE document_hash = $1
			LIMIT 1
		`
		var dataJSON []byte
		err := c.pool.QueryRow(ctx, query, documentHash).Scan(&dataJSON)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // miss
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read db cache: %w", err)
		}
		var accounts []ingest.ParsedAccount
		if err := json.Unmarshal(dataJSON, &accounts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached accounts: %w", err)
		}
		return accounts, nil
	}

	if c.fileDir != "" {
		return c.loadFromFile(c.entryPath(documentHash))
	}

	return nil, nil
}

// Save stores an extraction result under the document hash.
func (c *ExtractionCache) Save(ctx context.Context, documentHash, provider string, accounts []ingest.ParsedAccount) error {
	dataJSON, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}

	if c.pool != nil {
		query := `
			INSERT INTO extraction_cache (document_hash, provider, accounts)
			VALUES ($1, $2, $3)
			ON CONFLICT (document_hash)
			DO UPDATE SET
				accounts = EXCLUDED.accounts,
				provider = EXCLUDED.provider,
				updated_at = NOW()
		`
		if _, err := c.pool.Exec(ctx, query, documentHash, provider, dataJSON); err != nil {
			return fmt.Errorf("failed to save to db cache: %w", err)
		}
	}

	if c.fileDir != "" {
		entry := cacheEntry{
			DocumentHash: documentHash,
			Accounts:     accounts,
			ExtractedAt:  time.Now(),
			Provider:     provider,
		}
		fileBytes, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal cache entry: %w", err)
		}
		if err := os.WriteFile(c.entryPath(documentHash), fileBytes, 0644); err != nil {
			return fmt.Errorf("failed to save to file cache: %w", err)
		}
	}

	return nil
}

// Exists checks whether a document has been extracted before.
func (c *ExtractionCache) Exists(ctx context.Context, documentHash string) bool {
	if c.pool != nil {
		query := `SELECT 1 FROM extraction_cache WHERE document_hash = $1 LIMIT 1`
		var exists int
		if err := c.pool.QueryRow(ctx, query, documentHash).Scan(&exists); err == nil {
			return true
		}
	}

	if c.fileDir != "" {
		if _, err := os.Stat(c.entryPath(documentHash)); err == nil {
			return true
		}
	}

	return false
}

func (c *ExtractionCache) entryPath(documentHash string) string {
	return filepath.Join(c.fileDir, documentHash+".json")
}

func (c *ExtractionCache) loadFromFile(path string) ([]ingest.ParsedAccount, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // miss
	}
	var entry cacheEntry
	if err := json.Unmarshal(bytes, &entry); err != nil {
		return nil, err
	}
	return entry.Accounts, nil
}
