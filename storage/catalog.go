package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// CatalogEntry is an unencrypted listing of one sealed store: its name,
// when it was last sealed, and its blob size in bytes. It never carries
// entry ids, field data, or any key material.
type CatalogEntry struct {
	Name     string `json:"name" bson:"name"`
	SealedAt int64  `json:"sealed_at" bson:"sealed_at"`
	Size     int    `json:"size" bson:"size"`
}

// Catalog records CatalogEntry listings so a host can enumerate sealed
// stores without opening any of them.
type Catalog interface {
	Put(ctx context.Context, entry CatalogEntry) error
	List(ctx context.Context) ([]CatalogEntry, error)
}

// FileCatalog persists a Catalog as a single JSON file, rewritten in
// full on every Put. It is meant for a small number of stores (a desktop
// password manager's worth), not a high-churn index.
type FileCatalog struct {
	path string
	mu   sync.Mutex
}

// NewFileCatalog returns a FileCatalog backed by the JSON file at path.
// The file is created on first Put if it does not already exist.
func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

func (c *FileCatalog) load() ([]CatalogEntry, error) {
	b, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []CatalogEntry
	if len(b) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("storage: decode catalog: %w", err)
	}
	return entries, nil
}

func (c *FileCatalog) Put(_ context.Context, entry CatalogEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load()
	if err != nil {
		return err
	}
	replaced := false
	for i, e := range entries {
		if e.Name == entry.Name {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, b, 0o600)
}

func (c *FileCatalog) List(_ context.Context) ([]CatalogEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}
