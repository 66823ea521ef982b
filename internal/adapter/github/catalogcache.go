package github

import (
	"encoding/json"
	"fmt"
	"time"

	"devtracker/internal/app"
)

const catalogKey = "catalog"

// CatalogCache persists the enriched repository catalog as one document.
// Every successful enrichment pass overwrites it.
type CatalogCache struct {
	store KVStore
}

var _ app.CatalogStore = &CatalogCache{}

// NewCatalogCache creates new CatalogCache instance.
func NewCatalogCache(store KVStore) *CatalogCache {
	return &CatalogCache{store: store}
}

// Load returns the persisted catalog. The second return value tells whether
// a catalog was ever saved.
func (c *CatalogCache) Load() ([]app.Repository, bool, error) {
	data, err := c.store.ReadKey([]byte(catalogKey))
	if err != nil {
		return nil, false, fmt.Errorf("reading catalog cache: %w", err)
	}
	if data == nil {
		return nil, false, nil
	}

	var entry catalogDBEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("unmarshalling catalog cache: %w", err)
	}

	return entry.Repos, true, nil
}

// Save overwrites the persisted catalog.
func (c *CatalogCache) Save(repos []app.Repository) error {
	data, err := json.Marshal(catalogDBEntry{
		Created: time.Now().Unix(),
		Repos:   repos,
	})
	if err != nil {
		return fmt.Errorf("marshalling catalog cache: %w", err)
	}

	return c.store.UpdateKey([]byte(catalogKey), data)
}

type catalogDBEntry struct {
	Created int64
	Repos   []app.Repository
}
