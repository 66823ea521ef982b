package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"devtracker/internal/app"
)

// KVStore provides simple kv data storage.
type KVStore interface {
	ReadKey(key []byte) ([]byte, error)
	UpdateKey(key []byte, data []byte) error
}

// CommitCache wraps a github client with a persistent commit cache.
//
// Reads are cache-first: once a repository's history is stored it is served
// verbatim and never refetched, including a stored empty history. A missing
// key is the only "not fetched yet" signal; a failed fetch persists nothing,
// so the cache stays complete-or-absent. Because stored documents are
// immutable, an in-memory lru layer over the db reads is safe.
type CommitCache struct {
	client app.GithubClient
	store  KVStore
	mem    *lru.Cache
	l      logrus.FieldLogger

	flights singleflight.Group
}

var _ app.GithubClient = &CommitCache{}
var _ app.CommitCacheReader = &CommitCache{}

// NewCommitCache creates new CommitCache instance.
// size limits the number of commit documents kept in memory.
func NewCommitCache(client app.GithubClient, store KVStore, size int, l logrus.FieldLogger) (*CommitCache, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	mem, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for commits: %w", err)
	}

	return &CommitCache{
		client: client,
		store:  store,
		mem:    mem,
		l:      l,
	}, nil
}

// AffiliatedRepos lists repositories the identity owns or collaborates on.
func (c *CommitCache) AffiliatedRepos(ctx context.Context) ([]app.Repository, error) {
	return c.client.AffiliatedRepos(ctx)
}

// OrgRepos lists all repositories under given organization.
func (c *CommitCache) OrgRepos(ctx context.Context, org string) ([]app.Repository, error) {
	return c.client.OrgRepos(ctx, org)
}

// Contributors lists contributors of one repository.
func (c *CommitCache) Contributors(ctx context.Context, owner string, name string) ([]app.Contributor, error) {
	return c.client.Contributors(ctx, owner, name)
}

// Commits returns the cached commit history for the repository, fetching and
// persisting it on first access. Concurrent first accesses for the same
// repository are collapsed into one remote fetch.
func (c *CommitCache) Commits(ctx context.Context, owner string, name string) ([]app.CommitRecord, error) {
	key := commitsKey(owner, name)

	v, err, _ := c.flights.Do(key, func() (interface{}, error) {
		if commits, ok := c.cached(key); ok {
			return commits, nil
		}

		commits, err := c.client.Commits(ctx, owner, name)
		if err != nil {
			return nil, err
		}

		if err := c.save(key, commits); err != nil {
			// The fetched history is still valid, persistence is best effort.
			c.l.Errorf("saving commit cache for %s/%s: %v", owner, name, err)
			return commits, nil
		}
		c.mem.Add(key, commits)

		return commits, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]app.CommitRecord), nil
}

// CachedCommits returns the stored commit history without contacting the
// remote api. The second return value tells whether a history was ever
// fetched for the repository.
func (c *CommitCache) CachedCommits(owner string, name string) ([]app.CommitRecord, bool, error) {
	key := commitsKey(owner, name)
	if commits, ok := c.cached(key); ok {
		return commits, true, nil
	}

	data, err := c.store.ReadKey([]byte(key))
	if err != nil {
		return nil, false, fmt.Errorf("reading commit cache: %w", err)
	}
	if data == nil {
		return nil, false, nil
	}

	entry, err := unserializeCommits(data)
	if err != nil {
		return nil, false, fmt.Errorf("decoding commit cache: %w", err)
	}
	c.mem.Add(key, entry.Commits)

	return entry.Commits, true, nil
}

// cached checks the memory layer first, then the db. Db read or decode
// problems are treated as a cache miss.
func (c *CommitCache) cached(key string) ([]app.CommitRecord, bool) {
	if v, ok := c.mem.Get(key); ok {
		return v.([]app.CommitRecord), true
	}

	data, err := c.store.ReadKey([]byte(key))
	if err != nil {
		c.l.Warnf("reading commit cache for %s: %v", key, err)
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	entry, err := unserializeCommits(data)
	if err != nil {
		c.l.Warnf("decoding commit cache for %s: %v", key, err)
		return nil, false
	}
	c.mem.Add(key, entry.Commits)

	return entry.Commits, true
}

func (c *CommitCache) save(key string, commits []app.CommitRecord) error {
	data, err := json.Marshal(commitsDBEntry{
		FetchedAt: time.Now().Unix(),
		Commits:   commits,
	})
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	return c.store.UpdateKey([]byte(key), data)
}

func unserializeCommits(data []byte) (*commitsDBEntry, error) {
	var entry commitsDBEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshalling json: %w", err)
	}

	return &entry, nil
}

func commitsKey(owner string, name string) string {
	return "commits/" + owner + "__" + name
}

// commitsDBEntry is the stored document. Its presence under a key is the
// "already fetched" marker; Commits may legitimately be empty.
type commitsDBEntry struct {
	FetchedAt int64
	Commits   []app.CommitRecord
}
