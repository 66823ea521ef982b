package github

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtracker/internal/adapter/github/mock"
	"devtracker/internal/app"
)

func TestCatalogCacheRoundTrip(t *testing.T) {
	t.Parallel()

	store := mock.NewKVStore(nil)
	cache := NewCatalogCache(store)

	// Nothing saved yet.
	_, found, err := cache.Load()
	require.NoError(t, err)
	assert.False(t, found)

	repos := []app.Repository{
		{
			Name:     "tracker",
			FullName: "octocat/tracker",
			Size:     120,
			PushedAt: time.Date(2024, 2, 1, 18, 30, 0, 0, time.UTC),
			Owner:    app.Owner{Login: "octocat", Kind: "User"},
			Contributors: []app.Contributor{
				{Login: "octocat", Contributions: 42},
			},
			Streak:        app.StreakStats{CurrentStreak: 2, LongestStreak: 5, TotalCommits: 42, DaysActive: 12},
			IsOwner:       true,
			IsContributor: true,
		},
	}
	require.NoError(t, cache.Save(repos))

	got, found, err := cache.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, repos, got)

	// Saving again overwrites the document.
	require.NoError(t, cache.Save(nil))
	got, found, err = cache.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, got)
}

func TestCatalogCacheErrors(t *testing.T) {
	t.Parallel()

	store := mock.NewKVStore(map[string][]byte{
		"catalog": []byte("so not json"),
	})
	cache := NewCatalogCache(store)

	_, _, err := cache.Load()
	assert.Error(t, err)

	store.ReadErr = errors.New("db corrupted")
	_, _, err = cache.Load()
	assert.Error(t, err)

	store.UpdateErr = errors.New("disk full")
	assert.Error(t, cache.Save(nil))
}
