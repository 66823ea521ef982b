package mock

import (
	"context"

	"devtracker/internal/app"
)

// GithubClient mocks app.GithubClient.
type GithubClient struct {
	AffiliatedReposFunc func(ctx context.Context) ([]app.Repository, error)
	OrgReposFunc        func(ctx context.Context, org string) ([]app.Repository, error)
	ContributorsFunc    func(ctx context.Context, owner string, name string) ([]app.Contributor, error)
	CommitsFunc         func(ctx context.Context, owner string, name string) ([]app.CommitRecord, error)
}

// AffiliatedRepos lists repositories the identity owns or collaborates on.
func (m *GithubClient) AffiliatedRepos(ctx context.Context) ([]app.Repository, error) {
	if m.AffiliatedReposFunc != nil {
		return m.AffiliatedReposFunc(ctx)
	}

	return []app.Repository{}, nil
}

// OrgRepos lists all repositories under given organization.
func (m *GithubClient) OrgRepos(ctx context.Context, org string) ([]app.Repository, error) {
	if m.OrgReposFunc != nil {
		return m.OrgReposFunc(ctx, org)
	}

	return []app.Repository{}, nil
}

// Contributors lists contributors of one repository.
func (m *GithubClient) Contributors(ctx context.Context, owner string, name string) ([]app.Contributor, error) {
	if m.ContributorsFunc != nil {
		return m.ContributorsFunc(ctx, owner, name)
	}

	return []app.Contributor{}, nil
}

// Commits returns the full commit history of one repository.
func (m *GithubClient) Commits(ctx context.Context, owner string, name string) ([]app.CommitRecord, error) {
	if m.CommitsFunc != nil {
		return m.CommitsFunc(ctx, owner, name)
	}

	return []app.CommitRecord{}, nil
}

// CatalogStore mocks app.CatalogStore.
type CatalogStore struct {
	LoadFunc func() ([]app.Repository, bool, error)
	SaveFunc func(repos []app.Repository) error

	Saved [][]app.Repository
}

// Load returns the persisted catalog.
func (m *CatalogStore) Load() ([]app.Repository, bool, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}

	return nil, false, nil
}

// Save persists the catalog.
func (m *CatalogStore) Save(repos []app.Repository) error {
	m.Saved = append(m.Saved, repos)
	if m.SaveFunc != nil {
		return m.SaveFunc(repos)
	}

	return nil
}

// CommitCacheReader mocks app.CommitCacheReader.
type CommitCacheReader struct {
	CachedCommitsFunc func(owner string, name string) ([]app.CommitRecord, bool, error)
}

// CachedCommits returns already-cached commits.
func (m *CommitCacheReader) CachedCommits(owner string, name string) ([]app.CommitRecord, bool, error) {
	if m.CachedCommitsFunc != nil {
		return m.CachedCommitsFunc(owner, name)
	}

	return nil, false, nil
}
