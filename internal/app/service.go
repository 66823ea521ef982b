package app

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// GithubClient returns repository listings, contributors and commit histories.
type GithubClient interface {
	// AffiliatedRepos lists repositories the configured identity owns or collaborates on.
	AffiliatedRepos(ctx context.Context) ([]Repository, error)
	// OrgRepos lists all repositories under given organization.
	OrgRepos(ctx context.Context, org string) ([]Repository, error)
	// Contributors lists contributors of one repository.
	Contributors(ctx context.Context, owner string, name string) ([]Contributor, error)
	// Commits returns the full commit history of one repository.
	Commits(ctx context.Context, owner string, name string) ([]CommitRecord, error)
}

// CatalogStore persists the enriched repository catalog.
type CatalogStore interface {
	Load() ([]Repository, bool, error)
	Save(repos []Repository) error
}

// CommitCacheReader reads already-cached commit histories without touching
// the remote api. Used for heatmap aggregation.
type CommitCacheReader interface {
	CachedCommits(owner string, name string) ([]CommitRecord, bool, error)
}

// Service is main apps entry point. Provides all app functionality.
type Service struct {
	client       GithubClient
	catalogStore CatalogStore
	commitReader CommitCacheReader
	user         string
	org          string
	concurrency  int
	l            logrus.FieldLogger

	memo         *listingMemo
	refreshGroup singleflight.Group
}

// NewService creates new Service instance.
// concurrency bounds the enrichment fan-out across repositories.
func NewService(
	client GithubClient,
	catalogStore CatalogStore,
	commitReader CommitCacheReader,
	user string,
	org string,
	concurrency int,
	l logrus.FieldLogger,
) (*Service, error) {
	if user == "" {
		return nil, errors.New("user login cannot be empty")
	}
	if concurrency < 1 {
		return nil, errors.New("concurrency must be greater than zero")
	}

	return &Service{
		client:       client,
		catalogStore: catalogStore,
		commitReader: commitReader,
		user:         user,
		org:          org,
		concurrency:  concurrency,
		l:            l,
		memo:         newListingMemo(),
	}, nil
}

// Catalog returns the enriched repository catalog. A persisted catalog is
// served as-is; otherwise the catalog is built, enriched and persisted first.
func (s *Service) Catalog(ctx context.Context) ([]Repository, error) {
	repos, ok, err := s.catalogStore.Load()
	if err != nil {
		s.l.Warnf("loading catalog cache: %v", err)
	}
	if ok && err == nil {
		return repos, nil
	}

	return s.buildCatalog(ctx)
}

// RefreshCatalog drops the in-process listing memo and unconditionally
// rebuilds and re-persists the catalog.
func (s *Service) RefreshCatalog(ctx context.Context) ([]Repository, error) {
	s.memo.invalidate()
	return s.buildCatalog(ctx)
}

// buildCatalog runs the listing+enrichment pipeline. Concurrent builds are
// collapsed into a single run so two refreshes cannot interleave writes to
// the catalog cache.
func (s *Service) buildCatalog(ctx context.Context) ([]Repository, error) {
	v, err, _ := s.refreshGroup.Do("catalog", func() (interface{}, error) {
		combined, err := s.combinedRepos(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "listing repositories")
		}

		enriched, err := s.enrich(ctx, filterEmpty(combined))
		if err != nil {
			return nil, errors.Wrap(err, "enriching repositories")
		}

		if err := s.catalogStore.Save(enriched); err != nil {
			// The built catalog is still valid, persistence is best effort.
			s.l.Errorf("saving catalog cache: %v", err)
		}

		return enriched, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]Repository), nil
}

// Commits returns the cache-first commit history for the repository matching
// given key ("owner/name" or bare name).
func (s *Service) Commits(ctx context.Context, key string) ([]CommitRecord, error) {
	repo, err := s.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	commits, err := s.client.Commits(ctx, repo.Owner.Login, repo.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving commits for %s", repo.FullName)
	}

	return commits, nil
}

// Streak recomputes streak stats for the repository matching given key,
// using cached-or-fetched commits.
func (s *Service) Streak(ctx context.Context, key string) (RepoStreak, error) {
	repo, err := s.resolve(ctx, key)
	if err != nil {
		return RepoStreak{}, err
	}

	commits, err := s.client.Commits(ctx, repo.Owner.Login, repo.Name)
	if err != nil {
		return RepoStreak{}, errors.Wrapf(err, "retrieving commits for %s", repo.FullName)
	}

	return RepoStreak{
		Repo:  repo.FullName,
		Stats: ComputeStreak(commitDates(commits)),
	}, nil
}

// Profile returns the identity summary with the catalog-wide heatmap.
// Only cached data is consulted; nothing is fetched.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	repos, ok, err := s.catalogStore.Load()
	if err != nil {
		s.l.Warnf("loading catalog cache: %v", err)
	}
	if !ok || err != nil {
		repos = nil
	}

	var total int
	var allDates []time.Time
	for _, r := range repos {
		if r.FullName == "" {
			continue
		}
		total += r.Streak.TotalCommits

		owner, name, ok := splitFullName(r.FullName)
		if !ok {
			continue
		}
		commits, found, err := s.commitReader.CachedCommits(owner, name)
		if err != nil {
			s.l.Warnf("reading commit cache for %s: %v", r.FullName, err)
			continue
		}
		if !found {
			continue
		}
		allDates = append(allDates, commitDates(commits)...)
	}

	return Profile{
		Username:     s.user,
		AvatarURL:    "https://github.com/" + s.user + ".png",
		TotalCommits: total,
		Repos:        len(repos),
		Heatmap:      ComputeHeatmap(allDates),
	}, nil
}

// combinedRepos merges the two remote listings, direct first, deduplicated
// by full name with the first occurrence winning. The merged listing is
// memoized until the next explicit refresh. A listing answered with a non-2xx
// status contributes an empty set; transport failures abort the merge.
func (s *Service) combinedRepos(ctx context.Context) ([]Repository, error) {
	if repos, ok := s.memo.get(); ok {
		return repos, nil
	}

	var direct, orgRepos []Repository
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		repos, err := s.client.AffiliatedRepos(gctx)
		if err != nil {
			if !IsRemoteResponseError(err) {
				return errors.Wrap(err, "listing affiliated repositories")
			}
			s.l.Warnf("affiliated repositories listing failed: %v", err)
			return nil
		}
		direct = repos
		return nil
	})
	if s.org != "" {
		g.Go(func() error {
			repos, err := s.client.OrgRepos(gctx, s.org)
			if err != nil {
				if !IsRemoteResponseError(err) {
					return errors.Wrapf(err, "listing %s repositories", s.org)
				}
				s.l.Warnf("organization repositories listing failed: %v", err)
				return nil
			}
			orgRepos = repos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	merged := make([]Repository, 0, len(direct)+len(orgRepos))
	for _, r := range append(direct, orgRepos...) {
		if r.FullName == "" {
			continue
		}
		if _, ok := seen[r.FullName]; ok {
			continue
		}
		seen[r.FullName] = struct{}{}
		merged = append(merged, r)
	}

	s.memo.set(merged)

	return merged, nil
}

// enrich attaches contributors, streak stats and identity flags to every
// candidate. Candidates are processed concurrently with a bounded number in
// flight. A repository is dropped only when its contributor lookup fails at
// the transport level; a non-2xx answer degrades to an empty contributor
// list.
func (s *Service) enrich(ctx context.Context, candidates []Repository) ([]Repository, error) {
	results := make([]*Repository, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			repo, ok, err := s.enrichOne(gctx, candidate)
			if err != nil {
				return err
			}
			if ok {
				results[i] = &repo
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	enriched := make([]Repository, 0, len(candidates))
	for _, r := range results {
		if r != nil {
			enriched = append(enriched, *r)
		}
	}

	return enriched, nil
}

func (s *Service) enrichOne(ctx context.Context, repo Repository) (Repository, bool, error) {
	contributors, err := s.client.Contributors(ctx, repo.Owner.Login, repo.Name)
	if err != nil {
		if !IsRemoteResponseError(err) {
			s.l.Warnf("dropping %s, contributor lookup failed: %v", repo.FullName, err)
			return Repository{}, false, nil
		}
		s.l.Warnf("contributor lookup for %s answered with error: %v", repo.FullName, err)
		contributors = nil
	}

	commits, err := s.client.Commits(ctx, repo.Owner.Login, repo.Name)
	if err != nil {
		if !IsRemoteResponseError(err) {
			return Repository{}, false, errors.Wrapf(err, "retrieving commits for %s", repo.FullName)
		}
		s.l.Warnf("commit fetch for %s answered with error: %v", repo.FullName, err)
		commits = nil
	}

	repo.Contributors = contributors
	repo.Streak = ComputeStreak(commitDates(commits))
	repo.IsOwner = strings.EqualFold(repo.Owner.Login, s.user)
	repo.IsContributor = false
	for _, c := range contributors {
		if strings.EqualFold(c.Login, s.user) {
			repo.IsContributor = true
			break
		}
	}

	return repo, true, nil
}

// resolve finds a catalog candidate by full name or bare name.
func (s *Service) resolve(ctx context.Context, key string) (Repository, error) {
	combined, err := s.combinedRepos(ctx)
	if err != nil {
		return Repository{}, errors.Wrap(err, "listing repositories")
	}

	for _, r := range combined {
		if r.FullName == key || r.Name == key {
			return r, nil
		}
	}

	return Repository{}, NotFoundError("repository not found: " + key)
}

// filterEmpty drops genuinely empty repositories: zero size or missing
// name/owner.
func filterEmpty(repos []Repository) []Repository {
	filtered := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if r.Size <= 0 || r.Name == "" || r.Owner.Login == "" {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered
}

func commitDates(commits []CommitRecord) []time.Time {
	dates := make([]time.Time, 0, len(commits))
	for _, c := range commits {
		dates = append(dates, c.AuthoredAt)
	}

	return dates
}

func splitFullName(fullName string) (owner string, name string, ok bool) {
	i := strings.Index(fullName, "/")
	if i <= 0 || i == len(fullName)-1 {
		return "", "", false
	}

	return fullName[:i], fullName[i+1:], true
}
