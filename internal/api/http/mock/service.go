package mock

import (
	"context"

	"devtracker/internal/app"
)

// Service mocks http.Service.
type Service struct {
	CatalogFunc        func(ctx context.Context) ([]app.Repository, error)
	RefreshCatalogFunc func(ctx context.Context) ([]app.Repository, error)
	CommitsFunc        func(ctx context.Context, key string) ([]app.CommitRecord, error)
	StreakFunc         func(ctx context.Context, key string) (app.RepoStreak, error)
	ProfileFunc        func(ctx context.Context) (app.Profile, error)
}

// Catalog returns the enriched repository catalog.
func (m *Service) Catalog(ctx context.Context) ([]app.Repository, error) {
	if m.CatalogFunc != nil {
		return m.CatalogFunc(ctx)
	}

	return []app.Repository{}, nil
}

// RefreshCatalog unconditionally rebuilds the catalog.
func (m *Service) RefreshCatalog(ctx context.Context) ([]app.Repository, error) {
	if m.RefreshCatalogFunc != nil {
		return m.RefreshCatalogFunc(ctx)
	}

	return []app.Repository{}, nil
}

// Commits returns the commit history for given key.
func (m *Service) Commits(ctx context.Context, key string) ([]app.CommitRecord, error) {
	if m.CommitsFunc != nil {
		return m.CommitsFunc(ctx, key)
	}

	return []app.CommitRecord{}, nil
}

// Streak returns streak stats for given key.
func (m *Service) Streak(ctx context.Context, key string) (app.RepoStreak, error) {
	if m.StreakFunc != nil {
		return m.StreakFunc(ctx, key)
	}

	return app.RepoStreak{}, nil
}

// Profile returns the identity summary.
func (m *Service) Profile(ctx context.Context) (app.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx)
	}

	return app.Profile{}, nil
}

// CommandStore mocks http.CommandStore.
type CommandStore struct {
	AllFunc    func() (map[string]string, error)
	SetFunc    func(cmd string, desc string) (map[string]string, error)
	DeleteFunc func(cmd string) (map[string]string, error)
	RenameFunc func(oldCmd string, newCmd string, desc string) (map[string]string, error)
}

// All returns every stored command.
func (m *CommandStore) All() (map[string]string, error) {
	if m.AllFunc != nil {
		return m.AllFunc()
	}

	return map[string]string{}, nil
}

// Set creates or updates one command.
func (m *CommandStore) Set(cmd string, desc string) (map[string]string, error) {
	if m.SetFunc != nil {
		return m.SetFunc(cmd, desc)
	}

	return map[string]string{}, nil
}

// Delete removes one command.
func (m *CommandStore) Delete(cmd string) (map[string]string, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(cmd)
	}

	return map[string]string{}, nil
}

// Rename moves a command to a new name.
func (m *CommandStore) Rename(oldCmd string, newCmd string, desc string) (map[string]string, error) {
	if m.RenameFunc != nil {
		return m.RenameFunc(oldCmd, newCmd, desc)
	}

	return map[string]string{}, nil
}
