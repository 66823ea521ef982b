package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"devtracker/internal/app"
)

// Service provides the repository catalog, commit and streak lookups and the
// profile summary.
type Service interface {
	Catalog(ctx context.Context) ([]app.Repository, error)
	RefreshCatalog(ctx context.Context) ([]app.Repository, error)
	Commits(ctx context.Context, key string) ([]app.CommitRecord, error)
	Streak(ctx context.Context, key string) (app.RepoStreak, error)
	Profile(ctx context.Context) (app.Profile, error)
}

// CommandStore provides crud operations on named commands.
type CommandStore interface {
	All() (map[string]string, error)
	Set(cmd string, desc string) (map[string]string, error)
	Delete(cmd string) (map[string]string, error)
	Rename(oldCmd string, newCmd string, desc string) (map[string]string, error)
}

// NewMux creates router for app's http server.
func NewMux(service Service, commandStore CommandStore, timeout time.Duration, l logrus.FieldLogger) *chi.Mux {
	timeoutMiddleware := NewTimeoutMiddleware(timeout)

	repoKey := func(r *http.Request) string {
		if owner := chi.URLParam(r, "owner"); owner != "" {
			return owner + "/" + chi.URLParam(r, "name")
		}
		return chi.URLParam(r, "key")
	}

	m := chi.NewRouter()
	m.Route("/api", func(m chi.Router) {
		m.Get("/repos", timeoutMiddleware(NewCatalogHandler(service, false, l)))
		m.Get("/repos/refresh", timeoutMiddleware(NewCatalogHandler(service, true, l)))
		m.Get("/commits/{key}", timeoutMiddleware(NewCommitsHandler(repoKey, service, l)))
		m.Get("/commits/{owner}/{name}", timeoutMiddleware(NewCommitsHandler(repoKey, service, l)))
		m.Get("/streak/{key}", timeoutMiddleware(NewStreakHandler(repoKey, service, l)))
		m.Get("/streak/{owner}/{name}", timeoutMiddleware(NewStreakHandler(repoKey, service, l)))
		m.Get("/profile", timeoutMiddleware(NewProfileHandler(service, l)))

		m.Get("/commands", NewCommandsListHandler(commandStore, l))
		m.Post("/commands", NewCommandSetHandler(commandStore, l))
		m.Delete("/commands/{cmd}", NewCommandDeleteHandler(commandStore, l))
		m.Patch("/commands/rename", NewCommandRenameHandler(commandStore, l))
	})

	return m
}
