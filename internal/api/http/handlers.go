package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"devtracker/internal/app"
)

const dayFormat = "2006-01-02"

type owner struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

type contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

type streak struct {
	Repo          string `json:"repo,omitempty"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	TotalCommits  int    `json:"totalCommits"`
	DaysActive    int    `json:"daysActive"`
}

type repository struct {
	Name          string        `json:"name"`
	FullName      string        `json:"full_name"`
	HTMLURL       string        `json:"html_url"`
	Fork          bool          `json:"fork"`
	Size          int           `json:"size"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Owner         owner         `json:"owner"`
	Contributors  []contributor `json:"contributors"`
	Streak        streak        `json:"streak"`
	IsOwner       bool          `json:"isOwner"`
	IsContributor bool          `json:"isContributor"`
}

type commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	URL     string    `json:"url"`
}

type heatmapEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type profile struct {
	Username     string         `json:"username"`
	AvatarURL    string         `json:"avatar_url"`
	TotalCommits int            `json:"totalCommits"`
	Repos        int            `json:"repos"`
	Heatmap      []heatmapEntry `json:"heatmap"`
}

func newStreak(repo string, s app.StreakStats) streak {
	return streak{
		Repo:          repo,
		CurrentStreak: s.CurrentStreak,
		LongestStreak: s.LongestStreak,
		TotalCommits:  s.TotalCommits,
		DaysActive:    s.DaysActive,
	}
}

func newRepositoriesResponse(repos []app.Repository) []repository {
	resp := make([]repository, 0, len(repos))
	for _, r := range repos {
		contributors := make([]contributor, 0, len(r.Contributors))
		for _, c := range r.Contributors {
			contributors = append(contributors, contributor{
				Login:         c.Login,
				Contributions: c.Contributions,
			})
		}
		resp = append(resp, repository{
			Name:          r.Name,
			FullName:      r.FullName,
			HTMLURL:       r.URL,
			Fork:          r.Fork,
			Size:          r.Size,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.PushedAt,
			Owner:         owner{Login: r.Owner.Login, Type: r.Owner.Kind},
			Contributors:  contributors,
			Streak:        newStreak("", r.Streak),
			IsOwner:       r.IsOwner,
			IsContributor: r.IsContributor,
		})
	}

	return resp
}

func newCommitsResponse(commits []app.CommitRecord) []commit {
	resp := make([]commit, 0, len(commits))
	for _, c := range commits {
		resp = append(resp, commit{
			SHA:     c.SHA,
			Message: c.Message,
			Author:  c.AuthorName,
			Date:    c.AuthoredAt,
			URL:     c.URL,
		})
	}

	return resp
}

func newProfileResponse(p app.Profile) profile {
	heatmap := make([]heatmapEntry, 0, len(p.Heatmap))
	for _, e := range p.Heatmap {
		heatmap = append(heatmap, heatmapEntry{
			Date:  e.Day.Format(dayFormat),
			Count: e.Count,
		})
	}

	return profile{
		Username:     p.Username,
		AvatarURL:    p.AvatarURL,
		TotalCommits: p.TotalCommits,
		Repos:        p.Repos,
		Heatmap:      heatmap,
	}
}

// NewCatalogHandler creates handlerfunc returning the enriched repository
// catalog. With refresh set, the catalog is unconditionally rebuilt.
func NewCatalogHandler(service Service, refresh bool, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var repos []app.Repository
		var err error
		if refresh {
			repos, err = service.RefreshCatalog(r.Context())
		} else {
			repos, err = service.Catalog(r.Context())
		}
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, newRepositoriesResponse(repos))
	}
}

// NewCommitsHandler creates handlerfunc returning the cache-first commit
// list of one repository.
func NewCommitsHandler(
	getKey func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commits, err := service.Commits(r.Context(), getKey(r))
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, newCommitsResponse(commits))
	}
}

// NewStreakHandler creates handlerfunc returning recomputed streak stats of
// one repository.
func NewStreakHandler(
	getKey func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs, err := service.Streak(r.Context(), getKey(r))
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, newStreak(rs.Repo, rs.Stats))
	}
}

// NewProfileHandler creates handlerfunc returning the identity summary with
// the catalog-wide heatmap.
func NewProfileHandler(service Service, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := service.Profile(r.Context())
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, newProfileResponse(p))
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps app error types to http statuses. Anything unclassified is
// reported with its raw message; this service fronts a single operator.
func writeError(w http.ResponseWriter, err error, l logrus.FieldLogger) {
	switch {
	case app.IsInvalidRequestError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case app.IsNotFoundError(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case app.IsTooManyRequestsError(err):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		l.Errorf("handler error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
