package github

import (
	"time"

	"devtracker/internal/app"
)

type repoResponse []repoResponseItem

type repoResponseItem struct {
	Name      string            `json:"name"`
	FullName  string            `json:"full_name"`
	HTMLURL   string            `json:"html_url"`
	Fork      bool              `json:"fork"`
	Size      int               `json:"size"`
	CreatedAt time.Time         `json:"created_at"`
	PushedAt  time.Time         `json:"pushed_at"`
	Owner     repoResponseOwner `json:"owner"`
}

type repoResponseOwner struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

func (r repoResponse) ToRepositories() []app.Repository {
	repos := make([]app.Repository, 0, len(r))
	for _, i := range r {
		repos = append(repos, app.Repository{
			Name:      i.Name,
			FullName:  i.FullName,
			URL:       i.HTMLURL,
			Fork:      i.Fork,
			Size:      i.Size,
			CreatedAt: i.CreatedAt,
			PushedAt:  i.PushedAt,
			Owner: app.Owner{
				Login: i.Owner.Login,
				Kind:  i.Owner.Type,
			},
		})
	}

	return repos
}

type contributorsResponse []struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

func (r contributorsResponse) ToContributors() []app.Contributor {
	cs := make([]app.Contributor, 0, len(r))
	for _, el := range r {
		cs = append(cs, app.Contributor{
			Login:         el.Login,
			Contributions: el.Contributions,
		})
	}

	return cs
}

type commitsResponse []commitsResponseItem

type commitsResponseItem struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

func (r commitsResponse) ToCommits() []app.CommitRecord {
	commits := make([]app.CommitRecord, 0, len(r))
	for _, i := range r {
		commits = append(commits, app.CommitRecord{
			SHA:        i.SHA,
			Message:    i.Commit.Message,
			AuthorName: i.Commit.Author.Name,
			AuthoredAt: i.Commit.Author.Date,
			URL:        i.HTMLURL,
		})
	}

	return commits
}
