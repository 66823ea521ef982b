package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtracker/internal/app"
	"devtracker/internal/mock"
)

func TestClientAffiliatedRepos(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doer    *mock.HTTPDoer
		want    []app.Repository
		wantErr bool
	}{
		{
			name: "status ok, body ok",
			doer: &mock.HTTPDoer{
				Statuses: []int{http.StatusOK},
				Bodies: [][]byte{
					[]byte(`[
						{
							"name": "tracker",
							"full_name": "octocat/tracker",
							"html_url": "https://github.com/octocat/tracker",
							"fork": false,
							"size": 120,
							"created_at": "2023-05-01T10:00:00Z",
							"pushed_at": "2024-02-01T18:30:00Z",
							"owner": {
								"login": "octocat",
								"type": "User"
							}
						}
					]`),
				},
			},
			want: []app.Repository{
				{
					Name:      "tracker",
					FullName:  "octocat/tracker",
					URL:       "https://github.com/octocat/tracker",
					Fork:      false,
					Size:      120,
					CreatedAt: time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC),
					PushedAt:  time.Date(2024, 2, 1, 18, 30, 0, 0, time.UTC),
					Owner:     app.Owner{Login: "octocat", Kind: "User"},
				},
			},
		},
		{
			name: "status not ok",
			doer: &mock.HTTPDoer{
				Statuses: []int{http.StatusUnauthorized},
				Bodies:   [][]byte{[]byte(`{"message": "Bad credentials"}`)},
			},
			wantErr: true,
		},
		{
			name: "status ok, invalid body",
			doer: &mock.HTTPDoer{
				Statuses: []int{http.StatusOK},
				Bodies:   [][]byte{[]byte(`so not json`)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.doer, "http://api.test", "secret-token", 10)

			repos, err := client.AffiliatedRepos(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, repos)

			req := tt.doer.Responses[0].Request
			assert.Equal(t, "token secret-token", req.Header.Get("Authorization"))
			assert.Equal(t, "application/vnd.github.v3+json", req.Header.Get("Accept"))
			assert.Equal(t, "/user/repos", req.URL.Path)
			assert.Equal(t, "owner,collaborator", req.URL.Query().Get("affiliation"))
			assert.Equal(t, "100", req.URL.Query().Get("per_page"))
		})
	}
}

func TestClientOrgRepos(t *testing.T) {
	t.Parallel()

	doer := &mock.HTTPDoer{
		Statuses: []int{http.StatusOK},
		Bodies:   [][]byte{[]byte(`[]`)},
	}
	client := NewClient(doer, "http://api.test", "secret-token", 10)

	_, err := client.OrgRepos(context.Background(), "")
	assert.True(t, app.IsInvalidRequestError(err))

	repos, err := client.OrgRepos(context.Background(), "test-org")
	require.NoError(t, err)
	assert.Empty(t, repos)

	req := doer.Responses[0].Request
	assert.Equal(t, "/orgs/test-org/repos", req.URL.Path)
	assert.Equal(t, "all", req.URL.Query().Get("type"))
}

func TestClientContributors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doer    *mock.HTTPDoer
		owner   string
		repo    string
		want    []app.Contributor
		wantErr bool
	}{
		{
			name:    "empty owner",
			owner:   "",
			repo:    "tracker",
			wantErr: true,
		},
		{
			name:    "empty name",
			owner:   "octocat",
			repo:    "",
			wantErr: true,
		},
		{
			name: "status ok, body ok",
			doer: &mock.HTTPDoer{
				Statuses: []int{http.StatusOK},
				Bodies: [][]byte{
					[]byte(`[
						{"login": "octocat", "contributions": 42},
						{"login": "someone", "contributions": 3}
					]`),
				},
			},
			owner: "octocat",
			repo:  "tracker",
			want: []app.Contributor{
				{Login: "octocat", Contributions: 42},
				{Login: "someone", Contributions: 3},
			},
		},
		{
			name: "status not ok",
			doer: &mock.HTTPDoer{
				Statuses: []int{http.StatusForbidden},
				Bodies:   [][]byte{[]byte(`{"message": "Forbidden"}`)},
			},
			owner:   "octocat",
			repo:    "tracker",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.doer, "http://api.test", "secret-token", 10)

			contributors, err := client.Contributors(context.Background(), tt.owner, tt.repo)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, contributors)
		})
	}
}

func TestClientRemoteResponseError(t *testing.T) {
	t.Parallel()

	doer := &mock.HTTPDoer{
		Statuses: []int{http.StatusForbidden},
		Bodies:   [][]byte{[]byte(`{"message": "API rate limit exceeded"}`)},
		Headers: []http.Header{
			{"X-Ratelimit-Remaining": []string{"0"}},
		},
	}
	client := NewClient(doer, "http://api.test", "", 10)

	_, err := client.Contributors(context.Background(), "octocat", "tracker")
	require.Error(t, err)
	assert.True(t, app.IsRemoteResponseError(err))
	assert.Contains(t, err.Error(), "rate limit exceeded")

	// Without a token no Authorization header is sent.
	assert.Empty(t, doer.Responses[0].Request.Header.Get("Authorization"))
}

// commitPage renders n synthetic commits as a github api response page.
func commitPage(n int, startSHA int) []byte {
	type author struct {
		Name string `json:"name"`
		Date string `json:"date"`
	}
	type commitInner struct {
		Message string `json:"message"`
		Author  author `json:"author"`
	}
	type item struct {
		SHA     string      `json:"sha"`
		HTMLURL string      `json:"html_url"`
		Commit  commitInner `json:"commit"`
	}

	items := make([]item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, item{
			SHA:     "sha" + strconv.Itoa(startSHA+i),
			HTMLURL: "https://github.com/octocat/tracker/commit/" + strconv.Itoa(startSHA+i),
			Commit: commitInner{
				Message: "commit " + strconv.Itoa(startSHA+i),
				Author: author{
					Name: "The Octocat",
					Date: "2024-01-02T10:00:00Z",
				},
			},
		})
	}

	data, err := json.Marshal(items)
	if err != nil {
		panic(err)
	}
	return data
}

func TestClientCommitsPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		bodies      [][]byte
		statuses    []int
		maxPages    int
		wantCommits int
		wantCalls   int
		wantErr     bool
	}{
		{
			name:        "no commits",
			bodies:      [][]byte{[]byte(`[]`)},
			maxPages:    10,
			wantCommits: 0,
			wantCalls:   1,
		},
		{
			name:        "single short page",
			bodies:      [][]byte{commitPage(3, 0)},
			maxPages:    10,
			wantCommits: 3,
			wantCalls:   1,
		},
		{
			name: "full page then short page",
			bodies: [][]byte{
				commitPage(100, 0),
				commitPage(5, 100),
			},
			maxPages:    10,
			wantCommits: 105,
			wantCalls:   2,
		},
		{
			name: "final page exactly page-sized, followed by empty page",
			bodies: [][]byte{
				commitPage(100, 0),
				[]byte(`[]`),
			},
			maxPages:    10,
			wantCommits: 100,
			wantCalls:   2,
		},
		{
			name: "page cap stops a runaway history",
			bodies: [][]byte{
				commitPage(100, 0),
			},
			maxPages:    3,
			wantCommits: 300,
			wantCalls:   3,
		},
		{
			name: "failure mid-pagination aborts",
			bodies: [][]byte{
				commitPage(100, 0),
				[]byte(`{"message": "boom"}`),
			},
			statuses: []int{http.StatusOK, http.StatusBadGateway},
			maxPages: 10,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &mock.HTTPDoer{
				Statuses: tt.statuses,
				Bodies:   tt.bodies,
			}
			client := NewClient(doer, "http://api.test", "secret-token", tt.maxPages)

			commits, err := client.Commits(context.Background(), "octocat", "tracker")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, commits, tt.wantCommits)
			assert.Equal(t, tt.wantCalls, doer.Calls())

			// Pages are requested sequentially, starting at 1.
			for i, resp := range doer.Responses {
				assert.Equal(t, fmt.Sprint(i+1), resp.Request.URL.Query().Get("page"))
				assert.Equal(t, "100", resp.Request.URL.Query().Get("per_page"))
			}
		})
	}
}
