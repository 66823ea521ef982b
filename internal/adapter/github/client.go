package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"devtracker/internal/app"
)

const listingPageSize = 100

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client returns repository listings, contributors and commit histories from
// the github rest api. This struct is an adapter for app.GithubClient.
type Client struct {
	doer      HTTPDoer
	address   string
	authToken string

	listingResponseMaxSize int
	commitsResponseMaxSize int

	// commitsMaxPages bounds commit pagination so a misbehaving remote
	// cannot keep the loop alive forever. Histories longer than the bound
	// are truncated.
	commitsMaxPages int
}

var _ app.GithubClient = &Client{}

// NewClient creates new github client.
// authToken is required by the /user/repos listing.
func NewClient(doer HTTPDoer, address string, authToken string, commitsMaxPages int) *Client {
	if commitsMaxPages < 1 {
		commitsMaxPages = 100
	}

	return &Client{
		doer:      doer,
		address:   address,
		authToken: authToken,

		listingResponseMaxSize: 1024 * 1024 * 10,
		commitsResponseMaxSize: 1024 * 1024 * 30,
		commitsMaxPages:        commitsMaxPages,
	}
}

// AffiliatedRepos lists repositories the authenticated identity owns or
// collaborates on.
func (c *Client) AffiliatedRepos(ctx context.Context) ([]app.Repository, error) {
	u, err := url.Parse(c.address + "/user/repos")
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	v := make(url.Values)
	v.Set("per_page", strconv.Itoa(listingPageSize))
	v.Set("affiliation", "owner,collaborator")
	u.RawQuery = v.Encode()

	return c.fetchListing(ctx, u.String())
}

// OrgRepos lists all repositories under given organization, of every
// visibility and type.
func (c *Client) OrgRepos(ctx context.Context, org string) ([]app.Repository, error) {
	if org == "" {
		return nil, app.InvalidRequestError("organization cannot be empty")
	}

	u, err := url.Parse(c.address + "/orgs/" + url.PathEscape(org) + "/repos")
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	v := make(url.Values)
	v.Set("per_page", strconv.Itoa(listingPageSize))
	v.Set("type", "all")
	u.RawQuery = v.Encode()

	return c.fetchListing(ctx, u.String())
}

// Contributors lists contributors of one repository.
func (c *Client) Contributors(ctx context.Context, owner string, name string) ([]app.Contributor, error) {
	if owner == "" {
		return nil, app.InvalidRequestError("repository's owner login cannot be empty")
	}
	if name == "" {
		return nil, app.InvalidRequestError("repository's name cannot be empty")
	}

	u, err := url.Parse(c.address + fmt.Sprintf("/repos/%s/%s/contributors", owner, name))
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	body, err := c.makeRequest(ctx, u.String(), c.listingResponseMaxSize)
	if err != nil {
		return nil, err
	}

	var resp contributorsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}

	return resp.ToContributors(), nil
}

// Commits returns the full commit history of one repository.
//
// Pages are requested sequentially: the stop condition depends on the length
// of the page just received. An empty page or a page shorter than the page
// size ends pagination. A short page that is not actually the last one would
// silently truncate the history; the github api does not produce those.
func (c *Client) Commits(ctx context.Context, owner string, name string) ([]app.CommitRecord, error) {
	if owner == "" {
		return nil, app.InvalidRequestError("repository's owner login cannot be empty")
	}
	if name == "" {
		return nil, app.InvalidRequestError("repository's name cannot be empty")
	}

	base, err := url.Parse(c.address + fmt.Sprintf("/repos/%s/%s/commits", owner, name))
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	var commits []app.CommitRecord
	for page := 1; page <= c.commitsMaxPages; page++ {
		v := make(url.Values)
		v.Set("per_page", strconv.Itoa(listingPageSize))
		v.Set("page", strconv.Itoa(page))
		base.RawQuery = v.Encode()

		body, err := c.makeRequest(ctx, base.String(), c.commitsResponseMaxSize)
		if err != nil {
			return nil, fmt.Errorf("fetching commits page %d: %w", page, err)
		}

		var resp commitsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("unmarshalling commits page %d: %w", page, err)
		}
		if len(resp) == 0 {
			break
		}

		commits = append(commits, resp.ToCommits()...)
		if len(resp) < listingPageSize {
			break
		}
	}

	return commits, nil
}

func (c *Client) fetchListing(ctx context.Context, url string) ([]app.Repository, error) {
	body, err := c.makeRequest(ctx, url, c.listingResponseMaxSize)
	if err != nil {
		return nil, err
	}

	var resp repoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}

	return resp.ToRepositories(), nil
}

// makeRequest executes one api call. A non-2xx status is normalized into
// app.RemoteResponseError with the remote message attached, so callers can
// tell an answered refusal from a request that never reached the server.
func (c *Client) makeRequest(ctx context.Context, url string, maxBytes int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating http request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "token "+c.authToken)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("doing http request: %w", err)
	}
	// Always drain body before close to allow connection reuse.
	// See: http://tleyden.github.io/blog/2016/11/21/tuning-the-go-http-client-library-for-load-testing/
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return nil, fmt.Errorf("reading http response body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		msg := remoteErrorMessage(b)
		if c.checkRateLimitExceeded(&resp.Header) {
			msg = "rate limit exceeded"
		}
		return nil, &app.RemoteResponseError{
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	return b, nil
}

func (c *Client) checkRateLimitExceeded(h *http.Header) bool {
	if s := h.Get("X-RateLimit-Remaining"); s != "" {
		if limit, err := strconv.Atoi(s); err == nil && limit == 0 {
			return true
		}
	}
	return false
}

func remoteErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	return payload.Message
}
