package app

import "sync"

// listingMemo holds the merged raw repository listings between explicit
// refreshes, so resolving a repository key does not hit the remote api on
// every request.
type listingMemo struct {
	mu    sync.Mutex
	repos []Repository
	valid bool
}

func newListingMemo() *listingMemo {
	return &listingMemo{}
}

func (m *listingMemo) get() ([]Repository, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.repos, m.valid
}

func (m *listingMemo) set(repos []Repository) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.repos = repos
	m.valid = true
}

func (m *listingMemo) invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.repos = nil
	m.valid = false
}
