package app

import "time"

// Owner identifies the account a repository belongs to.
// Kind is "User" or "Organization", as reported by the github api.
type Owner struct {
	Login string
	Kind  string
}

// Repository entity. FullName ("owner/name") is the catalog identity:
// the catalog never holds two entries with the same FullName.
type Repository struct {
	Name      string
	FullName  string
	URL       string
	Fork      bool
	Size      int
	CreatedAt time.Time
	PushedAt  time.Time
	Owner     Owner

	// Enrichment results, empty on bare listing entries.
	Contributors  []Contributor
	Streak        StreakStats
	IsOwner       bool
	IsContributor bool
}

// Contributor entity.
type Contributor struct {
	Login         string
	Contributions int
}

// CommitRecord is the simplified form of one commit. Immutable once cached.
type CommitRecord struct {
	SHA        string
	Message    string
	AuthorName string
	AuthoredAt time.Time
	URL        string
}

// StreakStats holds contiguous-run statistics derived from commit dates.
// It is a snapshot: the value persisted with the catalog goes stale until
// the next refresh.
type StreakStats struct {
	CurrentStreak int
	LongestStreak int
	TotalCommits  int
	DaysActive    int
}

// RepoStreak pairs streak stats with the resolved repository identity.
type RepoStreak struct {
	Repo  string
	Stats StreakStats
}

// HeatmapEntry is the commit count for one UTC calendar day across the
// whole catalog.
type HeatmapEntry struct {
	Day   time.Time
	Count int
}

// Profile is the identity summary served to the UI.
type Profile struct {
	Username     string
	AvatarURL    string
	TotalCommits int
	Repos        int
	Heatmap      []HeatmapEntry
}
