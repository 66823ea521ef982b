package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeStreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dates []time.Time
		want  StreakStats
	}{
		{
			name:  "empty input",
			dates: nil,
			want:  StreakStats{},
		},
		{
			name:  "single day",
			dates: []time.Time{day("2024-01-01")},
			want: StreakStats{
				CurrentStreak: 1,
				LongestStreak: 1,
				TotalCommits:  1,
				DaysActive:    1,
			},
		},
		{
			name: "three consecutive days",
			dates: []time.Time{
				day("2024-01-01"),
				day("2024-01-02"),
				day("2024-01-03"),
			},
			want: StreakStats{
				CurrentStreak: 3,
				LongestStreak: 3,
				TotalCommits:  3,
				DaysActive:    3,
			},
		},
		{
			name: "two isolated days",
			dates: []time.Time{
				day("2024-01-01"),
				day("2024-01-05"),
			},
			want: StreakStats{
				CurrentStreak: 1,
				LongestStreak: 1,
				TotalCommits:  2,
				DaysActive:    2,
			},
		},
		{
			name: "current streak is the run ending at the most recent day",
			dates: []time.Time{
				day("2024-01-10"),
				day("2024-01-09"),
				day("2024-01-08"),
				day("2024-01-05"),
			},
			want: StreakStats{
				CurrentStreak: 3,
				LongestStreak: 3,
				TotalCommits:  4,
				DaysActive:    4,
			},
		},
		{
			name: "older run longer than the current one",
			dates: []time.Time{
				day("2024-01-01"),
				day("2024-01-02"),
				day("2024-01-03"),
				day("2024-01-04"),
				day("2024-01-10"),
				day("2024-01-11"),
			},
			want: StreakStats{
				CurrentStreak: 2,
				LongestStreak: 4,
				TotalCommits:  6,
				DaysActive:    6,
			},
		},
		{
			name: "duplicate days count commits individually",
			dates: []time.Time{
				day("2024-01-01"),
				day("2024-01-01"),
				day("2024-01-02"),
				day("2024-01-02"),
				day("2024-01-02"),
			},
			want: StreakStats{
				CurrentStreak: 2,
				LongestStreak: 2,
				TotalCommits:  5,
				DaysActive:    2,
			},
		},
		{
			name: "instants on the same utc day collapse",
			dates: []time.Time{
				time.Date(2024, 3, 1, 0, 15, 0, 0, time.UTC),
				time.Date(2024, 3, 1, 23, 45, 0, 0, time.UTC),
				time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
			},
			want: StreakStats{
				CurrentStreak: 2,
				LongestStreak: 2,
				TotalCommits:  3,
				DaysActive:    2,
			},
		},
		{
			name: "non-utc instants are bucketed in utc",
			dates: []time.Time{
				// 23:30 UTC-3 is already the next day in UTC.
				time.Date(2024, 3, 1, 23, 30, 0, 0, time.FixedZone("UTC-3", -3*60*60)),
				time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
			},
			want: StreakStats{
				CurrentStreak: 1,
				LongestStreak: 1,
				TotalCommits:  2,
				DaysActive:    1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreak(tt.dates)
			assert.Equal(t, tt.want, got)

			// Pure function: repeated invocation returns the same result.
			assert.Equal(t, got, ComputeStreak(tt.dates))

			assert.GreaterOrEqual(t, got.LongestStreak, got.CurrentStreak)
			assert.Equal(t, len(tt.dates), got.TotalCommits)
		})
	}
}

func TestComputeHeatmap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dates []time.Time
		want  []HeatmapEntry
	}{
		{
			name:  "empty input",
			dates: nil,
			want:  []HeatmapEntry{},
		},
		{
			name: "counts per day, ascending",
			dates: []time.Time{
				day("2024-02-02"),
				day("2024-01-30"),
				day("2024-02-02"),
				time.Date(2024, 2, 2, 18, 30, 0, 0, time.UTC),
			},
			want: []HeatmapEntry{
				{Day: day("2024-01-30"), Count: 1},
				{Day: day("2024-02-02"), Count: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeHeatmap(tt.dates))
		})
	}
}
