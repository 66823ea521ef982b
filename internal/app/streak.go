package app

import (
	"sort"
	"time"
)

// ComputeStreak derives contiguous-run statistics from commit instants.
// Days are bucketed in UTC. The current streak is the length of the run
// containing the most recent distinct day; it is intentionally not compared
// against today, so a repository untouched for months still reports its last
// run.
func ComputeStreak(dates []time.Time) StreakStats {
	days := distinctDaysDesc(dates)
	if len(days) == 0 {
		return StreakStats{}
	}

	run := 1
	longest := 1
	current := 0
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			if current == 0 {
				current = run
			}
			run = 1
		}
	}
	if current == 0 {
		current = run
	}

	return StreakStats{
		CurrentStreak: current,
		LongestStreak: longest,
		TotalCommits:  len(dates),
		DaysActive:    len(days),
	}
}

// ComputeHeatmap buckets commit instants by UTC calendar day and returns
// per-day counts sorted ascending by day.
func ComputeHeatmap(dates []time.Time) []HeatmapEntry {
	counts := make(map[time.Time]int)
	for _, d := range dates {
		counts[toDay(d)]++
	}

	entries := make([]HeatmapEntry, 0, len(counts))
	for day, count := range counts {
		entries = append(entries, HeatmapEntry{Day: day, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Day.Before(entries[j].Day)
	})

	return entries
}

// distinctDaysDesc collapses instants to their distinct UTC days, most
// recent first.
func distinctDaysDesc(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := toDay(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[j].Before(days[i])
	})

	return days
}

func toDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
