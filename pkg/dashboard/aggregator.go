package dashboard

import (
	"sort"
	"time"

	"github.com/per2jensen/clonepulse/pkg/traffic"
)

// Aggregate buckets the daily records inside the window into complete
// Monday-Sunday weeks, summing counts per week. Weeks still accumulating
// relative to now are dropped regardless of how the window was specified,
// and weeks without any records produce no bucket at all. The result is
// ordered ascending by week start.
func Aggregate(daily []traffic.DailyRecord, window WindowSpec, now time.Time) []WeekBucket {
	currentMonday := WeekStartOf(now)

	type weekSums struct {
		total  int
		unique int
	}
	byWeek := make(map[time.Time]*weekSums)

	for _, record := range daily {
		day := record.Day()
		if !window.Contains(day) {
			continue
		}
		weekStart := WeekStartOf(day)
		if !weekStart.AddDate(0, 0, 6).Before(currentMonday) {
			// week's Sunday is on or after the current Monday: incomplete
			continue
		}
		sums := byWeek[weekStart]
		if sums == nil {
			sums = &weekSums{}
			byWeek[weekStart] = sums
		}
		sums.total += record.Count
		sums.unique += record.Uniques
	}

	weekStarts := make([]time.Time, 0, len(byWeek))
	for weekStart := range byWeek {
		weekStarts = append(weekStarts, weekStart)
	}
	sort.Slice(weekStarts, func(i, j int) bool {
		return weekStarts[i].Before(weekStarts[j])
	})

	buckets := make([]WeekBucket, 0, len(weekStarts))
	for _, weekStart := range weekStarts {
		sums := byWeek[weekStart]
		buckets = append(buckets, WeekBucket{
			WeekStart:   weekStart,
			Total:       sums.total,
			Unique:      sums.unique,
			Annotations: make([]PlacedAnnotation, 0),
		})
	}
	return buckets
}
