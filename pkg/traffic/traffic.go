package traffic

import (
	"sort"
	"time"

	"github.com/per2jensen/clonepulse/internal/utils"
)

// DateFormat is the calendar-date layout used for annotations and flags.
const DateFormat = "2006-01-02"

// DailyRecord is one calendar day of clone traffic. Records are keyed by
// the UTC day of Timestamp; there is never more than one per day.
type DailyRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
	Uniques   int       `json:"uniques"`
}

// Day returns the record's UTC calendar day at midnight.
func (r DailyRecord) Day() time.Time {
	return utils.DayOf(r.Timestamp)
}

// Annotation is a user-authored (or fetch-generated) label attached to a
// calendar date. Multiple annotations may share a date; insertion order
// is preserved.
type Annotation struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// Snapshot is the persisted record store: the full daily series, the
// annotation list, and totals recomputed from the series.
type Snapshot struct {
	TotalClones  int           `json:"total_clones"`
	UniqueClones int           `json:"unique_clones"`
	Daily        []DailyRecord `json:"daily"`
	Annotations  []Annotation  `json:"annotations"`
}

// UpsertDaily inserts the record or replaces the existing record for the
// same UTC day (last-write-wins). The daily series stays sorted by day.
func (s *Snapshot) UpsertDaily(record DailyRecord) {
	byDay := make(map[time.Time]DailyRecord, len(s.Daily)+1)
	for _, existing := range s.Daily {
		byDay[existing.Day()] = existing
	}
	byDay[record.Day()] = record

	daily := make([]DailyRecord, 0, len(byDay))
	for _, r := range byDay {
		daily = append(daily, r)
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Day().Before(daily[j].Day())
	})
	s.Daily = daily
}

// RecomputeTotals recalculates the stored totals as exact sums over the
// daily series.
func (s *Snapshot) RecomputeTotals() {
	total := 0
	uniques := 0
	for _, r := range s.Daily {
		total += r.Count
		uniques += r.Uniques
	}
	s.TotalClones = total
	s.UniqueClones = uniques
}

// MaxDailyCount returns the highest single-day count in the series and
// the day it occurred on. Ties resolve to the earliest day.
func (s *Snapshot) MaxDailyCount() (time.Time, int) {
	maxCount := 0
	var maxDay time.Time
	for _, r := range s.Daily {
		if r.Count > maxCount {
			maxCount = r.Count
			maxDay = r.Day()
		}
	}
	return maxDay, maxCount
}

// AddAnnotation appends an annotation unless an identical one is already
// present.
func (s *Snapshot) AddAnnotation(annotation Annotation) bool {
	for _, existing := range s.Annotations {
		if existing == annotation {
			return false
		}
	}
	s.Annotations = append(s.Annotations, annotation)
	return true
}
