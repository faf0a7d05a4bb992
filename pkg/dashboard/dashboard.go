package dashboard

import (
	"time"

	"github.com/per2jensen/clonepulse/internal/utils"
)

// WindowSpec is the resolved inclusive date range to display. Start and
// End are UTC midnights; Start after End encodes a valid empty window.
// Year is non-zero when the window was derived from --year.
type WindowSpec struct {
	Start time.Time
	End   time.Time
	Year  int
}

func (w WindowSpec) IsEmpty() bool {
	return w.Start.After(w.End)
}

func (w WindowSpec) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

// PlacedAnnotation is an annotation resolved onto a week bucket: label
// already truncated, Slot giving its vertical stacking position.
type PlacedAnnotation struct {
	Date  time.Time
	Label string
	Slot  int
}

// WeekBucket is one complete Monday-Sunday week of aggregated traffic.
// WeekStart is always a Monday and Annotations is never nil.
type WeekBucket struct {
	WeekStart   time.Time
	Total       int
	Unique      int
	Annotations []PlacedAnnotation
}

// WeekEnd returns the bucket's Sunday.
func (b WeekBucket) WeekEnd() time.Time {
	return b.WeekStart.AddDate(0, 0, 6)
}

// ReportDate is the Monday after the week ends, where the bucket is
// plotted. Weekly metrics are only reported once the week is over.
func (b WeekBucket) ReportDate() time.Time {
	return b.WeekStart.AddDate(0, 0, 7)
}

// WeekStartOf returns the Monday of the week containing t, at UTC midnight.
func WeekStartOf(t time.Time) time.Time {
	day := utils.DayOf(t)
	delta := (int(day.Weekday()) - int(time.Monday) + 7) % 7
	return day.AddDate(0, 0, -delta)
}
