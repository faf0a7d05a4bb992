package dashboard

import (
	"time"

	"github.com/per2jensen/clonepulse/internal/utils"
	"github.com/per2jensen/clonepulse/pkg/traffic"
)

// DefaultWeeks is the number of complete weeks shown when neither --start
// nor --year is given.
const DefaultWeeks = 12

// Params are the raw dashboard flags. Start is empty when unset, Year is
// zero when unset.
type Params struct {
	Start string
	Weeks int
	Year  int
}

// ResolveWindow turns the flags into a concrete WindowSpec.
//
// --year is mutually exclusive with --start/--weeks: when given, the
// others are ignored entirely, and the window spans every week whose
// Monday falls within that year. Otherwise the window is --weeks weeks
// from the Monday of --start's week, or the last --weeks complete weeks
// when --start is unset. The end is always clamped to the Sunday before
// the current week, so a partial week can never be requested.
func ResolveWindow(params Params, clock utils.Clock) (WindowSpec, error) {
	today := utils.Today(clock)
	currentMonday := WeekStartOf(today)
	lastSunday := currentMonday.AddDate(0, 0, -1)

	if params.Year != 0 {
		if params.Year > today.Year() {
			return WindowSpec{}, utils.NewValidationError("--year is in the future: %d", params.Year)
		}
		janFirst := time.Date(params.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		decLast := time.Date(params.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
		start := WeekStartOf(janFirst)
		if start.Before(janFirst) {
			start = start.AddDate(0, 0, 7)
		}
		end := WeekStartOf(decLast).AddDate(0, 0, 6)
		if end.After(lastSunday) {
			end = lastSunday
		}
		return WindowSpec{Start: start, End: end, Year: params.Year}, nil
	}

	if params.Weeks < 0 {
		return WindowSpec{}, utils.NewValidationError("--weeks must be non-negative. Got %d.", params.Weeks)
	}

	if params.Start != "" {
		startDate, err := time.Parse(traffic.DateFormat, params.Start)
		if err != nil {
			return WindowSpec{}, utils.NewValidationError("invalid --start date: %q", params.Start)
		}
		startDay := utils.DayOf(startDate)
		if startDay.After(today) {
			return WindowSpec{}, utils.NewValidationError("--start date is in the future: %s", params.Start)
		}
		start := WeekStartOf(startDay)
		end := start.AddDate(0, 0, params.Weeks*7-1)
		if end.After(lastSunday) {
			end = lastSunday
		}
		return WindowSpec{Start: start, End: end}, nil
	}

	start := currentMonday.AddDate(0, 0, -7*params.Weeks)
	return WindowSpec{Start: start, End: lastSunday}, nil
}
