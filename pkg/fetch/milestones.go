package fetch

import "sort"

// Milestones is an immutable, ascending list of cumulative clone-count
// thresholds. Detection rescans the current total every run, so a
// milestone is never re-announced and no mutable counter is stored.
type Milestones struct {
	thresholds []int
}

func NewMilestones(thresholds []int) Milestones {
	sorted := make([]int, len(thresholds))
	copy(sorted, thresholds)
	sort.Ints(sorted)
	return Milestones{thresholds: sorted}
}

// Reached returns the highest threshold not exceeding total, and whether
// any threshold has been reached at all.
func (m Milestones) Reached(total int) (int, bool) {
	reached := 0
	for _, threshold := range m.thresholds {
		if threshold > total {
			break
		}
		reached = threshold
	}
	return reached, reached > 0
}
