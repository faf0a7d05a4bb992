package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/per2jensen/clonepulse/internal/utils"
	"github.com/per2jensen/clonepulse/pkg/traffic"
	log "github.com/sirupsen/logrus"
)

// PlaceAnnotations attaches annotations to the buckets whose Monday-Sunday
// span contains them. Annotations with invalid or future dates are skipped
// with a warning, annotations outside the window are dropped, and labels
// longer than maxChars are truncated on a word boundary. Within a bucket,
// annotations are ordered by date then insertion order; Slot is the
// resulting vertical stacking position.
func PlaceAnnotations(buckets []WeekBucket, annotations []traffic.Annotation, window WindowSpec, now time.Time, maxChars int) {
	today := utils.DayOf(now)

	type datedAnnotation struct {
		date  time.Time
		label string
	}
	valid := make([]datedAnnotation, 0, len(annotations))
	for i, annotation := range annotations {
		date, err := time.Parse(traffic.DateFormat, annotation.Date)
		if err != nil {
			log.Warnf("Annotation %d has invalid date %q, skipping", i, annotation.Date)
			continue
		}
		day := utils.DayOf(date)
		if day.After(today) {
			log.Warnf("Annotation %d has future date (%s), skipping", i, annotation.Date)
			continue
		}
		valid = append(valid, datedAnnotation{date: day, label: annotation.Label})
	}

	inWindow := make([]datedAnnotation, 0, len(valid))
	for _, annotation := range valid {
		if window.Contains(annotation.date) {
			inWindow = append(inWindow, annotation)
		}
	}
	if dropped := len(valid) - len(inWindow); dropped > 0 {
		log.Infof("Skipping %d annotation(s) outside [%s .. %s]",
			dropped, window.Start.Format(traffic.DateFormat), window.End.Format(traffic.DateFormat))
	}

	// stable: same-date annotations keep their insertion order
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].date.Before(inWindow[j].date)
	})

	for i := range buckets {
		bucket := &buckets[i]
		for _, annotation := range inWindow {
			if annotation.date.Before(bucket.WeekStart) || annotation.date.After(bucket.WeekEnd()) {
				continue
			}
			bucket.Annotations = append(bucket.Annotations, PlacedAnnotation{
				Date:  annotation.date,
				Label: TruncateOnWordBoundary(annotation.label, maxChars),
				Slot:  len(bucket.Annotations),
			})
		}
	}
}

// TruncateOnWordBoundary shortens text to at most maxChars characters,
// cutting at the last whole-word boundary that leaves room for the "..."
// marker. A word is never split unless not even the first word fits.
// Characters are runes, not bytes, so multibyte labels are never cut
// mid-rune.
func TruncateOnWordBoundary(text string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	// no room for the marker, keep a bare prefix
	if maxChars <= 3 {
		return string(runes[:maxChars])
	}

	words := strings.Fields(text)
	kept := make([]string, 0, len(words))
	total := 0
	for _, word := range words {
		add := len([]rune(word))
		if len(kept) > 0 {
			add++ // joining space
		}
		if total+add > maxChars-3 {
			break
		}
		kept = append(kept, word)
		total += add
	}
	if len(kept) == 0 {
		return string(runes[:maxChars-3]) + "..."
	}
	return strings.Join(kept, " ") + "..."
}
