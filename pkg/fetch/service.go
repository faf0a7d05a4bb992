package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/per2jensen/clonepulse/pkg/badge"
	"github.com/per2jensen/clonepulse/pkg/github"
	"github.com/per2jensen/clonepulse/pkg/traffic"
	log "github.com/sirupsen/logrus"
)

const (
	BadgeClonesFile    = "badge_clones.json"
	MilestoneBadgeFile = "milestone_badge.json"
)

// Service runs one fetch pass: pull the last 14 days of clone counts,
// upsert them into the record store, and refresh the badge descriptors.
type Service interface {
	Fetch(ctx context.Context, user string, repo string) error
}

type ServiceImpl struct {
	client     github.Client
	repo       traffic.Repository
	badges     badge.Writer
	milestones Milestones
	tokenEnv   string
	validate   *validator.Validate
}

func NewService(
	client github.Client,
	repo traffic.Repository,
	badges badge.Writer,
	milestones Milestones,
	tokenEnv string,
) *ServiceImpl {
	return &ServiceImpl{
		client:     client,
		repo:       repo,
		badges:     badges,
		milestones: milestones,
		tokenEnv:   tokenEnv,
		validate:   validator.New(),
	}
}

// clonesEntry is one raw daily element of the traffic payload. Count and
// Uniques are pointers so that missing or wrongly-typed fields fail
// validation instead of defaulting to zero.
type clonesEntry struct {
	Timestamp string `json:"timestamp" validate:"required"`
	Count     *int   `json:"count" validate:"required"`
	Uniques   *int   `json:"uniques" validate:"required"`
}

func (s *ServiceImpl) Fetch(ctx context.Context, user string, repo string) error {
	if err := github.ValidateName(user, "GitHub user"); err != nil {
		return err
	}
	if err := github.ValidateName(repo, "GitHub repo"); err != nil {
		return err
	}

	token := os.Getenv(s.tokenEnv)
	if token == "" {
		return fmt.Errorf("%s environment variable is not set", s.tokenEnv)
	}

	payload, err := s.client.FetchClones(ctx, user, repo, token)
	if err != nil {
		return fmt.Errorf("failed to fetch clone traffic for %s/%s: %w", user, repo, err)
	}

	if len(payload.Clones) == 0 {
		log.Warnf("No clone data returned for %s/%s, nothing to do", user, repo)
		return nil
	}

	snapshot, err := s.repo.LoadOrInit(ctx)
	if err != nil {
		return err
	}

	_, previousMax := snapshot.MaxDailyCount()

	records := s.decodeEntries(payload.Clones)
	for _, record := range records {
		snapshot.UpsertDaily(record)
	}
	snapshot.RecomputeTotals()

	s.recordDailyMax(&snapshot, previousMax)

	if err := s.repo.Store(ctx, snapshot); err != nil {
		return err
	}
	log.Infof("Stored %d daily records, total clones: %d (unique: %d)",
		len(snapshot.Daily), snapshot.TotalClones, snapshot.UniqueClones)

	return s.writeBadges(snapshot.TotalClones)
}

// decodeEntries decodes and validates the raw payload entries, skipping
// malformed ones so a single bad row never aborts the run.
func (s *ServiceImpl) decodeEntries(raw []json.RawMessage) []traffic.DailyRecord {
	records := make([]traffic.DailyRecord, 0, len(raw))
	for i, data := range raw {
		var entry clonesEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			log.Warnf("Skipping invalid entry %d: %v", i, err)
			continue
		}
		if err := s.validate.Struct(entry); err != nil {
			log.Warnf("Skipping invalid entry %d: %v", i, err)
			continue
		}
		timestamp, err := time.Parse(time.RFC3339, entry.Timestamp)
		if err != nil {
			log.Warnf("Skipping invalid entry %d: bad timestamp %q", i, entry.Timestamp)
			continue
		}
		if *entry.Count < 0 || *entry.Uniques < 0 {
			log.Warnf("Skipping invalid entry %d: negative counters", i)
			continue
		}
		records = append(records, traffic.DailyRecord{
			Timestamp: timestamp.UTC(),
			Count:     *entry.Count,
			Uniques:   *entry.Uniques,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records
}

// recordDailyMax appends a "Daily max" annotation when this run raised the
// all-time single-day maximum. Re-running with the same data changes
// nothing, keeping fetch runs idempotent.
func (s *ServiceImpl) recordDailyMax(snapshot *traffic.Snapshot, previousMax int) {
	maxDay, maxCount := snapshot.MaxDailyCount()
	if maxCount <= previousMax {
		return
	}
	annotation := traffic.Annotation{
		Date:  maxDay.Format(traffic.DateFormat),
		Label: fmt.Sprintf("Daily max: %d", maxCount),
	}
	if snapshot.AddAnnotation(annotation) {
		log.Infof("New daily max: %d clones on %s", maxCount, annotation.Date)
	}
}

func (s *ServiceImpl) writeBadges(totalClones int) error {
	countBadge := badge.Badge{
		Label:   "# clones",
		Message: strconv.Itoa(totalClones),
		Color:   "blue",
	}
	if err := s.badges.Write(BadgeClonesFile, countBadge); err != nil {
		return err
	}

	milestoneBadge := badge.Badge{
		Label:   "milestone",
		Message: "Coming soon...",
		Color:   "lightgrey",
	}
	if reached, ok := s.milestones.Reached(totalClones); ok {
		milestoneBadge.Message = fmt.Sprintf("🎉 %d clones", reached)
		milestoneBadge.Color = "gold"
	}
	return s.badges.Write(MilestoneBadgeFile, milestoneBadge)
}
