package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/per2jensen/clonepulse/internal/utils"
	"github.com/per2jensen/clonepulse/pkg/traffic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRender(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	repo := traffic.NewRepositoryStub()
	renderer := newRendererStub()
	service := NewService(repo, renderer, "out/weekly_clones.png")
	service.clock = &utils.MockClock{FixedNow: now}

	setup := func() {
		repo.Cleanup()
		renderer.reset()
	}

	t.Run("should render weekly chart for two complete weeks", func(t *testing.T) {
		// given 14 days of data covering two complete weeks
		setup()
		repo.SetSnapshot(traffic.Snapshot{Daily: dailySeries(monday, 14, 10, 5)})

		// when
		err := service.Render(ctx, Params{Weeks: DefaultWeeks})

		// then
		require.NoError(t, err)
		require.Len(t, renderer.weeklyBuckets, 2)
		assert.Equal(t, "out/weekly_clones.png", renderer.weeklyPath)
		assert.Empty(t, renderer.emptyMessages)
	})

	t.Run("should render placeholder when the store is missing", func(t *testing.T) {
		setup()

		err := service.Render(ctx, Params{Weeks: DefaultWeeks})

		require.NoError(t, err)
		require.Len(t, renderer.emptyMessages, 1)
		assert.Equal(t, "Not enough data to generate a dashboard.\nOne week's data needed.", renderer.emptyMessages[0])
	})

	t.Run("should render placeholder when fewer than seven days exist", func(t *testing.T) {
		setup()
		repo.SetSnapshot(traffic.Snapshot{Daily: dailySeries(monday, 6, 10, 5)})

		err := service.Render(ctx, Params{Weeks: DefaultWeeks})

		require.NoError(t, err)
		require.Len(t, renderer.emptyMessages, 1)
		assert.Equal(t, "Not enough data to generate a dashboard.\nOne week's data needed.", renderer.emptyMessages[0])
		assert.Empty(t, renderer.weeklyBuckets)
	})

	t.Run("should render year placeholder when the year has no data", func(t *testing.T) {
		// given data in 2025 only
		setup()
		repo.SetSnapshot(traffic.Snapshot{Daily: dailySeries(monday, 14, 10, 5)})

		err := service.Render(ctx, Params{Year: 2024})

		require.NoError(t, err)
		require.Len(t, renderer.emptyMessages, 1)
		assert.Equal(t, "No data for year 2024.", renderer.emptyMessages[0])
	})

	t.Run("should render window placeholder when the window has no data", func(t *testing.T) {
		setup()
		repo.SetSnapshot(traffic.Snapshot{Daily: dailySeries(monday, 14, 10, 5)})

		err := service.Render(ctx, Params{Start: "2025-03-03", Weeks: 2})

		require.NoError(t, err)
		require.Len(t, renderer.emptyMessages, 1)
		assert.Equal(t, "No data in the selected window.", renderer.emptyMessages[0])
	})

	t.Run("should attach truncated annotations to the rendered buckets", func(t *testing.T) {
		setup()
		repo.SetSnapshot(traffic.Snapshot{
			Daily: dailySeries(monday, 14, 10, 5),
			Annotations: []traffic.Annotation{
				{Date: "2025-06-03", Label: "Mentioned in a very long newsletter roundup"},
			},
		})

		err := service.Render(ctx, Params{Weeks: DefaultWeeks})

		require.NoError(t, err)
		require.Len(t, renderer.weeklyBuckets, 2)
		require.Len(t, renderer.weeklyBuckets[0].Annotations, 1)
		placed := renderer.weeklyBuckets[0].Annotations[0]
		assert.LessOrEqual(t, len(placed.Label), renderer.maxChars)
		assert.Contains(t, placed.Label, "...")
	})

	t.Run("should propagate flag validation errors", func(t *testing.T) {
		setup()
		repo.SetSnapshot(traffic.Snapshot{Daily: dailySeries(monday, 14, 10, 5)})

		err := service.Render(ctx, Params{Weeks: -1})

		var validationErr *utils.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "--weeks must be non-negative. Got -1.", validationErr.Message)
		assert.Empty(t, renderer.emptyMessages)
	})

	t.Run("should reject invalid flags even when the store is empty", func(t *testing.T) {
		// given no stored data at all
		setup()

		err := service.Render(ctx, Params{Weeks: -1})

		// then validation wins over the not-enough-data placeholder
		var validationErr *utils.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "--weeks must be non-negative. Got -1.", validationErr.Message)
		assert.Empty(t, renderer.emptyMessages)
		assert.Empty(t, renderer.weeklyBuckets)
	})

	t.Run("should reject a future start date even when the store is small", func(t *testing.T) {
		// given fewer than seven days of data
		setup()
		repo.SetSnapshot(traffic.Snapshot{Daily: dailySeries(monday, 3, 10, 5)})

		err := service.Render(ctx, Params{Start: "2025-07-01", Weeks: 2})

		var validationErr *utils.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "--start date is in the future: 2025-07-01", validationErr.Message)
		assert.Empty(t, renderer.emptyMessages)
	})

	t.Run("should reject a store with future timestamps", func(t *testing.T) {
		setup()
		daily := dailySeries(monday, 7, 10, 5)
		daily = append(daily, traffic.DailyRecord{Timestamp: now.AddDate(0, 0, 5), Count: 1, Uniques: 1})
		repo.SetSnapshot(traffic.Snapshot{Daily: daily})

		err := service.Render(ctx, Params{Weeks: DefaultWeeks})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "timestamp is in the future")
	})

	t.Run("should reject a store with negative counters", func(t *testing.T) {
		setup()
		daily := dailySeries(monday, 7, 10, 5)
		daily[3].Count = -2
		repo.SetSnapshot(traffic.Snapshot{Daily: daily})

		err := service.Render(ctx, Params{Weeks: DefaultWeeks})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid count")
	})
}
