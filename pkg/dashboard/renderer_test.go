package dashboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestChartRenderer(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("should derive the label budget from the chart height", func(t *testing.T) {
		renderer := NewChartRenderer(1000, 500)

		// a third of 500px at 8px per character
		assert.Equal(t, 20, renderer.MaxLabelChars())
	})

	t.Run("should write a PNG file for a weekly chart", func(t *testing.T) {
		// given two buckets with a stacked annotation pair
		renderer := NewChartRenderer(1000, 500)
		path := filepath.Join(t.TempDir(), "weekly_clones.png")
		buckets := []WeekBucket{
			{
				WeekStart: monday,
				Total:     70,
				Unique:    35,
				Annotations: []PlacedAnnotation{
					{Date: monday.AddDate(0, 0, 1), Label: "Reddit post", Slot: 0},
					{Date: monday.AddDate(0, 0, 1), Label: "HN front page", Slot: 1},
				},
			},
			{WeekStart: monday.AddDate(0, 0, 7), Total: 90, Unique: 40, Annotations: make([]PlacedAnnotation, 0)},
		}

		// when
		err := renderer.RenderWeekly(buckets, path)

		// then
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Greater(t, len(data), len(pngMagic))
		assert.Equal(t, pngMagic, data[:len(pngMagic)])
	})

	t.Run("should render a chart with a single week bucket", func(t *testing.T) {
		// given the one complete week a store holds after its first full
		// week of collection
		renderer := NewChartRenderer(1000, 500)
		path := filepath.Join(t.TempDir(), "weekly_clones.png")
		buckets := []WeekBucket{
			{WeekStart: monday, Total: 70, Unique: 35, Annotations: make([]PlacedAnnotation, 0)},
		}

		err := renderer.RenderWeekly(buckets, path)

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Greater(t, len(data), len(pngMagic))
		assert.Equal(t, pngMagic, data[:len(pngMagic)])
	})

	t.Run("should create the output directory if missing", func(t *testing.T) {
		renderer := NewChartRenderer(400, 300)
		path := filepath.Join(t.TempDir(), "nested", "dir", "weekly_clones.png")
		buckets := []WeekBucket{
			{WeekStart: monday, Total: 12, Unique: 4, Annotations: make([]PlacedAnnotation, 0)},
		}

		err := renderer.RenderWeekly(buckets, path)

		require.NoError(t, err)
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("should refuse to render without buckets", func(t *testing.T) {
		renderer := NewChartRenderer(1000, 500)

		err := renderer.RenderWeekly(nil, filepath.Join(t.TempDir(), "weekly_clones.png"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no week buckets")
	})

	t.Run("should write a placeholder PNG with a multi-line message", func(t *testing.T) {
		renderer := NewChartRenderer(1000, 500)
		path := filepath.Join(t.TempDir(), "weekly_clones.png")

		err := renderer.RenderEmpty("Not enough data to generate a dashboard.\nOne week's data needed.", path)

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Greater(t, len(data), len(pngMagic))
		assert.Equal(t, pngMagic, data[:len(pngMagic)])
	})
}

func TestRollingMean(t *testing.T) {
	t.Run("should average over a trailing window with shorter leading periods", func(t *testing.T) {
		got := rollingMean([]float64{3, 6, 9, 12}, 3)

		assert.Equal(t, []float64{3, 4.5, 6, 9}, got)
	})

	t.Run("should pass a single value through unchanged", func(t *testing.T) {
		assert.Equal(t, []float64{5}, rollingMean([]float64{5}, 3))
	})
}
