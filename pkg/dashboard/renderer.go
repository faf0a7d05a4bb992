package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/per2jensen/clonepulse/pkg/traffic"
	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// labelPixelsPerChar approximates the vertical room a rotated annotation
// label character takes; with a third of the chart height reserved for
// labels this yields the safe character budget.
const labelPixelsPerChar = 8

// rollingWindow is the span of the smoothed companion series.
const rollingWindow = 3

// Renderer produces the dashboard PNG artifacts.
type Renderer interface {
	// MaxLabelChars is the annotation label budget for this chart size.
	MaxLabelChars() int
	// RenderWeekly draws the weekly chart for a non-empty bucket sequence.
	RenderWeekly(buckets []WeekBucket, path string) error
	// RenderEmpty draws a placeholder chart carrying only a message.
	RenderEmpty(message string, path string) error
}

// ChartRenderer renders with go-chart. Each bucket is plotted on its
// report date (the Monday after the week ends) with totals, uniques and
// their 3-week rolling means; annotations appear as dotted vertical lines
// with labels stacked below the top of the chart.
type ChartRenderer struct {
	width  int
	height int
}

func NewChartRenderer(width int, height int) *ChartRenderer {
	return &ChartRenderer{width: width, height: height}
}

func (r *ChartRenderer) MaxLabelChars() int {
	return r.height / 3 / labelPixelsPerChar
}

func (r *ChartRenderer) RenderWeekly(buckets []WeekBucket, path string) error {
	if len(buckets) == 0 {
		return fmt.Errorf("no week buckets to render")
	}

	reportDates := make([]time.Time, len(buckets))
	totals := make([]float64, len(buckets))
	uniques := make([]float64, len(buckets))
	for i, bucket := range buckets {
		reportDates[i] = bucket.ReportDate()
		totals[i] = float64(bucket.Total)
		uniques[i] = float64(bucket.Unique)
	}

	maxY := 10.0
	for _, v := range totals {
		if v > maxY {
			maxY = v
		}
	}
	maxY *= 1.15

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Total Clones",
			XValues: reportDates,
			YValues: totals,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				DotColor:    chart.ColorBlue,
				DotWidth:    4,
			},
		},
		chart.TimeSeries{
			Name:    "Total Clones (3w Avg)",
			XValues: reportDates,
			YValues: rollingMean(totals, rollingWindow),
			Style: chart.Style{
				StrokeColor:     chart.ColorBlue.WithAlpha(120),
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
		chart.TimeSeries{
			Name:    "Unique Clones",
			XValues: reportDates,
			YValues: uniques,
			Style: chart.Style{
				StrokeColor: chart.ColorGreen,
				DotColor:    chart.ColorGreen,
				DotWidth:    4,
			},
		},
		chart.TimeSeries{
			Name:    "Unique Clones (3w Avg)",
			XValues: reportDates,
			YValues: rollingMean(uniques, rollingWindow),
			Style: chart.Style{
				StrokeColor:     chart.ColorGreen.WithAlpha(120),
				StrokeDashArray: []float64{2.0, 2.0},
			},
		},
	}
	series = append(series, annotationSeries(buckets, maxY)...)

	ticks := make([]chart.Tick, len(reportDates))
	for i, date := range reportDates {
		ticks[i] = chart.Tick{
			Value: chart.TimeToFloat64(date),
			Label: date.Format(traffic.DateFormat),
		}
	}

	// pad the x-range by a few days on each side; a single report date
	// would otherwise span zero width, which the chart cannot draw
	xMin := chart.TimeToFloat64(reportDates[0].AddDate(0, 0, -3))
	xMax := chart.TimeToFloat64(reportDates[len(reportDates)-1].AddDate(0, 0, 3))

	graph := chart.Chart{
		Title:  "Weekly Clone Metrics (Reported on Following Monday)",
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 15, Right: 15},
		},
		XAxis: chart.XAxis{
			Name:  "Reporting Date (Monday after week ends)",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: ticks,
			TickStyle: chart.Style{
				TextRotationDegrees: 45,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: chart.ColorLightGray,
				StrokeWidth: 1.0,
			},
		},
		YAxis: chart.YAxis{
			Name:  "Clones",
			Range: &chart.ContinuousRange{Min: 0, Max: maxY},
			GridMajorStyle: chart.Style{
				StrokeColor: chart.ColorLightGray,
				StrokeWidth: 1.0,
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	file, err := r.createOutput(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// annotationSeries builds a dotted vertical line per annotated date plus
// the stacked labels, placed downward from 97% chart height by slot.
func annotationSeries(buckets []WeekBucket, maxY float64) []chart.Series {
	var series []chart.Series
	var labels []chart.Value2

	labelTop := maxY * 0.97
	slotStep := maxY * 0.07

	seenDates := make(map[time.Time]bool)
	for _, bucket := range buckets {
		for _, annotation := range bucket.Annotations {
			if !seenDates[annotation.Date] {
				seenDates[annotation.Date] = true
				x := chart.TimeToFloat64(annotation.Date)
				series = append(series, chart.ContinuousSeries{
					XValues: []float64{x, x},
					YValues: []float64{0, maxY},
					Style: chart.Style{
						StrokeColor:     chart.ColorAlternateGray,
						StrokeDashArray: []float64{2.0, 2.0},
						StrokeWidth:     1.0,
					},
				})
			}
			labels = append(labels, chart.Value2{
				XValue: chart.TimeToFloat64(annotation.Date),
				YValue: labelTop - float64(annotation.Slot)*slotStep,
				Label:  annotation.Label,
			})
		}
	}

	if len(labels) > 0 {
		series = append(series, chart.AnnotationSeries{
			Annotations: labels,
			Style: chart.Style{
				FontSize:    9,
				FontColor:   chart.ColorAlternateGray,
				StrokeColor: chart.ColorAlternateGray,
			},
		})
	}
	return series
}

func (r *ChartRenderer) RenderEmpty(message string, path string) error {
	renderer, err := chart.PNG(r.width, r.height)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	renderer.SetFont(font)
	renderer.SetFontSize(14)
	renderer.SetFontColor(drawing.ColorFromHex("808080"))

	lines := strings.Split(message, "\n")
	lineHeight := 24
	y := r.height/2 - lineHeight*(len(lines)-1)/2
	for _, line := range lines {
		box := renderer.MeasureText(line)
		renderer.Text(line, (r.width-box.Width())/2, y)
		y += lineHeight
	}

	file, err := r.createOutput(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := renderer.Save(file); err != nil {
		return fmt.Errorf("failed to save empty dashboard: %w", err)
	}
	log.Info("Empty dashboard generated (no plottable data).")
	return nil
}

func (r *ChartRenderer) createOutput(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return file, nil
}

// rollingMean is the trailing mean over up to window values, mirroring a
// rolling mean with a minimum period of one.
func rollingMean(values []float64, window int) []float64 {
	means := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for j := start; j <= i; j++ {
			sum += values[j]
		}
		means[i] = sum / float64(i-start+1)
	}
	return means
}
