package admin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer produces server-side go-echarts markup for the analytics
// sections. Rendering goes through a TTL cache keyed by the chart's input
// data, so a data change always misses.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the ECharts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with the shared cache and default theme.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// ChartPoint is a labeled value plotted in pie and bar charts.
type ChartPoint struct {
	Label string
	Value float64
}

// Pie renders a pie chart for the given points.
func (r *ChartRenderer) Pie(title string, points []ChartPoint) (string, error) {
	return r.cached("pie", title, points, func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalChartOptions(title)...)
		pie.AddSeries(title, toPieData(points))
		return renderChart(pie)
	})
}

// Bar renders a bar chart for the given points.
func (r *ChartRenderer) Bar(title string, points []ChartPoint) (string, error) {
	return r.cached("bar", title, points, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalChartOptions(title)...)
		bar.SetXAxis(pointLabels(points))
		bar.AddSeries(title, toBarData(points))
		return renderChart(bar)
	})
}

// Line renders a smooth line chart over the given x axis.
func (r *ChartRenderer) Line(title string, xAxis []string, values []float64) (string, error) {
	input := struct {
		Axis   []string
		Values []float64
	}{xAxis, values}
	return r.cached("line", title, input, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalChartOptions(title)...)
		line.SetXAxis(xAxis)
		line.AddSeries(title, toLineData(values))
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	})
}

func (r *ChartRenderer) cached(kind, title string, input any, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s", kind, title, seriesHash(input))
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) globalChartOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		data[i] = opts.PieData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toLineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, value := range values {
		data[i] = opts.LineData{Value: value}
	}
	return data
}

func pointLabels(points []ChartPoint) []string {
	labels := make([]string, len(points))
	for i, point := range points {
		labels[i] = point.Label
	}
	return labels
}

// NewLanguageChartProvider renders the session language distribution as a pie
// chart alongside the raw counts.
func NewLanguageChartProvider(analytics *Analytics, renderer *ChartRenderer) SectionProvider {
	return SectionProviderFunc(func(ctx context.Context) (SectionData, error) {
		distribution, err := analytics.LanguageDistribution(ctx)
		if err != nil {
			return nil, err
		}
		if len(distribution) == 0 {
			return SectionData{"empty": true, "message": "No session data yet"}, nil
		}
		points := make([]ChartPoint, len(distribution))
		rows := make([]map[string]any, len(distribution))
		for i, entry := range distribution {
			points[i] = ChartPoint{Label: entry.Language.Label(), Value: float64(entry.Count)}
			rows[i] = map[string]any{
				"language": string(entry.Language),
				"label":    entry.Language.Label(),
				"count":    entry.Count,
			}
		}
		html, err := renderer.Pie("Sessions by Language", points)
		if err != nil {
			return nil, fmt.Errorf("admin: render language chart: %w", err)
		}
		return SectionData{
			"distribution": rows,
			"chart_html":   html,
			"chart_type":   "pie",
		}, nil
	})
}

// NewMessageTimelineProvider renders messages per UTC day as a line chart.
func NewMessageTimelineProvider(analytics *Analytics, renderer *ChartRenderer) SectionProvider {
	return SectionProviderFunc(func(ctx context.Context) (SectionData, error) {
		series, err := analytics.MessagesOverTime(ctx)
		if err != nil {
			return nil, err
		}
		if len(series) == 0 {
			return SectionData{"empty": true, "message": "No message data yet"}, nil
		}
		dates := make([]string, len(series))
		values := make([]float64, len(series))
		rows := make([]map[string]any, len(series))
		for i, bucket := range series {
			dates[i] = bucket.Date
			values[i] = float64(bucket.Count)
			rows[i] = map[string]any{"date": bucket.Date, "count": bucket.Count}
		}
		html, err := renderer.Line("Messages Over Time", dates, values)
		if err != nil {
			return nil, fmt.Errorf("admin: render message timeline: %w", err)
		}
		return SectionData{
			"series":     rows,
			"chart_html": html,
			"chart_type": "line",
		}, nil
	})
}

// NewScenarioMatchChartProvider augments the match distribution with a bar
// chart of match counts per scenario title.
func NewScenarioMatchChartProvider(analytics *Analytics, renderer *ChartRenderer) SectionProvider {
	base := NewScenarioMatchesProvider(analytics)
	return SectionProviderFunc(func(ctx context.Context) (SectionData, error) {
		data, err := base.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		rows, ok := data["matches"].([]map[string]any)
		if !ok || len(rows) == 0 {
			return data, nil
		}
		points := make([]ChartPoint, len(rows))
		for i, row := range rows {
			points[i] = ChartPoint{
				Label: row["title"].(string),
				Value: float64(row["count"].(int)),
			}
		}
		html, err := renderer.Bar("Scenario Matches", points)
		if err != nil {
			return nil, fmt.Errorf("admin: render scenario match chart: %w", err)
		}
		data["chart_html"] = html
		data["chart_type"] = "bar"
		return data, nil
	})
}
