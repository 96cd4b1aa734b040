package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	defaultChartHeight = "360px"
	// ECharts JS is served from the public assets mirror rather than being
	// embedded into the binary.
	defaultChartAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"
)

var sharedChartCache = NewChartCache(5 * time.Minute)

// ThemeResolver selects a chart theme per viewer.
type ThemeResolver func(ViewerContext) string

// ChartSeries is one legend entry worth of values.
type ChartSeries struct {
	Name   string
	Points []ChartPoint
	// Dashed renders the series with a dashed line style. Only line charts
	// honor it; forecast scenarios use it to stand apart from history.
	Dashed bool
}

// ChartPoint is an individual value. A nil Value renders as a gap, which is
// how forecast series skip the historical months.
type ChartPoint struct {
	Label string
	Value any
}

// ChartSpec carries everything needed to render one chart.
type ChartSpec struct {
	Title    string
	Subtitle string
	XAxis    []string
	Series   []ChartSeries
	Theme    string
}

// ChartRenderer produces server-side go-echarts HTML fragments. Widget
// providers own the data shaping; the renderer owns theming, caching, and
// markup.
type ChartRenderer struct {
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartThemeResolver resolves themes dynamically per viewer.
func WithChartThemeResolver(resolver ThemeResolver) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.themeResolver = resolver
	}
}

// WithChartAssetsHost overrides the host ECharts JS loads from.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with the shared in-process cache.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache:      sharedChartCache,
		theme:      types.ThemeWesteros,
		assetsHost: defaultChartAssetsHost,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Bar renders a vertical bar chart.
func (r *ChartRenderer) Bar(cacheKey string, spec ChartSpec, viewer ViewerContext) (string, error) {
	return r.cached(cacheKey, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalChartOptions(spec, viewer)...)
		bar.SetXAxis(spec.XAxis)
		for _, s := range spec.Series {
			bar.AddSeries(s.Name, toBarData(s.Points))
		}
		return renderChart(bar)
	})
}

// Line renders a smooth line chart. Dashed series keep their line style.
func (r *ChartRenderer) Line(cacheKey string, spec ChartSpec, viewer ViewerContext) (string, error) {
	return r.cached(cacheKey, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalChartOptions(spec, viewer)...)
		line.SetXAxis(spec.XAxis)
		for _, s := range spec.Series {
			seriesOpts := []charts.SeriesOpts{
				charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			}
			if s.Dashed {
				seriesOpts = append(seriesOpts, charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
			}
			line.AddSeries(s.Name, toLineData(s.Points), seriesOpts...)
		}
		return renderChart(line)
	})
}

// Pie renders a pie chart from the first series.
func (r *ChartRenderer) Pie(cacheKey string, spec ChartSpec, viewer ViewerContext) (string, error) {
	return r.cached(cacheKey, func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalChartOptions(spec, viewer)...)
		for _, s := range spec.Series {
			pie.AddSeries(s.Name, toPieData(s.Points))
		}
		return renderChart(pie)
	})
}

func (r *ChartRenderer) cached(key string, render func() (string, error)) (string, error) {
	if r.cache == nil || key == "" {
		return render()
	}
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) globalChartOptions(spec ChartSpec, viewer ViewerContext) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.resolveTheme(viewer, spec.Theme),
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: spec.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(true)}),
	}
}

func (r *ChartRenderer) resolveTheme(viewer ViewerContext, override string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	if r.themeResolver != nil {
		if theme := r.themeResolver(viewer); theme != "" {
			return theme
		}
	}
	if r.theme != "" {
		return r.theme
	}
	return types.ThemeWesteros
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: point.Value,
		}
	}
	return data
}

// Config value helpers shared by the widget providers.

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func intValue(v any, fallback int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func float64Value(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return 0
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	case int:
		return val != 0
	case int64:
		return val != 0
	default:
		return false
	}
}
