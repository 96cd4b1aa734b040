package dashboard

import (
	"context"
	"fmt"
)

// RevenueChartProvider renders the monthly revenue bar chart for the active
// time range.
type RevenueChartProvider struct {
	repo     RevenueRepository
	analysis AnalysisRepository
	renderer *ChartRenderer
}

// NewRevenueChartProvider wires a RevenueRepository into a Provider. The
// analysis repository feeds the AI insight footer.
func NewRevenueChartProvider(repo RevenueRepository, analysis AnalysisRepository, renderer *ChartRenderer) Provider {
	if repo == nil {
		repo = DemoRevenueRepository{}
	}
	if analysis == nil {
		analysis = DemoAnalysisRepository{}
	}
	if renderer == nil {
		renderer = NewChartRenderer()
	}
	return &RevenueChartProvider{repo: repo, analysis: analysis, renderer: renderer}
}

// Fetch renders the revenue chart widget.
func (p *RevenueChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}
	rangeCode := stringValue(cfg["range"], meta.TimeRange)
	if rangeCode == "" {
		rangeCode = RangeLast12Month
	}
	if meta.TimeRange != "" {
		rangeCode = meta.TimeRange
	}
	months := MonthsForRange(rangeCode)

	report, err := p.repo.FetchRevenue(ctx, RevenueQuery{Months: months})
	if err != nil {
		return nil, fmt.Errorf("revenue chart provider: %w", err)
	}

	series := BuildRevenueSeries(report.Monthly)
	title := translateOrFallback(ctx, meta.Translator, "dashboard.widget.nabung.widget.revenue_chart.title", meta.Viewer.Locale, "Pendapatan Bulanan", nil)

	if len(series) == 0 {
		empty := translateOrFallback(ctx, meta.Translator, "dashboard.chart.empty", meta.Viewer.Locale, "Belum ada data untuk rentang ini.", nil)
		return WidgetData{
			"title":         title,
			"range":         rangeCode,
			"empty":         true,
			"empty_message": empty,
		}, nil
	}

	xAxis := make([]string, len(series))
	points := make([]ChartPoint, len(series))
	for i, point := range series {
		xAxis[i] = FormatMonthLabel(point.Month)
		points[i] = ChartPoint{Label: xAxis[i], Value: point.Revenue}
	}

	spec := ChartSpec{
		Title: title,
		XAxis: xAxis,
		Series: []ChartSeries{
			{Name: title, Points: points},
		},
		Theme: stringValue(cfg["theme"], ""),
	}
	if !boolValue(cfg["show_chart_title"]) {
		spec.Title = ""
	}

	cacheKey := fmt.Sprintf("%s:%s:%s:%s", meta.Instance.DefinitionID, meta.Instance.ID, rangeCode, configHash(cfg))
	html, err := p.renderer.Bar(cacheKey, spec, meta.Viewer)
	if err != nil {
		return nil, fmt.Errorf("revenue chart provider: render: %w", err)
	}

	data := WidgetData{
		"chart_html":    html,
		"chart_type":    "bar",
		"title":         title,
		"range":         rangeCode,
		"total_revenue": FormatRupiah(report.TotalRevenue),
		"months":        months,
	}
	if note := stringValue(cfg["footer_note"], ""); note != "" {
		data["footer_note"] = note
	}
	// a failed insight fetch degrades to placeholder copy, never the widget
	data["insight"] = insightFooter(ctx, p.analysis, meta, func(a DashboardAnalysis) string {
		return a.RevenueInsights
	})
	return data, nil
}

// insightFooter resolves the AI footer line for a chart widget. Errors and
// blank responses fall back to the unavailable message.
func insightFooter(ctx context.Context, repo AnalysisRepository, meta WidgetContext, pick func(DashboardAnalysis) string) string {
	fallback := translateOrFallback(ctx, meta.Translator, "dashboard.insight.unavailable", meta.Viewer.Locale, "Wawasan AI belum tersedia.", nil)
	if repo == nil {
		return fallback
	}
	analysis, err := repo.FetchAnalysis(ctx, stringValue(meta.Instance.Configuration["location"], ""))
	if err != nil {
		return fallback
	}
	if text := pick(analysis); text != "" {
		return text
	}
	return fallback
}
