package dashboard

import (
	"context"
	"fmt"
)

// CashflowForecastProvider renders the historical revenue line plus the
// two-month scenario forecast from the insights endpoint.
type CashflowForecastProvider struct {
	repo     InsightsRepository
	renderer *ChartRenderer
}

// NewCashflowForecastProvider wires an InsightsRepository into a Provider.
func NewCashflowForecastProvider(repo InsightsRepository, renderer *ChartRenderer) Provider {
	if repo == nil {
		repo = DemoInsightsRepository{}
	}
	if renderer == nil {
		renderer = NewChartRenderer()
	}
	return &CashflowForecastProvider{repo: repo, renderer: renderer}
}

// Fetch renders the cashflow forecast widget.
func (p *CashflowForecastProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}

	insights, err := p.repo.FetchInsights(ctx)
	if err != nil {
		return nil, fmt.Errorf("cashflow forecast provider: %w", err)
	}

	series := BuildCashflowSeries(insights.Monthly, insights.Forecast)
	title := translateOrFallback(ctx, meta.Translator, "dashboard.widget.nabung.widget.cashflow_forecast.title", meta.Viewer.Locale, "Prediksi Arus Kas", nil)

	if len(series) == 0 {
		empty := translateOrFallback(ctx, meta.Translator, "dashboard.chart.empty", meta.Viewer.Locale, "Belum ada data untuk rentang ini.", nil)
		return WidgetData{
			"title":         title,
			"empty":         true,
			"empty_message": empty,
		}, nil
	}

	actualName := translateOrFallback(ctx, meta.Translator, "dashboard.historical.label", meta.Viewer.Locale, "Aktual", nil)
	xAxis := make([]string, len(series))
	actual := make([]ChartPoint, len(series))
	optimistic := make([]ChartPoint, len(series))
	baseline := make([]ChartPoint, len(series))
	pessimistic := make([]ChartPoint, len(series))
	for i, point := range series {
		label := FormatMonthLabel(point.Month)
		xAxis[i] = label
		actual[i] = ChartPoint{Label: label, Value: deref(point.Actual)}
		optimistic[i] = ChartPoint{Label: label, Value: deref(point.Optimistic)}
		baseline[i] = ChartPoint{Label: label, Value: deref(point.Baseline)}
		pessimistic[i] = ChartPoint{Label: label, Value: deref(point.Pessimistic)}
	}

	spec := ChartSpec{
		XAxis: xAxis,
		Series: []ChartSeries{
			{Name: actualName, Points: actual},
			{Name: "Optimis", Points: optimistic, Dashed: true},
			{Name: "Normal", Points: baseline, Dashed: true},
			{Name: "Pesimis", Points: pessimistic, Dashed: true},
		},
		Theme: stringValue(cfg["theme"], ""),
	}
	if boolValue(cfg["show_chart_title"]) {
		spec.Title = title
	}

	cacheKey := fmt.Sprintf("%s:%s:%s", meta.Instance.DefinitionID, meta.Instance.ID, configHash(cfg))
	html, err := p.renderer.Line(cacheKey, spec, meta.Viewer)
	if err != nil {
		return nil, fmt.Errorf("cashflow forecast provider: render: %w", err)
	}

	return WidgetData{
		"chart_html":   html,
		"chart_type":   "line",
		"title":        title,
		"trend":        insights.TrendAnalytics,
		"tips":         insights.Tips,
		"total_profit": FormatRupiah(insights.TotalProfit),
		// retry button target; the refresh endpoint re-fetches this instance
		"retry_widget_id": meta.Instance.ID,
	}, nil
}

// deref keeps nil as nil so absent scenario values render as gaps.
func deref(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
