package dashboard

import (
	"context"
	"fmt"
)

// BestSellingProvider renders the top-products bar chart. The widget keeps
// its own range selector expressed as labels rather than codes, so the viewer
// range does not override it.
type BestSellingProvider struct {
	repo     TopSellingRepository
	analysis AnalysisRepository
	renderer *ChartRenderer
}

// NewBestSellingProvider wires a TopSellingRepository into a Provider. The
// analysis repository feeds the AI recommendation footer.
func NewBestSellingProvider(repo TopSellingRepository, analysis AnalysisRepository, renderer *ChartRenderer) Provider {
	if repo == nil {
		repo = DemoTopSellingRepository{}
	}
	if analysis == nil {
		analysis = DemoAnalysisRepository{}
	}
	if renderer == nil {
		renderer = NewChartRenderer()
	}
	return &BestSellingProvider{repo: repo, analysis: analysis, renderer: renderer}
}

// Fetch renders the best-selling products widget.
func (p *BestSellingProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}
	limit := intValue(cfg["limit"], 5)
	rangeLabel := stringValue(cfg["range_label"], "Last 6 Months")
	months := MonthsForRangeLabel(rangeLabel)

	items, err := p.repo.FetchTopSelling(ctx, TopSellingQuery{Limit: limit, Months: months})
	if err != nil {
		return nil, fmt.Errorf("best selling provider: %w", err)
	}

	title := translateOrFallback(ctx, meta.Translator, "dashboard.widget.nabung.widget.best_selling.title", meta.Viewer.Locale, "Produk Terlaris", nil)

	if len(items) == 0 {
		empty := translateOrFallback(ctx, meta.Translator, "dashboard.chart.empty", meta.Viewer.Locale, "Belum ada data untuk rentang ini.", nil)
		return WidgetData{
			"title":         title,
			"range_label":   rangeLabel,
			"empty":         true,
			"empty_message": empty,
		}, nil
	}

	xAxis := make([]string, len(items))
	points := make([]ChartPoint, len(items))
	ranking := make([]map[string]any, len(items))
	for i, item := range items {
		xAxis[i] = item.ItemName
		points[i] = ChartPoint{Label: item.ItemName, Value: item.TotalSold}
		ranking[i] = map[string]any{
			"rank":       i + 1,
			"name":       item.ItemName,
			"total_sold": item.TotalSold,
		}
	}

	spec := ChartSpec{
		XAxis: xAxis,
		Series: []ChartSeries{
			{Name: title, Points: points},
		},
		Theme: stringValue(cfg["theme"], ""),
	}

	cacheKey := fmt.Sprintf("%s:%s:%s", meta.Instance.DefinitionID, meta.Instance.ID, configHash(cfg))
	html, err := p.renderer.Bar(cacheKey, spec, meta.Viewer)
	if err != nil {
		return nil, fmt.Errorf("best selling provider: render: %w", err)
	}

	return WidgetData{
		"chart_html":  html,
		"chart_type":  "bar",
		"title":       title,
		"range_label": rangeLabel,
		"months":      months,
		"items":       ranking,
		"insight": insightFooter(ctx, p.analysis, meta, func(a DashboardAnalysis) string {
			return a.TopSellersRecommendation
		}),
	}, nil
}
