package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Tone classifies a metric for the template layer, which maps it to colors.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneInfo     Tone = "info"
	ToneWarning  Tone = "warning"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// StatusTone maps a cashflow status grade to a display tone. Grades come from
// the AI analysis endpoint and are matched case-insensitively.
func StatusTone(status string) Tone {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "EXCELLENT", "OUTSTANDING":
		return TonePositive
	case "GOOD":
		return ToneInfo
	case "FAIR":
		return ToneWarning
	case "POOR", "NEGATIVE":
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// ForecastTone grades a sales forecast by the first integer found in the
// text. Above 100 units reads as strong, above 50 as solid, any growth as
// cautious, and the rest as negative.
func ForecastTone(forecast string) Tone {
	value, ok := firstInteger(forecast)
	if !ok {
		return ToneNeutral
	}
	switch {
	case value > 100:
		return TonePositive
	case value > 50:
		return ToneInfo
	case value > 0:
		return ToneWarning
	default:
		return ToneNegative
	}
}

func firstInteger(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start >= 0 {
		n, err := strconv.Atoi(s[start:])
		return n, err == nil
	}
	return 0, false
}

// SectionCardsProvider fetches the revenue summary, order count, and AI
// analysis concurrently and shapes them into the four summary cards. A failed
// source degrades only the cards it backs; the rest render normally.
type SectionCardsProvider struct {
	revenue  RevenueRepository
	orders   OrdersSummaryRepository
	analysis AnalysisRepository
}

// NewSectionCardsProvider wires the card repositories into a Provider.
func NewSectionCardsProvider(revenue RevenueRepository, orders OrdersSummaryRepository, analysis AnalysisRepository) Provider {
	if revenue == nil {
		revenue = DemoRevenueRepository{}
	}
	if orders == nil {
		orders = DemoOrdersSummaryRepository{}
	}
	if analysis == nil {
		analysis = DemoAnalysisRepository{}
	}
	return &SectionCardsProvider{revenue: revenue, orders: orders, analysis: analysis}
}

// Fetch assembles the summary card payload.
func (p *SectionCardsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}
	months := intValue(cfg["months"], 0)
	if months <= 0 {
		months = MonthsForRange(meta.TimeRange)
	}
	location := stringValue(cfg["location"], "Indonesia")

	var (
		report      RevenueReport
		summary     OrdersSummary
		analysis    DashboardAnalysis
		revenueErr  error
		ordersErr   error
		analysisErr error
	)
	// One slow or down source degrades only its own cards, so the goroutines
	// record their errors instead of cancelling each other.
	var group errgroup.Group
	group.Go(func() error {
		report, revenueErr = p.revenue.FetchRevenue(ctx, RevenueQuery{Months: months})
		return nil
	})
	group.Go(func() error {
		summary, ordersErr = p.orders.FetchOrdersSummary(ctx, months)
		return nil
	})
	group.Go(func() error {
		analysis, analysisErr = p.analysis.FetchAnalysis(ctx, location)
		return nil
	})
	_ = group.Wait()

	revenueTitle := translateOrFallback(ctx, meta.Translator, "dashboard.cards.revenue", meta.Viewer.Locale, "Total Pendapatan", nil)
	profitTitle := translateOrFallback(ctx, meta.Translator, "dashboard.cards.profit", meta.Viewer.Locale, "Laba Bersih", nil)
	ordersTitle := translateOrFallback(ctx, meta.Translator, "dashboard.cards.orders", meta.Viewer.Locale, "Total Transaksi", nil)
	forecastTitle := translateOrFallback(ctx, meta.Translator, "dashboard.cards.forecast", meta.Viewer.Locale, "Prediksi Bulan Depan", nil)
	unavailable := translateOrFallback(ctx, meta.Translator, "dashboard.error.fetch", meta.Viewer.Locale, "Gagal memuat data. Coba lagi.", nil)

	revenueCard := map[string]any{
		"key":   "revenue",
		"title": revenueTitle,
		"value": FormatRupiah(report.TotalRevenue),
		"tone":  string(ToneInfo),
	}
	if revenueErr != nil {
		revenueCard["value"] = unavailable
		revenueCard["tone"] = string(ToneNeutral)
		revenueCard["error"] = true
	}

	ordersCard := map[string]any{
		"key":   "orders",
		"title": ordersTitle,
		"value": FormatCount(summary.TotalOrders),
		"tone":  string(ToneNeutral),
	}
	if ordersErr != nil {
		ordersCard["value"] = unavailable
		ordersCard["error"] = true
	}

	profitCard := map[string]any{
		"key":      "profit",
		"title":    profitTitle,
		"value":    FormatRupiah(analysis.Cashflow.CleanProfit),
		"subtitle": fmt.Sprintf("Margin %.1f%%", analysis.Cashflow.ProfitMargin),
		"tone":     string(StatusTone(analysis.Cashflow.Status)),
		"detail":   analysis.Cashflow.StatusMessage,
	}
	forecastText := analysis.SalesForecastNextMonth
	forecastCard := map[string]any{
		"key":    "forecast",
		"title":  forecastTitle,
		"value":  forecastText,
		"tone":   string(ForecastTone(forecastText)),
		"detail": analysis.RevenueInsights,
	}
	if analysisErr != nil {
		profitCard = map[string]any{
			"key":   "profit",
			"title": profitTitle,
			"value": unavailable,
			"tone":  string(ToneNeutral),
			"error": true,
		}
		forecastCard = map[string]any{
			"key":   "forecast",
			"title": forecastTitle,
			"value": unavailable,
			"tone":  string(ToneNeutral),
			"error": true,
		}
	}

	cards := []map[string]any{revenueCard, profitCard, ordersCard, forecastCard}

	return WidgetData{
		"cards":    cards,
		"months":   months,
		"location": location,
	}, nil
}
