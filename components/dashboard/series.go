package dashboard

import (
	"sort"
	"time"
)

// RevenuePoint is a single month of revenue, chart-ready.
type RevenuePoint struct {
	Month   string
	Revenue float64
}

// BuildRevenueSeries converts the backend month->revenue association into a
// chronological series. Month keys use the zero-padded "YYYY-MM" layout, so a
// lexicographic sort is also chronological.
func BuildRevenueSeries(monthly map[string]float64) []RevenuePoint {
	points := make([]RevenuePoint, 0, len(monthly))
	for month, revenue := range monthly {
		points = append(points, RevenuePoint{Month: month, Revenue: revenue})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Month < points[j].Month
	})
	return points
}

// ForecastPointKind distinguishes historical, transition, and forecast points
// within a cashflow series.
type ForecastPointKind string

const (
	PointHistorical ForecastPointKind = "historical"
	PointTransition ForecastPointKind = "transition"
	PointForecast   ForecastPointKind = "forecast"
)

// ForecastPoint is a heterogeneous cashflow series point. Historical points
// carry Actual; forecast points carry the three scenario values; the
// transition point carries all four so rendered lines stay visually
// continuous across the historical/forecast boundary.
type ForecastPoint struct {
	Month       string
	Kind        ForecastPointKind
	Actual      *float64
	Optimistic  *float64
	Baseline    *float64
	Pessimistic *float64
}

// MonthProjection holds the three scenario predictions for one future month.
type MonthProjection struct {
	Optimistic  float64
	Baseline    float64
	Pessimistic float64
}

// RevenueForecast carries the two-month forecast horizon from the insights
// endpoint.
type RevenueForecast struct {
	Month1 MonthProjection
	Month2 MonthProjection
}

// BuildCashflowSeries produces the cashflow forecast series: historical points
// in chronological order, the last historical month repeated as a transition
// point across all four keys, then exactly two forecast points. A nil forecast
// yields historical points only. The transform is pure: identical inputs
// produce identical output sequences.
func BuildCashflowSeries(history []RevenuePoint, forecast *RevenueForecast) []ForecastPoint {
	if len(history) == 0 {
		return nil
	}
	ordered := make([]RevenuePoint, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Month < ordered[j].Month
	})

	points := make([]ForecastPoint, 0, len(ordered)+2)
	for _, p := range ordered[:len(ordered)-1] {
		actual := p.Revenue
		points = append(points, ForecastPoint{
			Month:  p.Month,
			Kind:   PointHistorical,
			Actual: &actual,
		})
	}

	last := ordered[len(ordered)-1]
	if forecast == nil {
		actual := last.Revenue
		return append(points, ForecastPoint{
			Month:  last.Month,
			Kind:   PointHistorical,
			Actual: &actual,
		})
	}

	bridge := last.Revenue
	points = append(points, ForecastPoint{
		Month:       last.Month,
		Kind:        PointTransition,
		Actual:      &bridge,
		Optimistic:  &bridge,
		Baseline:    &bridge,
		Pessimistic: &bridge,
	})

	for i, proj := range []MonthProjection{forecast.Month1, forecast.Month2} {
		opt, base, pess := proj.Optimistic, proj.Baseline, proj.Pessimistic
		points = append(points, ForecastPoint{
			Month:       addMonths(last.Month, i+1),
			Kind:        PointForecast,
			Optimistic:  &opt,
			Baseline:    &base,
			Pessimistic: &pess,
		})
	}
	return points
}

// addMonths shifts a "YYYY-MM" key forward. Unparseable keys are returned
// unchanged so a bad backend month never corrupts neighbouring points.
func addMonths(month string, n int) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.AddDate(0, n, 0).Format("2006-01")
}

// FormatMonthLabel renders a "YYYY-MM" key as a short Indonesian month label,
// e.g. "2024-01" -> "Jan 2024". Unparseable keys pass through untouched.
func FormatMonthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return shortMonthNames[t.Month()-1] + " " + t.Format("2006")
}

// Short month names as rendered by the id-ID locale.
var shortMonthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}
