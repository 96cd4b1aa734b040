package dashboard

import (
	"context"
	"errors"
	"testing"
)

func TestStatusTone(t *testing.T) {
	cases := map[string]Tone{
		"EXCELLENT":   TonePositive,
		"outstanding": TonePositive,
		"Good":        ToneInfo,
		"FAIR":        ToneWarning,
		"POOR":        ToneNegative,
		"negative":    ToneNegative,
		"  good  ":    ToneInfo,
		"whatever":    ToneNeutral,
		"":            ToneNeutral,
	}
	for status, want := range cases {
		if got := StatusTone(status); got != want {
			t.Fatalf("StatusTone(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestForecastTone(t *testing.T) {
	cases := map[string]Tone{
		"132 transaksi diperkirakan bulan depan": TonePositive,
		"sekitar 80 transaksi":                   ToneInfo,
		"hanya 12 transaksi":                     ToneWarning,
		"0 transaksi":                            ToneNegative,
		"belum ada prediksi":                     ToneNeutral,
		"":                                       ToneNeutral,
	}
	for forecast, want := range cases {
		if got := ForecastTone(forecast); got != want {
			t.Fatalf("ForecastTone(%q) = %q, want %q", forecast, got, want)
		}
	}
}

func TestFirstInteger(t *testing.T) {
	if n, ok := firstInteger("sekitar 250 pengunjung per hari"); !ok || n != 250 {
		t.Fatalf("expected 250, got %d (%v)", n, ok)
	}
	if n, ok := firstInteger("42"); !ok || n != 42 {
		t.Fatalf("expected 42, got %d (%v)", n, ok)
	}
	if _, ok := firstInteger("tidak ada angka"); ok {
		t.Fatalf("expected no integer found")
	}
}

func TestSectionCardsProviderAssemblesCards(t *testing.T) {
	revenue := &stubRevenueRepo{report: RevenueReport{TotalRevenue: 8500000}}
	orders := &stubOrdersSummaryRepo{summary: OrdersSummary{TotalOrders: 1250}}
	analysis := &stubAnalysisRepo{analysis: DashboardAnalysis{
		Location: "Jakarta",
		Cashflow: CashflowAnalysis{
			CleanProfit:   2100000,
			ProfitMargin:  24.7,
			Status:        "GOOD",
			StatusMessage: "Arus kas sehat",
		},
		SalesForecastNextMonth: "132 transaksi diperkirakan bulan depan",
		RevenueInsights:        "Pendapatan naik 8% dibanding bulan lalu",
	}}
	provider := NewSectionCardsProvider(revenue, orders, analysis)

	data, err := provider.Fetch(context.Background(), WidgetContext{
		Instance: WidgetInstance{
			ID:            "cards-1",
			DefinitionID:  "nabung.widget.section_cards",
			Configuration: map[string]any{"location": "Jakarta"},
		},
		Viewer:    ViewerContext{UserID: "owner-1"},
		TimeRange: RangeLast90Days,
	})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if revenue.query.Months != 3 {
		t.Fatalf("expected viewer range to set month window, got %d", revenue.query.Months)
	}
	if orders.months != 3 {
		t.Fatalf("expected orders summary over 3 months, got %d", orders.months)
	}
	if analysis.location != "Jakarta" {
		t.Fatalf("expected configured location forwarded, got %q", analysis.location)
	}

	cards, _ := data["cards"].([]map[string]any)
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %#v", data["cards"])
	}
	if cards[0]["value"] != "Rp 8.500.000" {
		t.Fatalf("unexpected revenue card value: %v", cards[0]["value"])
	}
	if cards[1]["tone"] != string(ToneInfo) || cards[1]["subtitle"] != "Margin 24.7%" {
		t.Fatalf("unexpected profit card: %#v", cards[1])
	}
	if cards[2]["value"] != "1.250" {
		t.Fatalf("unexpected orders card value: %v", cards[2]["value"])
	}
	if cards[3]["tone"] != string(TonePositive) {
		t.Fatalf("expected strong forecast tone, got %v", cards[3]["tone"])
	}
}

func TestSectionCardsProviderConfiguredMonthsWin(t *testing.T) {
	revenue := &stubRevenueRepo{}
	provider := NewSectionCardsProvider(revenue, &stubOrdersSummaryRepo{}, &stubAnalysisRepo{})
	_, err := provider.Fetch(context.Background(), WidgetContext{
		Instance: WidgetInstance{
			Configuration: map[string]any{"months": 6},
		},
		TimeRange: RangeLast7Days,
	})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if revenue.query.Months != 6 {
		t.Fatalf("expected configured months to win over viewer range, got %d", revenue.query.Months)
	}
}

func TestSectionCardsProviderDegradesFailedSource(t *testing.T) {
	revenue := &stubRevenueRepo{report: RevenueReport{TotalRevenue: 8500000}}
	orders := &stubOrdersSummaryRepo{summary: OrdersSummary{TotalOrders: 1250}}
	analysis := &stubAnalysisRepo{err: errors.New("posapi: remote error 502")}
	provider := NewSectionCardsProvider(revenue, orders, analysis)

	data, err := provider.Fetch(context.Background(), WidgetContext{})
	if err != nil {
		t.Fatalf("expected widget to survive one failed source, got %v", err)
	}

	cards, _ := data["cards"].([]map[string]any)
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %#v", data["cards"])
	}
	if cards[0]["value"] != "Rp 8.500.000" || cards[0]["error"] == true {
		t.Fatalf("revenue card should render normally: %#v", cards[0])
	}
	if cards[2]["value"] != "1.250" || cards[2]["error"] == true {
		t.Fatalf("orders card should render normally: %#v", cards[2])
	}
	for _, i := range []int{1, 3} {
		if cards[i]["error"] != true {
			t.Fatalf("card %d should be flagged degraded: %#v", i, cards[i])
		}
		if cards[i]["value"] != "Gagal memuat data. Coba lagi." {
			t.Fatalf("card %d should show the fetch error copy: %#v", i, cards[i])
		}
	}
}

func TestSectionCardsProviderDegradesAllSources(t *testing.T) {
	down := errors.New("posapi: remote error 502")
	provider := NewSectionCardsProvider(
		&stubRevenueRepo{err: down},
		&stubOrdersSummaryRepo{err: down},
		&stubAnalysisRepo{err: down},
	)
	data, err := provider.Fetch(context.Background(), WidgetContext{})
	if err != nil {
		t.Fatalf("expected widget to survive, got %v", err)
	}
	cards, _ := data["cards"].([]map[string]any)
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %#v", data["cards"])
	}
	for i, card := range cards {
		if card["error"] != true {
			t.Fatalf("card %d should be flagged degraded: %#v", i, card)
		}
	}
}

type stubRevenueRepo struct {
	query  RevenueQuery
	report RevenueReport
	err    error
	calls  int
}

func (s *stubRevenueRepo) FetchRevenue(_ context.Context, query RevenueQuery) (RevenueReport, error) {
	s.calls++
	s.query = query
	return s.report, s.err
}

type stubOrdersSummaryRepo struct {
	months  int
	summary OrdersSummary
	err     error
}

func (s *stubOrdersSummaryRepo) FetchOrdersSummary(_ context.Context, months int) (OrdersSummary, error) {
	s.months = months
	return s.summary, s.err
}

type stubAnalysisRepo struct {
	location string
	analysis DashboardAnalysis
	err      error
}

func (s *stubAnalysisRepo) FetchAnalysis(_ context.Context, location string) (DashboardAnalysis, error) {
	s.location = location
	if s.analysis.Location == "" {
		s.analysis.Location = location
	}
	return s.analysis, s.err
}
