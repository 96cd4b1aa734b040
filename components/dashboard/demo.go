package dashboard

import (
	"context"
	"time"
)

// Demo repositories return static POS data so the dashboard renders without a
// live backend. They back the default providers and the test suite.

// DemoRevenueRepository serves a fixed six-month revenue history.
type DemoRevenueRepository struct{}

func (DemoRevenueRepository) FetchRevenue(_ context.Context, query RevenueQuery) (RevenueReport, error) {
	values := []float64{2800000, 3200000, 2900000, 3500000, 4200000, 4000000, 4500000, 4800000, 5000000, 5200000, 5100000, 5300000}
	months := query.Months
	if months <= 0 || months > len(values) {
		months = len(values)
	}
	now := time.Now().UTC()
	monthly := make(map[string]float64, months)
	total := 0.0
	for i := 0; i < months; i++ {
		key := now.AddDate(0, -(months - 1 - i), 0).Format("2006-01")
		monthly[key] = values[len(values)-months+i]
		total += monthly[key]
	}
	return RevenueReport{TotalRevenue: total, Monthly: monthly}, nil
}

// DemoTopSellingRepository serves a fixed best-seller ranking.
type DemoTopSellingRepository struct{}

func (DemoTopSellingRepository) FetchTopSelling(_ context.Context, query TopSellingQuery) ([]TopSellingItem, error) {
	items := []TopSellingItem{
		{ItemName: "Nasi Goreng Spesial", TotalSold: 412},
		{ItemName: "Es Teh Manis", TotalSold: 388},
		{ItemName: "Ayam Bakar", TotalSold: 275},
		{ItemName: "Mie Ayam", TotalSold: 214},
		{ItemName: "Kopi Susu", TotalSold: 180},
	}
	if query.Limit > 0 && query.Limit < len(items) {
		items = items[:query.Limit]
	}
	out := make([]TopSellingItem, len(items))
	copy(out, items)
	return out, nil
}

// DemoOrdersSummaryRepository serves a fixed order count.
type DemoOrdersSummaryRepository struct{}

func (DemoOrdersSummaryRepository) FetchOrdersSummary(context.Context, int) (OrdersSummary, error) {
	return OrdersSummary{TotalOrders: 1287}, nil
}

// DemoAnalysisRepository serves a fixed AI dashboard analysis.
type DemoAnalysisRepository struct{}

func (DemoAnalysisRepository) FetchAnalysis(_ context.Context, location string) (DashboardAnalysis, error) {
	return DashboardAnalysis{
		Location: location,
		Cashflow: CashflowAnalysis{
			CleanProfit:   18500000,
			ProfitMargin:  31.5,
			Status:        "GOOD",
			StatusMessage: "Arus kas sehat, margin stabil di atas 30%.",
		},
		TopSellersRecommendation: "Pertahankan stok Nasi Goreng Spesial, penjualan naik 12% bulan ini.",
		SalesForecastNextMonth:   "132 transaksi diperkirakan bulan depan",
		RevenueInsights:          "Pendapatan tumbuh konsisten sejak kuartal lalu.",
		Crowd: CrowdAnalysis{
			EstimatedCrowds: 850,
			Recommendation:  "Jam ramai pukul 12.00-13.00, tambah staf kasir di jam tersebut.",
		},
	}, nil
}

// DemoInsightsRepository serves a fixed financial insight report with a
// two-month forecast.
type DemoInsightsRepository struct{}

func (DemoInsightsRepository) FetchInsights(context.Context) (FinancialInsights, error) {
	now := time.Now().UTC()
	monthly := make([]RevenuePoint, 0, 6)
	values := []float64{3500000, 4200000, 4000000, 4500000, 4800000, 5100000}
	for i, v := range values {
		monthly = append(monthly, RevenuePoint{
			Month:   now.AddDate(0, -(len(values) - 1 - i), 0).Format("2006-01"),
			Revenue: v,
		})
	}
	return FinancialInsights{
		TotalRevenue:  26100000,
		TotalProfit:   8200000,
		TotalExpenses: 17900000,
		Monthly:       monthly,
		Tips: []string{
			"Sisihkan 10% pendapatan bulanan untuk dana darurat.",
			"Negosiasikan ulang harga bahan baku dengan pemasok utama.",
			"Tawarkan paket bundling untuk menaikkan nilai transaksi rata-rata.",
		},
		TrendAnalytics: "Tren pendapatan naik dengan puncak di akhir pekan.",
		Forecast: &RevenueForecast{
			Month1: MonthProjection{Optimistic: 5400000, Baseline: 5200000, Pessimistic: 4900000},
			Month2: MonthProjection{Optimistic: 5700000, Baseline: 5400000, Pessimistic: 4900000},
		},
	}, nil
}

// DemoOrderListRepository serves a short fixed order list.
type DemoOrderListRepository struct{}

func (DemoOrderListRepository) FetchOrders(context.Context) ([]Order, error) {
	now := time.Now().UTC()
	return []Order{
		{ID: "ORD-0001", Items: []OrderItem{{ItemID: "ITM-01", Quantity: 2}}, Total: 56000, CompletedAt: now.Add(-2 * time.Hour)},
		{ID: "ORD-0002", Items: []OrderItem{{ItemID: "ITM-03", Quantity: 1}, {ItemID: "ITM-05", Quantity: 2}}, Total: 81000, CompletedAt: now.Add(-5 * time.Hour)},
		{ID: "ORD-0003", Items: []OrderItem{{ItemID: "ITM-02", Quantity: 3}}, Total: 45000, CompletedAt: now.Add(-26 * time.Hour)},
	}, nil
}

// DemoItemListRepository serves a short fixed product list.
type DemoItemListRepository struct{}

func (DemoItemListRepository) FetchItems(context.Context) ([]Item, error) {
	return []Item{
		{ID: "ITM-01", Name: "Nasi Goreng Spesial", Stock: 40, Price: 28000, ProductionPrice: 16000},
		{ID: "ITM-02", Name: "Es Teh Manis", Stock: 120, Price: 8000, ProductionPrice: 2500},
		{ID: "ITM-03", Name: "Ayam Bakar", Stock: 25, Price: 35000, ProductionPrice: 21000},
	}, nil
}

// DemoChatClient echoes a canned assistant reply.
type DemoChatClient struct{}

func (DemoChatClient) Chat(_ context.Context, message string) (string, error) {
	if message == "" {
		return "", nil
	}
	return "Berdasarkan data penjualan kamu, fokuskan promosi di menu terlaris ya!", nil
}
