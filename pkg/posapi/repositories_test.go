package posapi

import (
	"context"
	"testing"
	"time"

	dashboard "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

func TestRepositoriesDelegateToClient(t *testing.T) {
	mock := NewMockClient(MockData{
		Revenue: dashboard.RevenueReport{TotalRevenue: 15750000, Monthly: map[string]float64{"2026-08": 8500000}},
		Orders: []dashboard.Order{
			{ID: "ord-1", Total: 25000, CompletedAt: time.Now()},
			{ID: "ord-2", Total: 48000, CompletedAt: time.Now()},
		},
		Items:      []dashboard.Item{{ID: "itm-1", Name: "Nasi Goreng Spesial", Price: 25000}},
		TopSelling: []dashboard.TopSellingItem{{ItemName: "Es Teh Manis", TotalSold: 182}},
		Analysis:   dashboard.DashboardAnalysis{Cashflow: dashboard.CashflowAnalysis{Status: "GOOD"}},
		Insights:   dashboard.FinancialInsights{TotalProfit: 4200000},
	})

	revenueRepo := NewRevenueRepository(mock)
	if report, err := revenueRepo.FetchRevenue(context.Background(), dashboard.RevenueQuery{Months: 3}); err != nil || report.TotalRevenue != 15750000 {
		t.Fatalf("revenue repo returned %v, %v", report, err)
	}

	topRepo := NewTopSellingRepository(mock)
	if items, err := topRepo.FetchTopSelling(context.Background(), dashboard.TopSellingQuery{Limit: 5, Months: 1}); err != nil || len(items) != 1 {
		t.Fatalf("top selling repo returned %v, %v", items, err)
	}

	summaryRepo := NewOrdersSummaryRepository(mock)
	if summary, err := summaryRepo.FetchOrdersSummary(context.Background(), 1); err != nil || summary.TotalOrders != 2 {
		t.Fatalf("orders summary repo returned %v, %v", summary, err)
	}

	analysisRepo := NewAnalysisRepository(mock)
	if analysis, err := analysisRepo.FetchAnalysis(context.Background(), "Jakarta"); err != nil || analysis.Cashflow.Status != "GOOD" {
		t.Fatalf("analysis repo returned %v, %v", analysis, err)
	}

	insightsRepo := NewInsightsRepository(mock)
	if insights, err := insightsRepo.FetchInsights(context.Background()); err != nil || insights.TotalProfit != 4200000 {
		t.Fatalf("insights repo returned %v, %v", insights, err)
	}

	orderRepo := NewOrderListRepository(mock)
	if orders, err := orderRepo.FetchOrders(context.Background()); err != nil || len(orders) != 2 {
		t.Fatalf("order list repo returned %v, %v", orders, err)
	}

	itemRepo := NewItemListRepository(mock)
	if items, err := itemRepo.FetchItems(context.Background()); err != nil || items[0].Name != "Nasi Goreng Spesial" {
		t.Fatalf("item list repo returned %v, %v", items, err)
	}
}

func TestMockClientSatisfiesClient(t *testing.T) {
	var _ Client = NewMockClient(MockData{})
	var _ Client = &HTTPClient{}
	var _ Client = NewCachedClient(NewMockClient(MockData{}))
}
