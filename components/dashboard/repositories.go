package dashboard

import (
	"context"
	"time"
)

// RevenueQuery selects the aggregation window for revenue reports.
type RevenueQuery struct {
	Months int
}

// RevenueReport is the backend revenue aggregate.
type RevenueReport struct {
	TotalRevenue float64
	Monthly      map[string]float64
}

// RevenueRepository loads revenue aggregates from the POS backend.
type RevenueRepository interface {
	FetchRevenue(ctx context.Context, query RevenueQuery) (RevenueReport, error)
}

// TopSellingQuery selects the top-selling window and result size.
type TopSellingQuery struct {
	Limit  int
	Months int
}

// TopSellingItem is one ranked row; the backend decides the order and the
// widget renders it as given.
type TopSellingItem struct {
	ItemName  string
	TotalSold int
}

// TopSellingRepository loads the best-seller ranking.
type TopSellingRepository interface {
	FetchTopSelling(ctx context.Context, query TopSellingQuery) ([]TopSellingItem, error)
}

// OrdersSummary is the order count over a month window.
type OrdersSummary struct {
	TotalOrders int
}

// OrdersSummaryRepository loads order counts for KPI cards.
type OrdersSummaryRepository interface {
	FetchOrdersSummary(ctx context.Context, months int) (OrdersSummary, error)
}

// CashflowAnalysis is the AI cashflow verdict for the KPI cards.
type CashflowAnalysis struct {
	CleanProfit   float64
	ProfitMargin  float64
	Status        string
	StatusMessage string
}

// CrowdAnalysis carries the location-scoped crowd recommendation.
type CrowdAnalysis struct {
	EstimatedCrowds int
	Recommendation  string
}

// DashboardAnalysis bundles the AI dashboard analysis used by several widgets.
type DashboardAnalysis struct {
	Location                 string
	Cashflow                 CashflowAnalysis
	TopSellersRecommendation string
	SalesForecastNextMonth   string
	RevenueInsights          string
	Crowd                    CrowdAnalysis
}

// AnalysisRepository loads the AI dashboard analysis for a business location.
type AnalysisRepository interface {
	FetchAnalysis(ctx context.Context, location string) (DashboardAnalysis, error)
}

// FinancialInsights bundles the financial insight report backing the cashflow
// forecast widget and the insight sidebar. Forecast is nil when the backend
// returned no projection.
type FinancialInsights struct {
	TotalRevenue   float64
	TotalProfit    float64
	TotalExpenses  float64
	Monthly        []RevenuePoint
	Tips           []string
	TrendAnalytics string
	Forecast       *RevenueForecast
}

// InsightsRepository loads the financial insight report.
type InsightsRepository interface {
	FetchInsights(ctx context.Context) (FinancialInsights, error)
}

// OrderItem is one line of an order.
type OrderItem struct {
	ItemID   string
	Quantity int
}

// Order is a completed POS order as listed by the sales pages.
type Order struct {
	ID          string
	Items       []OrderItem
	Total       float64
	CompletedAt time.Time
}

// Item is a product as listed by the product page.
type Item struct {
	ID              string
	Name            string
	Stock           int
	Price           float64
	ProductionPrice float64
}

// OrderListRepository loads the full order list.
type OrderListRepository interface {
	FetchOrders(ctx context.Context) ([]Order, error)
}

// ItemListRepository loads the full product list.
type ItemListRepository interface {
	FetchItems(ctx context.Context) ([]Item, error)
}

// ChatClient posts a user message to the AI chat endpoint and returns the
// assistant reply.
type ChatClient interface {
	Chat(ctx context.Context, message string) (string, error)
}
