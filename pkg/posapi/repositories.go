package posapi

import (
	"context"

	dashboard "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

// NewRevenueRepository adapts a POS client into a dashboard repository.
func NewRevenueRepository(client RevenueClient) dashboard.RevenueRepository {
	return &revenueRepository{client: client}
}

type revenueRepository struct {
	client RevenueClient
}

func (r *revenueRepository) FetchRevenue(ctx context.Context, query dashboard.RevenueQuery) (dashboard.RevenueReport, error) {
	return r.client.FetchRevenue(ctx, query.Months)
}

// NewTopSellingRepository adapts the POS client for the best-seller widget.
func NewTopSellingRepository(client ItemsClient) dashboard.TopSellingRepository {
	return &topSellingRepository{client: client}
}

type topSellingRepository struct {
	client ItemsClient
}

func (r *topSellingRepository) FetchTopSelling(ctx context.Context, query dashboard.TopSellingQuery) ([]dashboard.TopSellingItem, error) {
	return r.client.FetchTopSelling(ctx, query.Limit, query.Months)
}

// NewOrdersSummaryRepository adapts the POS client for the KPI cards. The
// windowed orders endpoint reports the count directly, so no order payload is
// transferred.
func NewOrdersSummaryRepository(client OrdersClient) dashboard.OrdersSummaryRepository {
	return &ordersSummaryRepository{client: client}
}

type ordersSummaryRepository struct {
	client OrdersClient
}

func (r *ordersSummaryRepository) FetchOrdersSummary(ctx context.Context, months int) (dashboard.OrdersSummary, error) {
	return r.client.FetchOrdersCount(ctx, months)
}

// NewAnalysisRepository adapts the POS client for AI analysis widgets.
func NewAnalysisRepository(client AnalysisClient) dashboard.AnalysisRepository {
	return &analysisRepository{client: client}
}

type analysisRepository struct {
	client AnalysisClient
}

func (r *analysisRepository) FetchAnalysis(ctx context.Context, location string) (dashboard.DashboardAnalysis, error) {
	return r.client.FetchDashboardAnalysis(ctx, location)
}

// NewInsightsRepository adapts the POS client for the cashflow forecast widget.
func NewInsightsRepository(client AnalysisClient) dashboard.InsightsRepository {
	return &insightsRepository{client: client}
}

type insightsRepository struct {
	client AnalysisClient
}

func (r *insightsRepository) FetchInsights(ctx context.Context) (dashboard.FinancialInsights, error) {
	return r.client.FetchInsights(ctx)
}

// NewOrderListRepository adapts the POS client for the sales list pages.
func NewOrderListRepository(client OrdersClient) dashboard.OrderListRepository {
	return &orderListRepository{client: client}
}

type orderListRepository struct {
	client OrdersClient
}

func (r *orderListRepository) FetchOrders(ctx context.Context) ([]dashboard.Order, error) {
	return r.client.FetchAllOrders(ctx)
}

// NewItemListRepository adapts the POS client for the product list page.
func NewItemListRepository(client ItemsClient) dashboard.ItemListRepository {
	return &itemListRepository{client: client}
}

type itemListRepository struct {
	client ItemsClient
}

func (r *itemListRepository) FetchItems(ctx context.Context) ([]dashboard.Item, error) {
	return r.client.FetchAllItems(ctx)
}
