package posapi

import (
	"context"
	"io"

	dashboard "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

// RevenueClient fetches aggregated revenue from the POS backend.
type RevenueClient interface {
	FetchRevenue(ctx context.Context, months int) (dashboard.RevenueReport, error)
}

// OrdersClient fetches order history and windowed order counts.
type OrdersClient interface {
	FetchAllOrders(ctx context.Context) ([]dashboard.Order, error)
	FetchOrdersCount(ctx context.Context, months int) (dashboard.OrdersSummary, error)
}

// ItemsClient fetches the product catalog and sales rankings.
type ItemsClient interface {
	FetchAllItems(ctx context.Context) ([]dashboard.Item, error)
	FetchTopSelling(ctx context.Context, limit, months int) ([]dashboard.TopSellingItem, error)
}

// AnalysisClient fetches AI-generated analyses.
type AnalysisClient interface {
	FetchDashboardAnalysis(ctx context.Context, location string) (dashboard.DashboardAnalysis, error)
	FetchInsights(ctx context.Context) (dashboard.FinancialInsights, error)
}

// ChatClient sends assistant messages.
type ChatClient interface {
	Chat(ctx context.Context, message string) (string, error)
}

// UploadClient pushes CSV imports and fetches their templates.
type UploadClient interface {
	UploadOrdersCSV(ctx context.Context, fileName string, csv io.Reader) (dashboard.ImportResult, error)
	UploadItemsCSV(ctx context.Context, fileName string, csv io.Reader) (dashboard.ImportResult, error)
	OrdersCSVTemplate(ctx context.Context) (dashboard.CSVTemplate, error)
	ItemsCSVTemplate(ctx context.Context) (dashboard.CSVTemplate, error)
}

// Client is a convenience union for services implementing the full POS API.
type Client interface {
	RevenueClient
	OrdersClient
	ItemsClient
	AnalysisClient
	ChatClient
	UploadClient
}
