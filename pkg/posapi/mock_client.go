package posapi

import (
	"context"
	"io"
	"sync"

	dashboard "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

// MockData seeds deterministic POS responses for tests or local demos.
type MockData struct {
	Revenue        dashboard.RevenueReport
	Orders         []dashboard.Order
	Items          []dashboard.Item
	TopSelling     []dashboard.TopSellingItem
	Analysis       dashboard.DashboardAnalysis
	Insights       dashboard.FinancialInsights
	ChatReply      string
	ImportResult   dashboard.ImportResult
	OrdersTemplate dashboard.CSVTemplate
	ItemsTemplate  dashboard.CSVTemplate
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock POS client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchRevenue returns the configured revenue report ignoring the window.
func (c *MockClient) FetchRevenue(context.Context, int) (dashboard.RevenueReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneRevenue(c.data.Revenue), nil
}

// FetchAllOrders returns the configured order fixtures.
func (c *MockClient) FetchAllOrders(context.Context) ([]dashboard.Order, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneOrders(c.data.Orders), nil
}

// FetchOrdersCount counts the configured order fixtures ignoring the window.
func (c *MockClient) FetchOrdersCount(context.Context, int) (dashboard.OrdersSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return dashboard.OrdersSummary{TotalOrders: len(c.data.Orders)}, nil
}

// FetchAllItems returns the configured item fixtures.
func (c *MockClient) FetchAllItems(context.Context) ([]dashboard.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]dashboard.Item(nil), c.data.Items...), nil
}

// FetchTopSelling returns the configured ranking trimmed to the limit.
func (c *MockClient) FetchTopSelling(_ context.Context, limit, _ int) ([]dashboard.TopSellingItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ranking := append([]dashboard.TopSellingItem(nil), c.data.TopSelling...)
	if limit > 0 && limit < len(ranking) {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

// FetchDashboardAnalysis returns the configured analysis for any location.
func (c *MockClient) FetchDashboardAnalysis(_ context.Context, location string) (dashboard.DashboardAnalysis, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	analysis := c.data.Analysis
	if location != "" {
		analysis.Location = location
	}
	return analysis, nil
}

// FetchInsights returns the configured financial insights.
func (c *MockClient) FetchInsights(context.Context) (dashboard.FinancialInsights, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneInsights(c.data.Insights), nil
}

// Chat returns the configured reply for any message.
func (c *MockClient) Chat(context.Context, string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.ChatReply, nil
}

// UploadOrdersCSV drains the reader and returns the configured result.
func (c *MockClient) UploadOrdersCSV(_ context.Context, _ string, csv io.Reader) (dashboard.ImportResult, error) {
	if _, err := io.Copy(io.Discard, csv); err != nil {
		return dashboard.ImportResult{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.ImportResult, nil
}

// UploadItemsCSV drains the reader and returns the configured result.
func (c *MockClient) UploadItemsCSV(_ context.Context, _ string, csv io.Reader) (dashboard.ImportResult, error) {
	if _, err := io.Copy(io.Discard, csv); err != nil {
		return dashboard.ImportResult{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.ImportResult, nil
}

// OrdersCSVTemplate returns the configured orders template.
func (c *MockClient) OrdersCSVTemplate(context.Context) (dashboard.CSVTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneTemplate(c.data.OrdersTemplate), nil
}

// ItemsCSVTemplate returns the configured items template.
func (c *MockClient) ItemsCSVTemplate(context.Context) (dashboard.CSVTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneTemplate(c.data.ItemsTemplate), nil
}

func cloneRevenue(report dashboard.RevenueReport) dashboard.RevenueReport {
	out := dashboard.RevenueReport{
		TotalRevenue: report.TotalRevenue,
		Monthly:      make(map[string]float64, len(report.Monthly)),
	}
	for month, revenue := range report.Monthly {
		out.Monthly[month] = revenue
	}
	return out
}

func cloneOrders(orders []dashboard.Order) []dashboard.Order {
	out := make([]dashboard.Order, len(orders))
	for i, order := range orders {
		out[i] = dashboard.Order{
			ID:          order.ID,
			Items:       append([]dashboard.OrderItem(nil), order.Items...),
			Total:       order.Total,
			CompletedAt: order.CompletedAt,
		}
	}
	return out
}

func cloneInsights(insights dashboard.FinancialInsights) dashboard.FinancialInsights {
	out := dashboard.FinancialInsights{
		TotalRevenue:   insights.TotalRevenue,
		TotalProfit:    insights.TotalProfit,
		TotalExpenses:  insights.TotalExpenses,
		Monthly:        append([]dashboard.RevenuePoint(nil), insights.Monthly...),
		Tips:           append([]string(nil), insights.Tips...),
		TrendAnalytics: insights.TrendAnalytics,
	}
	if insights.Forecast != nil {
		forecast := *insights.Forecast
		out.Forecast = &forecast
	}
	return out
}

func cloneTemplate(template dashboard.CSVTemplate) dashboard.CSVTemplate {
	return dashboard.CSVTemplate{
		FileName: template.FileName,
		Content:  append([]byte(nil), template.Content...),
	}
}
