package posapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	dashboard "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

const apiPrefix = "/api/v1"

// HTTPConfig configures the HTTP POS client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the POS backend via its REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting a live POS backend.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("posapi: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchRevenue implements RevenueClient via the revenue endpoint.
func (c *HTTPClient) FetchRevenue(ctx context.Context, months int) (dashboard.RevenueReport, error) {
	var resp revenueResponse
	path := "/revenue?months=" + strconv.Itoa(months)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return dashboard.RevenueReport{}, err
	}
	return resp.toReport(), nil
}

// FetchAllOrders implements OrdersClient via the get-all endpoint.
func (c *HTTPClient) FetchAllOrders(ctx context.Context) ([]dashboard.Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/orders/get-all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toOrders(), nil
}

// FetchOrdersCount fetches the order count over the trailing months.
func (c *HTTPClient) FetchOrdersCount(ctx context.Context, months int) (dashboard.OrdersSummary, error) {
	var resp ordersCountResponse
	path := "/orders?months=" + strconv.Itoa(months)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return dashboard.OrdersSummary{}, err
	}
	return dashboard.OrdersSummary{TotalOrders: resp.TotalOrders}, nil
}

// FetchAllItems implements ItemsClient via the get-all endpoint.
func (c *HTTPClient) FetchAllItems(ctx context.Context) ([]dashboard.Item, error) {
	var resp itemsResponse
	if err := c.do(ctx, http.MethodGet, "/items/get-all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toItems(), nil
}

// FetchTopSelling implements ItemsClient via the top-selling endpoint.
func (c *HTTPClient) FetchTopSelling(ctx context.Context, limit, months int) ([]dashboard.TopSellingItem, error) {
	var resp topSellingResponse
	path := fmt.Sprintf("/items/top-selling?limit=%d&months=%d", limit, months)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toItems(), nil
}

// FetchDashboardAnalysis implements AnalysisClient via the ai-analysis
// endpoint.
func (c *HTTPClient) FetchDashboardAnalysis(ctx context.Context, location string) (dashboard.DashboardAnalysis, error) {
	var resp analysisResponse
	path := "/dashboard/ai-analysis?location=" + url.QueryEscape(location)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return dashboard.DashboardAnalysis{}, err
	}
	return resp.toAnalysis(), nil
}

// FetchInsights implements AnalysisClient via the insights endpoint.
func (c *HTTPClient) FetchInsights(ctx context.Context) (dashboard.FinancialInsights, error) {
	var resp insightsResponse
	if err := c.do(ctx, http.MethodGet, "/insights/ai-analysis", nil, &resp); err != nil {
		return dashboard.FinancialInsights{}, err
	}
	return resp.toInsights(), nil
}

// Chat implements ChatClient via the chat endpoint.
func (c *HTTPClient) Chat(ctx context.Context, message string) (string, error) {
	var resp chatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", chatRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// UploadOrdersCSV implements UploadClient via a multipart upload.
func (c *HTTPClient) UploadOrdersCSV(ctx context.Context, fileName string, csv io.Reader) (dashboard.ImportResult, error) {
	return c.uploadCSV(ctx, "/orders/upload-csv", fileName, csv)
}

// UploadItemsCSV implements UploadClient via a multipart upload.
func (c *HTTPClient) UploadItemsCSV(ctx context.Context, fileName string, csv io.Reader) (dashboard.ImportResult, error) {
	return c.uploadCSV(ctx, "/items/upload-csv", fileName, csv)
}

// OrdersCSVTemplate downloads the example orders file.
func (c *HTTPClient) OrdersCSVTemplate(ctx context.Context) (dashboard.CSVTemplate, error) {
	return c.downloadTemplate(ctx, "/orders/csv-template", "orders_template.csv")
}

// ItemsCSVTemplate downloads the example items file.
func (c *HTTPClient) ItemsCSVTemplate(ctx context.Context) (dashboard.CSVTemplate, error) {
	return c.downloadTemplate(ctx, "/items/csv-template", "items_template.csv")
}

func (c *HTTPClient) uploadCSV(ctx context.Context, path, fileName string, csv io.Reader) (dashboard.ImportResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("csv_file", fileName)
	if err != nil {
		return dashboard.ImportResult{}, fmt.Errorf("posapi: build multipart: %w", err)
	}
	if _, err := io.Copy(part, csv); err != nil {
		return dashboard.ImportResult{}, fmt.Errorf("posapi: read csv: %w", err)
	}
	if err := writer.Close(); err != nil {
		return dashboard.ImportResult{}, fmt.Errorf("posapi: finalize multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+path, &body)
	if err != nil {
		return dashboard.ImportResult{}, fmt.Errorf("posapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return dashboard.ImportResult{}, fmt.Errorf("posapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return dashboard.ImportResult{}, fmt.Errorf("posapi: remote error %d: %s", resp.StatusCode, buf.String())
	}

	var upload uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return dashboard.ImportResult{}, fmt.Errorf("posapi: decode response: %w", err)
	}
	if upload.Error != "" {
		return dashboard.ImportResult{}, fmt.Errorf("posapi: import rejected: %s", upload.Error)
	}
	return dashboard.ImportResult{
		OrdersAdded: upload.OrdersAdded,
		ItemsAdded:  upload.ItemsAdded,
		Message:     upload.Message,
	}, nil
}

func (c *HTTPClient) downloadTemplate(ctx context.Context, path, fallbackName string) (dashboard.CSVTemplate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPrefix+path, nil)
	if err != nil {
		return dashboard.CSVTemplate{}, fmt.Errorf("posapi: build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return dashboard.CSVTemplate{}, fmt.Errorf("posapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return dashboard.CSVTemplate{}, fmt.Errorf("posapi: remote error %d: %s", resp.StatusCode, buf.String())
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return dashboard.CSVTemplate{}, fmt.Errorf("posapi: read template: %w", err)
	}
	name := fallbackName
	if disposition := resp.Header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if fn := params["filename"]; fn != "" {
				name = fn
			}
		}
	}
	return dashboard.CSVTemplate{FileName: name, Content: content}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var reqBody io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("posapi: encode payload: %w", err)
		}
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reqBody)
	if err != nil {
		return fmt.Errorf("posapi: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("posapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("posapi: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("posapi: decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// Wire shapes mirror the backend handler responses. Month keys in
// monthly_revenues use the zero-padded "YYYY-MM" layout.
type revenueResponse struct {
	TotalRevenue    float64            `json:"total_revenue"`
	MonthlyRevenues map[string]float64 `json:"monthly_revenues"`
}

func (r revenueResponse) toReport() dashboard.RevenueReport {
	monthly := make(map[string]float64, len(r.MonthlyRevenues))
	for month, revenue := range r.MonthlyRevenues {
		monthly[month] = revenue
	}
	return dashboard.RevenueReport{
		TotalRevenue: r.TotalRevenue,
		Monthly:      monthly,
	}
}

type orderItemWire struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type orderWire struct {
	ID          string          `json:"id"`
	Items       []orderItemWire `json:"items"`
	Total       float64         `json:"total"`
	CompletedAt time.Time       `json:"completed_at"`
}

type ordersResponse struct {
	Orders      []orderWire `json:"orders"`
	TotalOrders int         `json:"total_orders"`
}

// ordersCountResponse is the windowed count shape of GET /orders?months=.
// The order list itself is omitted unless explicitly requested.
type ordersCountResponse struct {
	TotalOrders   int            `json:"total_orders"`
	MonthlyOrders map[string]int `json:"monthly_orders"`
}

func (r ordersResponse) toOrders() []dashboard.Order {
	orders := make([]dashboard.Order, len(r.Orders))
	for i, order := range r.Orders {
		items := make([]dashboard.OrderItem, len(order.Items))
		for j, item := range order.Items {
			items[j] = dashboard.OrderItem{ItemID: item.ItemID, Quantity: item.Quantity}
		}
		orders[i] = dashboard.Order{
			ID:          order.ID,
			Items:       items,
			Total:       order.Total,
			CompletedAt: order.CompletedAt,
		}
	}
	return orders
}

type itemWire struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Stock           int     `json:"stock"`
	Price           float64 `json:"price"`
	ProductionPrice float64 `json:"production_price"`
}

type itemsResponse struct {
	Items      []itemWire `json:"items"`
	TotalItems int        `json:"total_items"`
}

func (r itemsResponse) toItems() []dashboard.Item {
	items := make([]dashboard.Item, len(r.Items))
	for i, item := range r.Items {
		items[i] = dashboard.Item{
			ID:              item.ID,
			Name:            item.Name,
			Stock:           item.Stock,
			Price:           item.Price,
			ProductionPrice: item.ProductionPrice,
		}
	}
	return items
}

type topSellingWire struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Price        float64 `json:"price"`
	TotalSold    int     `json:"total_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

type topSellingResponse struct {
	Items        []topSellingWire `json:"top_selling_items"`
	PeriodMonths int              `json:"period_months"`
}

func (r topSellingResponse) toItems() []dashboard.TopSellingItem {
	items := make([]dashboard.TopSellingItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = dashboard.TopSellingItem{ItemName: item.ItemName, TotalSold: item.TotalSold}
	}
	return items
}

type cashflowWire struct {
	CleanProfit    float64 `json:"clean_profit"`
	ProfitMargin   float64 `json:"profit_margin"`
	CashflowStatus string  `json:"cashflow_status"`
	StatusMessage  string  `json:"status_message"`
}

type aiAnalysisWire struct {
	TopSellersRecommendation string `json:"top_sellers_recommendation"`
	SalesForecastNextMonth   int    `json:"sales_forecast_next_month"`
	RevenueInsights          string `json:"revenue_insights"`
	CrowdAnalysis            struct {
		EstimatedCrowds int    `json:"estimated_crowds"`
		Recommendation  string `json:"recommendation"`
	} `json:"crowd_analysis"`
}

type analysisResponse struct {
	TopSellingItems  []topSellingWire `json:"top_selling_items"`
	TotalSalesYTD    int              `json:"total_sales_ytd"`
	TotalRevenueYTD  float64          `json:"total_revenue_ytd"`
	BusinessLocation string           `json:"business_location"`
	Year             int              `json:"year"`
	AIAnalysis       aiAnalysisWire   `json:"ai_analysis"`
	Cashflow         cashflowWire     `json:"cashflow_analysis"`
}

func (r analysisResponse) toAnalysis() dashboard.DashboardAnalysis {
	return dashboard.DashboardAnalysis{
		Location: r.BusinessLocation,
		Cashflow: dashboard.CashflowAnalysis{
			CleanProfit:   r.Cashflow.CleanProfit,
			ProfitMargin:  r.Cashflow.ProfitMargin,
			Status:        r.Cashflow.CashflowStatus,
			StatusMessage: r.Cashflow.StatusMessage,
		},
		TopSellersRecommendation: r.AIAnalysis.TopSellersRecommendation,
		SalesForecastNextMonth:   strconv.Itoa(r.AIAnalysis.SalesForecastNextMonth),
		RevenueInsights:          r.AIAnalysis.RevenueInsights,
		Crowd: dashboard.CrowdAnalysis{
			EstimatedCrowds: r.AIAnalysis.CrowdAnalysis.EstimatedCrowds,
			Recommendation:  r.AIAnalysis.CrowdAnalysis.Recommendation,
		},
	}
}

// monthlyRevenueWire rows arrive in chronological order with human-readable
// month labels such as "January 2026".
type monthlyRevenueWire struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type projectionWire struct {
	HiPredict  float64 `json:"hi_predict"`
	Stagnancy  float64 `json:"stagnancy"`
	BadPredict float64 `json:"bad_predict"`
}

type revenueForecastWire struct {
	LastMonthProjection projectionWire `json:"last_month_projection"`
	Month1              projectionWire `json:"month_1"`
	Month2              projectionWire `json:"month_2"`
}

type aiInsightsWire struct {
	RevenueForecast *revenueForecastWire `json:"revenue_forecast"`
	FinancialTips   []string             `json:"financial_tips"`
	TrendAnalytics  string               `json:"trend_analytics"`
}

type insightsResponse struct {
	MonthlyRevenues []monthlyRevenueWire `json:"monthly_revenues"`
	TotalRevenue    float64              `json:"total_revenue"`
	TotalProfit     float64              `json:"total_profit"`
	TotalExpenses   float64              `json:"total_expenses"`
	AIInsights      aiInsightsWire       `json:"ai_insights"`
	Year            int                  `json:"year"`
	Message         string               `json:"message"`
}

func (r insightsResponse) toInsights() dashboard.FinancialInsights {
	monthly := make([]dashboard.RevenuePoint, len(r.MonthlyRevenues))
	for i, row := range r.MonthlyRevenues {
		monthly[i] = dashboard.RevenuePoint{
			Month:   normalizeMonthKey(row.Month),
			Revenue: row.Revenue,
		}
	}
	insights := dashboard.FinancialInsights{
		TotalRevenue:   r.TotalRevenue,
		TotalProfit:    r.TotalProfit,
		TotalExpenses:  r.TotalExpenses,
		Monthly:        monthly,
		Tips:           append([]string(nil), r.AIInsights.FinancialTips...),
		TrendAnalytics: r.AIInsights.TrendAnalytics,
	}
	if f := r.AIInsights.RevenueForecast; f != nil {
		insights.Forecast = &dashboard.RevenueForecast{
			Month1: dashboard.MonthProjection{
				Optimistic:  f.Month1.HiPredict,
				Baseline:    f.Month1.Stagnancy,
				Pessimistic: f.Month1.BadPredict,
			},
			Month2: dashboard.MonthProjection{
				Optimistic:  f.Month2.HiPredict,
				Baseline:    f.Month2.Stagnancy,
				Pessimistic: f.Month2.BadPredict,
			},
		}
	}
	return insights
}

// normalizeMonthKey converts an English month label like "January 2026" to the
// "YYYY-MM" key the series helpers sort and shift on. Labels already in key
// form, or unparseable ones, pass through unchanged.
func normalizeMonthKey(label string) string {
	if t, err := time.Parse("January 2006", label); err == nil {
		return t.Format("2006-01")
	}
	return label
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
	Message  string `json:"message"`
}

// uploadResponse covers both import endpoints; each fills only its own
// counters. A 206 reply carries row-level errors alongside the counts.
type uploadResponse struct {
	Message       string   `json:"message"`
	OrdersAdded   int      `json:"orders_added"`
	OrdersSkipped int      `json:"orders_skipped"`
	ItemsAdded    int      `json:"items_added"`
	ItemsSkipped  int      `json:"items_skipped"`
	Errors        []string `json:"errors"`
	Error         string   `json:"error"`
}
