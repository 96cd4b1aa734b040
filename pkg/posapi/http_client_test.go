package posapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Fixtures are literal backend payloads, not re-encoded wire structs.

func TestHTTPClientFetchRevenue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/revenue" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("months"); got != "3" {
			t.Fatalf("expected months=3, got %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("expected auth header, got %s", got)
		}
		_, _ = io.WriteString(w, `{
			"total_revenue": 15750000,
			"monthly_revenues": {"2026-07": 7250000, "2026-08": 8500000}
		}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	report, err := client.FetchRevenue(context.Background(), 3)
	if err != nil {
		t.Fatalf("fetch revenue: %v", err)
	}
	if report.TotalRevenue != 15750000 {
		t.Fatalf("unexpected total: %#v", report)
	}
	if len(report.Monthly) != 2 || report.Monthly["2026-08"] != 8500000 {
		t.Fatalf("unexpected monthly revenues: %#v", report.Monthly)
	}
}

func TestHTTPClientFetchAllOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/orders/get-all" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{
			"orders": [
				{"id": "ord-1", "items": [{"item_id": "itm-1", "quantity": 2}], "total": 50000, "completed_at": "2026-08-14T10:30:00Z"},
				{"id": "ord-2", "items": [], "total": 48000, "completed_at": "2026-08-15T12:00:00Z"}
			],
			"total_orders": 2,
			"message": "Successfully retrieved all orders"
		}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	orders, err := client.FetchAllOrders(context.Background())
	if err != nil {
		t.Fatalf("fetch orders: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "ord-1" || orders[0].Items[0].Quantity != 2 {
		t.Fatalf("unexpected orders: %#v", orders)
	}
}

func TestHTTPClientFetchOrdersCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/orders" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("months"); got != "1" {
			t.Fatalf("expected months=1, got %s", got)
		}
		_, _ = io.WriteString(w, `{
			"total_orders": 57,
			"monthly_orders": {"2026-08": 57}
		}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	summary, err := client.FetchOrdersCount(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch orders count: %v", err)
	}
	if summary.TotalOrders != 57 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
}

func TestHTTPClientFetchAllItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/items/get-all" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{
			"items": [{"id": "itm-1", "name": "Nasi Goreng Spesial", "stock": 40, "price": 25000, "production_price": 14000}],
			"total_items": 1
		}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	items, err := client.FetchAllItems(context.Background())
	if err != nil {
		t.Fatalf("fetch items: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Nasi Goreng Spesial" || items[0].ProductionPrice != 14000 {
		t.Fatalf("unexpected items: %#v", items)
	}
}

func TestHTTPClientFetchTopSelling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/items/top-selling" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("limit") != "5" || query.Get("months") != "1" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{
			"top_selling_items": [
				{"item_id": "itm-7", "item_name": "Es Teh Manis", "price": 5000, "total_sold": 182, "total_revenue": 910000}
			],
			"period_months": 1
		}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	items, err := client.FetchTopSelling(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("fetch top selling: %v", err)
	}
	if len(items) != 1 || items[0].ItemName != "Es Teh Manis" || items[0].TotalSold != 182 {
		t.Fatalf("unexpected ranking: %#v", items)
	}
}

func TestHTTPClientFetchDashboardAnalysis(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/dashboard/ai-analysis" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("location"); got != "Jakarta Selatan" {
			t.Fatalf("expected location query, got %q", got)
		}
		_, _ = io.WriteString(w, `{
			"top_selling_items": [{"item_id": "itm-7", "item_name": "Es Teh Manis", "price": 5000, "total_sold": 182, "total_revenue": 910000}],
			"total_sales_ytd": 1240,
			"total_revenue_ytd": 15750000,
			"business_location": "Jakarta Selatan",
			"year": 2026,
			"ai_analysis": {
				"top_sellers_recommendation": "Dorong paket bundling Es Teh Manis",
				"sales_forecast_next_month": 132,
				"revenue_insights": "Pendapatan naik stabil sejak Juni",
				"crowd_analysis": {"estimated_crowds": 220, "recommendation": "Tambah stok akhir pekan"}
			},
			"cashflow_analysis": {
				"clean_profit": 4200000,
				"profit_margin": 31.5,
				"cashflow_status": "GOOD",
				"status_message": "Arus kas sehat bulan ini"
			}
		}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	analysis, err := client.FetchDashboardAnalysis(context.Background(), "Jakarta Selatan")
	if err != nil {
		t.Fatalf("fetch analysis: %v", err)
	}
	if analysis.Location != "Jakarta Selatan" {
		t.Fatalf("unexpected location: %#v", analysis)
	}
	if analysis.Cashflow.Status != "GOOD" || analysis.Cashflow.CleanProfit != 4200000 {
		t.Fatalf("unexpected cashflow: %#v", analysis.Cashflow)
	}
	if analysis.SalesForecastNextMonth != "132" {
		t.Fatalf("unexpected forecast: %q", analysis.SalesForecastNextMonth)
	}
	if analysis.Crowd.EstimatedCrowds != 220 || analysis.TopSellersRecommendation == "" {
		t.Fatalf("unexpected analysis: %#v", analysis)
	}
}

func TestHTTPClientFetchInsightsBuildsForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/insights/ai-analysis" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{
			"monthly_revenues": [
				{"month": "July 2026", "revenue": 7250000},
				{"month": "August 2026", "revenue": 8500000}
			],
			"total_revenue": 15750000,
			"total_profit": 4200000,
			"total_expenses": 11550000,
			"ai_insights": {
				"revenue_forecast": {
					"last_month_projection": {"hi_predict": 8700000, "stagnancy": 8500000, "bad_predict": 8100000},
					"month_1": {"hi_predict": 9100000, "stagnancy": 8500000, "bad_predict": 7800000},
					"month_2": {"hi_predict": 9600000, "stagnancy": 8500000, "bad_predict": 7200000}
				},
				"financial_tips": ["Pisahkan kas pribadi dan usaha"],
				"trend_analytics": "Tren pendapatan menanjak sejak kuartal dua"
			},
			"year": 2026,
			"message": "Business insights generated successfully"
		}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	insights, err := client.FetchInsights(context.Background())
	if err != nil {
		t.Fatalf("fetch insights: %v", err)
	}
	if len(insights.Monthly) != 2 || insights.Monthly[0].Month != "2026-07" || insights.Monthly[1].Month != "2026-08" {
		t.Fatalf("expected month keys in YYYY-MM form, got %#v", insights.Monthly)
	}
	if insights.TotalExpenses != 11550000 || len(insights.Tips) != 1 || insights.TrendAnalytics == "" {
		t.Fatalf("unexpected insights: %#v", insights)
	}
	if insights.Forecast == nil || insights.Forecast.Month1.Optimistic != 9100000 || insights.Forecast.Month2.Pessimistic != 7200000 {
		t.Fatalf("unexpected forecast: %#v", insights.Forecast)
	}
}

func TestHTTPClientFetchInsightsWithoutForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{
			"monthly_revenues": [{"month": "August 2026", "revenue": 8500000}],
			"total_revenue": 8500000,
			"ai_insights": {"financial_tips": [], "trend_analytics": ""},
			"year": 2026
		}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	insights, err := client.FetchInsights(context.Background())
	if err != nil {
		t.Fatalf("fetch insights: %v", err)
	}
	if insights.Forecast != nil {
		t.Fatalf("expected nil forecast, got %#v", insights.Forecast)
	}
}

func TestHTTPClientChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chat" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Message != "Bagaimana penjualan bulan ini?" {
			t.Fatalf("unexpected message %q", req.Message)
		}
		_, _ = io.WriteString(w, `{
			"response": "Penjualan naik 12% dibanding bulan lalu.",
			"message": "Chat response generated successfully"
		}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	reply, err := client.Chat(context.Background(), "Bagaimana penjualan bulan ini?")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(reply, "12%") {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestHTTPClientUploadOrdersCSV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/orders/upload-csv" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("csv_file")
		if err != nil {
			t.Fatalf("missing csv_file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "penjualan.csv" {
			t.Fatalf("unexpected file name %s", header.Filename)
		}
		_, _ = io.WriteString(w, `{
			"message": "CSV processing completed. 42 orders added, 0 orders skipped",
			"orders_added": 42,
			"orders_skipped": 0
		}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	result, err := client.UploadOrdersCSV(context.Background(), "penjualan.csv", strings.NewReader("id,total\n1,25000\n"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if result.OrdersAdded != 42 {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestHTTPClientUploadRejectedByBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error": "kolom total tidak ditemukan"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.UploadItemsCSV(context.Background(), "produk.csv", strings.NewReader("name\n")); err == nil {
		t.Fatal("expected rejection error")
	}
}

func TestHTTPClientTemplateUsesContentDisposition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/orders/csv-template" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Disposition", `attachment; filename="template_penjualan.csv"`)
		_, _ = w.Write([]byte("id,total,completed_at\n"))
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	template, err := client.OrdersCSVTemplate(context.Background())
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	if template.FileName != "template_penjualan.csv" {
		t.Fatalf("unexpected file name %s", template.FileName)
	}
	if !strings.HasPrefix(string(template.Content), "id,total") {
		t.Fatalf("unexpected content %q", template.Content)
	}
}

func TestHTTPClientSurfacesRemoteErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "Failed to fetch orders"}`, http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.FetchAllOrders(context.Background())
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient(HTTPConfig{}); err == nil {
		t.Fatal("expected base url error")
	}
}
