package dashboard

import (
	"context"
	"testing"
	"time"
)

func TestOpportunityProviderShapesPayload(t *testing.T) {
	repo := &stubAnalysisRepo{analysis: DashboardAnalysis{
		Location:                 "Bandung",
		TopSellersRecommendation: "Fokuskan promosi di menu minuman dingin",
		Crowd: CrowdAnalysis{
			EstimatedCrowds: 1800,
			Recommendation:  "Buka cabang dekat kampus",
		},
	}}
	provider := NewOpportunityProvider(repo)
	data, err := provider.Fetch(context.Background(), WidgetContext{
		Instance: WidgetInstance{
			Configuration: map[string]any{"location": "Bandung"},
		},
	})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if repo.location != "Bandung" {
		t.Fatalf("expected configured location forwarded, got %q", repo.location)
	}
	if data["crowd_label"] != "1.800" {
		t.Fatalf("unexpected crowd label: %v", data["crowd_label"])
	}
	if data["recommendation"] != "Buka cabang dekat kampus" {
		t.Fatalf("unexpected recommendation: %v", data["recommendation"])
	}
	if data["map_url"] != "https://maps.google.com/maps?q=Bandung&hl=id&output=embed" {
		t.Fatalf("unexpected map url: %v", data["map_url"])
	}
}

func TestOpportunityProviderDefaultsLocation(t *testing.T) {
	repo := &stubAnalysisRepo{}
	provider := NewOpportunityProvider(repo)
	if _, err := provider.Fetch(context.Background(), WidgetContext{}); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if repo.location != "Indonesia" {
		t.Fatalf("expected default location, got %q", repo.location)
	}
}

func TestChatbotProviderReturnsHistory(t *testing.T) {
	sessions := NewChatSessions(&scriptedChatClient{})
	provider := NewChatbotProvider(sessions)
	viewer := ViewerContext{UserID: "owner-1"}
	if _, err := sessions.Session(viewer).Send(context.Background(), "halo"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	data, err := provider.Fetch(context.Background(), WidgetContext{Viewer: viewer})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	messages, _ := data["messages"].([]map[string]any)
	if len(messages) != 3 {
		t.Fatalf("expected greeting + exchange, got %#v", data["messages"])
	}
	if messages[0]["text"] != DefaultChatGreeting {
		t.Fatalf("expected greeting first, got %v", messages[0]["text"])
	}
	if data["busy"] != false {
		t.Fatalf("expected idle session")
	}
}

func TestRecentOrdersProviderSortsAndLimits(t *testing.T) {
	base := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
	repo := &stubOrderListRepo{orders: []Order{
		{ID: "o1", Total: 45000, CompletedAt: base.Add(-48 * time.Hour), Items: []OrderItem{{ItemID: "i1", Quantity: 2}}},
		{ID: "o2", Total: 80000, CompletedAt: base.Add(-30 * time.Second), Items: []OrderItem{{ItemID: "i1", Quantity: 1}, {ItemID: "i2", Quantity: 3}}},
		{ID: "o3", Total: 25000, CompletedAt: base.Add(-2 * time.Hour)},
	}}
	provider := &RecentOrdersProvider{repo: repo, now: func() time.Time { return base }}
	data, err := provider.Fetch(context.Background(), WidgetContext{
		Instance: WidgetInstance{Configuration: map[string]any{"limit": 2}},
	})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	items, _ := data["items"].([]map[string]any)
	if len(items) != 2 {
		t.Fatalf("expected limit applied, got %#v", data["items"])
	}
	if items[0]["id"] != "o2" || items[1]["id"] != "o3" {
		t.Fatalf("expected newest-first ordering, got %#v", items)
	}
	if items[0]["quantity"] != 4 {
		t.Fatalf("expected line quantities summed, got %v", items[0]["quantity"])
	}
	if items[0]["ago"] != "baru saja" {
		t.Fatalf("unexpected age label: %v", items[0]["ago"])
	}
	if items[0]["total"] != "Rp 80.000" {
		t.Fatalf("unexpected total: %v", items[0]["total"])
	}
}

func TestRelativeAge(t *testing.T) {
	cases := map[time.Duration]string{
		20 * time.Second: "baru saja",
		5 * time.Minute:  "5 menit lalu",
		3 * time.Hour:    "3 jam lalu",
		50 * time.Hour:   "2 hari lalu",
	}
	for d, want := range cases {
		if got := relativeAge(d); got != want {
			t.Fatalf("relativeAge(%v) = %q, want %q", d, got, want)
		}
	}
}

type stubOrderListRepo struct {
	orders []Order
	err    error
}

func (s *stubOrderListRepo) FetchOrders(context.Context) ([]Order, error) {
	return s.orders, s.err
}
