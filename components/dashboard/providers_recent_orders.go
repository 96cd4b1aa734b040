package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// RecentOrdersProvider lists the latest completed orders as an activity feed.
type RecentOrdersProvider struct {
	repo OrderListRepository
	now  func() time.Time
}

// NewRecentOrdersProvider wires an OrderListRepository into a Provider.
func NewRecentOrdersProvider(repo OrderListRepository) Provider {
	if repo == nil {
		repo = DemoOrderListRepository{}
	}
	return &RecentOrdersProvider{repo: repo, now: time.Now}
}

// Fetch assembles the recent orders widget payload.
func (p *RecentOrdersProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}
	limit := intValue(cfg["limit"], 10)

	orders, err := p.repo.FetchOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("recent orders provider: %w", err)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CompletedAt.After(orders[j].CompletedAt)
	})
	if limit > 0 && limit < len(orders) {
		orders = orders[:limit]
	}

	now := p.now().UTC()
	items := make([]map[string]any, len(orders))
	for i, order := range orders {
		quantity := 0
		for _, line := range order.Items {
			quantity += line.Quantity
		}
		items[i] = map[string]any{
			"id":       order.ID,
			"total":    FormatRupiah(order.Total),
			"quantity": quantity,
			"ago":      relativeAge(now.Sub(order.CompletedAt)),
		}
	}

	title := translateOrFallback(ctx, meta.Translator, "dashboard.widget.nabung.widget.recent_orders.title", meta.Viewer.Locale, "Transaksi Terbaru", nil)
	return WidgetData{
		"title": title,
		"items": items,
	}, nil
}

// relativeAge renders a coarse Indonesian age label for the feed.
func relativeAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "baru saja"
	case d < time.Hour:
		return fmt.Sprintf("%d menit lalu", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d jam lalu", int(d.Hours()))
	default:
		return fmt.Sprintf("%d hari lalu", int(d.Hours()/24))
	}
}
