package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

// ProductListQuery fetches the full product catalog for the products page.
type ProductListQuery struct {
	repo dashboard.ItemListRepository
}

// NewProductListQuery builds the query.
func NewProductListQuery(repo dashboard.ItemListRepository) *ProductListQuery {
	if repo == nil {
		repo = dashboard.DemoItemListRepository{}
	}
	return &ProductListQuery{repo: repo}
}

var _ gocommand.Querier[dashboard.ViewerContext, []dashboard.Item] = (*ProductListQuery)(nil)

// Query returns all products.
func (q *ProductListQuery) Query(ctx context.Context, _ dashboard.ViewerContext) ([]dashboard.Item, error) {
	return q.repo.FetchItems(ctx)
}

// OrderListQuery fetches the order history for the sales pages.
type OrderListQuery struct {
	repo dashboard.OrderListRepository
}

// NewOrderListQuery builds the query.
func NewOrderListQuery(repo dashboard.OrderListRepository) *OrderListQuery {
	if repo == nil {
		repo = dashboard.DemoOrderListRepository{}
	}
	return &OrderListQuery{repo: repo}
}

var _ gocommand.Querier[dashboard.ViewerContext, []dashboard.Order] = (*OrderListQuery)(nil)

// Query returns all completed orders.
func (q *OrderListQuery) Query(ctx context.Context, _ dashboard.ViewerContext) ([]dashboard.Order, error) {
	return q.repo.FetchOrders(ctx)
}
