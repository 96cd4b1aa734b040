package dashboard

import (
	"context"
	"fmt"
	"strings"
)

// Controller turns resolved layouts into render payloads for transports and
// templates.
type Controller struct {
	service  *Service
	renderer Renderer
	title    string
	products ItemListRepository
	orders   OrderListRepository

	// Last-known-good list data. The generation tokens keep a slow earlier
	// fetch from overwriting a newer result, and a failed refresh serves the
	// previous rows marked stale instead of an empty page.
	productList *FetchState[[]Item]
	orderList   *FetchState[[]Order]
}

// ControllerOption customizes the controller.
type ControllerOption func(*Controller)

// WithRenderer injects a template renderer for HTML output.
func WithRenderer(r Renderer) ControllerOption {
	return func(c *Controller) {
		c.renderer = r
	}
}

// WithDashboardTitle overrides the page title.
func WithDashboardTitle(title string) ControllerOption {
	return func(c *Controller) {
		c.title = title
	}
}

// WithProductRepository enables the product list page.
func WithProductRepository(repo ItemListRepository) ControllerOption {
	return func(c *Controller) {
		c.products = repo
	}
}

// WithOrderRepository enables the sales list page.
func WithOrderRepository(repo OrderListRepository) ControllerOption {
	return func(c *Controller) {
		c.orders = repo
	}
}

// NewController wires the service into a controller.
func NewController(service *Service, options ...ControllerOption) *Controller {
	c := &Controller{
		service:     service,
		title:       "Dasbor Bisnis",
		productList: NewFetchState[[]Item](),
		orderList:   NewFetchState[[]Order](),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Render resolves the layout for a viewer and returns it to the caller.
func (c *Controller) Render(ctx context.Context, viewer ViewerContext) (Layout, error) {
	if c.service == nil {
		return Layout{}, nil
	}
	return c.service.ConfigureLayout(ctx, viewer)
}

// LayoutPayload resolves the layout and flattens it into a template-friendly
// map. Widget names come from the definition localized for the viewer.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	layout, err := c.Render(ctx, viewer)
	if err != nil {
		return nil, err
	}

	title := c.title
	if c.service != nil {
		title = translateOrFallback(ctx, c.service.Translations(), "dashboard.title", viewer.Locale, c.title, nil)
	}

	// Template lookups use the short slug ("main"), not the dotted code.
	areas := make(map[string]any, len(layout.Areas))
	for code, widgets := range layout.Areas {
		entries := make([]map[string]any, 0, len(widgets))
		for _, widget := range widgets {
			entry := map[string]any{
				"id":         widget.ID,
				"definition": widget.DefinitionID,
				"config":     widget.Configuration,
			}
			if c.service != nil {
				if def, ok := c.service.Registry().Definition(widget.DefinitionID); ok {
					entry["name"] = def.NameForLocale(viewer.Locale)
					entry["category"] = def.Category
				}
			}
			if widget.Metadata != nil {
				if data, ok := widget.Metadata["data"]; ok {
					entry["data"] = data
				}
				if errMsg, ok := widget.Metadata["error"]; ok {
					entry["error"] = errMsg
				}
			}
			entries = append(entries, entry)
		}
		areas[areaSlug(code)] = map[string]any{
			"code":    code,
			"widgets": entries,
		}
	}

	return map[string]any{
		"title":  title,
		"locale": viewer.Locale,
		"ranges": RangeCodes(),
		"areas":  areas,
	}, nil
}

func areaSlug(code string) string {
	if idx := strings.LastIndex(code, "."); idx >= 0 {
		return code[idx+1:]
	}
	return code
}

// RenderHTML resolves the layout and renders the dashboard template.
func (c *Controller) RenderHTML(ctx context.Context, viewer ViewerContext) (string, error) {
	if c.renderer == nil {
		return "", fmt.Errorf("dashboard: controller has no renderer")
	}
	payload, err := c.LayoutPayload(ctx, viewer)
	if err != nil {
		return "", err
	}
	return c.renderer.Render(TemplateDashboard, payload)
}

// ProductsPayload loads the product catalog and flattens it for templates.
// Prices carry pre-formatted Rupiah strings so templates stay logic-free.
func (c *Controller) ProductsPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	if c.products == nil {
		return nil, fmt.Errorf("dashboard: controller has no product repository")
	}
	token := c.productList.Begin()
	items, err := c.products.FetchItems(ctx)
	stale := false
	if err != nil {
		c.productList.Fail(token, err)
		snap := c.productList.Snapshot()
		if !snap.HasData {
			return nil, err
		}
		items = snap.Data
		stale = true
	} else if !c.productList.Complete(token, items) {
		// A newer fetch finished first; serve its rows instead.
		if snap := c.productList.Snapshot(); snap.HasData {
			items = snap.Data
		}
	}
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		margin := item.Price - item.ProductionPrice
		rows = append(rows, map[string]any{
			"id":               item.ID,
			"name":             item.Name,
			"stock":            item.Stock,
			"price":            FormatRupiah(item.Price),
			"production_price": FormatRupiah(item.ProductionPrice),
			"margin":           FormatRupiah(margin),
		})
	}
	return map[string]any{
		"title":  "Daftar Produk",
		"locale": viewer.Locale,
		"items":  rows,
		"total":  len(rows),
		"stale":  stale,
	}, nil
}

// SalesPayload loads the order history and flattens it for templates.
func (c *Controller) SalesPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	if c.orders == nil {
		return nil, fmt.Errorf("dashboard: controller has no order repository")
	}
	token := c.orderList.Begin()
	orders, err := c.orders.FetchOrders(ctx)
	stale := false
	if err != nil {
		c.orderList.Fail(token, err)
		snap := c.orderList.Snapshot()
		if !snap.HasData {
			return nil, err
		}
		orders = snap.Data
		stale = true
	} else if !c.orderList.Complete(token, orders) {
		if snap := c.orderList.Snapshot(); snap.HasData {
			orders = snap.Data
		}
	}
	rows := make([]map[string]any, 0, len(orders))
	var revenue float64
	for _, order := range orders {
		quantity := 0
		for _, line := range order.Items {
			quantity += line.Quantity
		}
		revenue += order.Total
		rows = append(rows, map[string]any{
			"id":           order.ID,
			"quantity":     quantity,
			"total":        FormatRupiah(order.Total),
			"completed_at": order.CompletedAt.Format("02-01-2006 15:04"),
		})
	}
	return map[string]any{
		"title":   "Data Penjualan",
		"locale":  viewer.Locale,
		"orders":  rows,
		"total":   len(rows),
		"revenue": FormatRupiah(revenue),
		"stale":   stale,
	}, nil
}

// RenderProductsHTML renders the product list page.
func (c *Controller) RenderProductsHTML(ctx context.Context, viewer ViewerContext) (string, error) {
	if c.renderer == nil {
		return "", fmt.Errorf("dashboard: controller has no renderer")
	}
	payload, err := c.ProductsPayload(ctx, viewer)
	if err != nil {
		return "", err
	}
	return c.renderer.Render(TemplateProducts, payload)
}

// RenderSalesHTML renders the sales list page.
func (c *Controller) RenderSalesHTML(ctx context.Context, viewer ViewerContext) (string, error) {
	if c.renderer == nil {
		return "", fmt.Errorf("dashboard: controller has no renderer")
	}
	payload, err := c.SalesPayload(ctx, viewer)
	if err != nil {
		return "", err
	}
	return c.renderer.Render(TemplateSales, payload)
}
