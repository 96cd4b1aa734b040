package dashboard

// Default providers run against the demo repositories so the dashboard is
// usable out of the box. Deployments swap real repositories in with
// NewDefaultProviders or per-widget registry overrides.
var defaultProviders = NewDefaultProviders(DefaultProviderDeps{})

// DefaultProviderDeps groups the repositories behind the built-in widgets.
// Nil fields fall back to the demo implementations.
type DefaultProviderDeps struct {
	Revenue    RevenueRepository
	TopSelling TopSellingRepository
	Orders     OrdersSummaryRepository
	OrderList  OrderListRepository
	Analysis   AnalysisRepository
	Insights   InsightsRepository
	Chat       *ChatSessions
	Renderer   *ChartRenderer
}

// NewDefaultProviders builds the provider set for the built-in widgets.
func NewDefaultProviders(deps DefaultProviderDeps) map[string]Provider {
	if deps.Renderer == nil {
		deps.Renderer = NewChartRenderer()
	}
	if deps.Chat == nil {
		deps.Chat = NewChatSessions(DemoChatClient{})
	}
	return map[string]Provider{
		"nabung.widget.section_cards":     NewSectionCardsProvider(deps.Revenue, deps.Orders, deps.Analysis),
		"nabung.widget.revenue_chart":     NewRevenueChartProvider(deps.Revenue, deps.Analysis, deps.Renderer),
		"nabung.widget.best_selling":      NewBestSellingProvider(deps.TopSelling, deps.Analysis, deps.Renderer),
		"nabung.widget.cashflow_forecast": NewCashflowForecastProvider(deps.Insights, deps.Renderer),
		"nabung.widget.opportunity":       NewOpportunityProvider(deps.Analysis),
		"nabung.widget.chatbot":           NewChatbotProvider(deps.Chat),
		"nabung.widget.recent_orders":     NewRecentOrdersProvider(deps.OrderList),
	}
}

// RegisterProviders replaces the built-in providers on a registry with ones
// backed by the given repositories.
func RegisterProviders(reg *Registry, deps DefaultProviderDeps) error {
	for code, provider := range NewDefaultProviders(deps) {
		if _, ok := reg.Definition(code); !ok {
			continue
		}
		if err := reg.RegisterProvider(code, provider); err != nil {
			return err
		}
	}
	return nil
}
