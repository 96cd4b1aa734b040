package dashboard

import (
	"github.com/go-echarts/go-echarts/v2/types"
)

var defaultAreaDefinitions = []WidgetAreaDefinition{
	{Code: "nabung.dashboard.main", Name: "Merchant Dashboard (Main)", Description: "Primary chart canvas"},
	{Code: "nabung.dashboard.sidebar", Name: "Merchant Dashboard (Sidebar)", Description: "Summary cards and activity"},
	{Code: "nabung.dashboard.insight", Name: "Merchant Dashboard (Insight)", Description: "AI analysis and chat"},
}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code: "nabung.widget.section_cards",
		Name: "Business Summary",
		NameLocalized: map[string]string{
			"id": "Ringkasan Bisnis",
		},
		Description: "Revenue, profit, order count, and next-month forecast cards",
		DescriptionLocalized: map[string]string{
			"id": "Kartu pendapatan, laba, jumlah transaksi, dan prediksi bulan depan",
		},
		Category: "stats",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"location": map[string]any{
					"type":    "string",
					"default": "Indonesia",
				},
				"months": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 12,
					"default": 12,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "nabung.widget.revenue_chart",
		Name: "Monthly Revenue",
		NameLocalized: map[string]string{
			"id": "Pendapatan Bulanan",
		},
		Description: "Revenue per month over the selected time range",
		DescriptionLocalized: map[string]string{
			"id": "Pendapatan per bulan untuk rentang waktu terpilih",
		},
		Category: "charts",
		Schema:   revenueChartSchema(),
	},
	{
		Code: "nabung.widget.best_selling",
		Name: "Best Selling Products",
		NameLocalized: map[string]string{
			"id": "Produk Terlaris",
		},
		Description: "Top products ranked by units sold",
		DescriptionLocalized: map[string]string{
			"id": "Produk teratas berdasarkan jumlah terjual",
		},
		Category: "charts",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 20,
					"default": 5,
				},
				"range_label": map[string]any{
					"type":    "string",
					"enum":    RangeLabels(),
					"default": "Last 6 Months",
				},
				"theme": map[string]any{
					"type": "string",
					"enum": chartThemes(),
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "nabung.widget.cashflow_forecast",
		Name: "Cashflow Forecast",
		NameLocalized: map[string]string{
			"id": "Prediksi Arus Kas",
		},
		Description: "Historical revenue with a two-month scenario forecast",
		DescriptionLocalized: map[string]string{
			"id": "Pendapatan historis dengan prediksi dua bulan ke depan",
		},
		Category: "charts",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"theme": map[string]any{
					"type": "string",
					"enum": chartThemes(),
				},
				"show_chart_title": map[string]any{
					"type":    "boolean",
					"default": false,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "nabung.widget.opportunity",
		Name: "Business Opportunity",
		NameLocalized: map[string]string{
			"id": "Peluang Bisnis",
		},
		Description: "AI crowd estimate and recommendation for a location",
		DescriptionLocalized: map[string]string{
			"id": "Estimasi keramaian dan rekomendasi AI untuk sebuah lokasi",
		},
		Category: "insight",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"location": map[string]any{
					"type":    "string",
					"default": "Indonesia",
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "nabung.widget.chatbot",
		Name: "Business Assistant",
		NameLocalized: map[string]string{
			"id": "Asisten Bisnis",
		},
		Description: "Conversational assistant answering questions about the business",
		DescriptionLocalized: map[string]string{
			"id": "Asisten percakapan untuk tanya jawab seputar bisnis",
		},
		Category: "insight",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"greeting": map[string]any{
					"type": "string",
				},
				"history_limit": map[string]any{
					"type":    "integer",
					"minimum": 10,
					"maximum": 200,
					"default": 50,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "nabung.widget.recent_orders",
		Name: "Recent Orders",
		NameLocalized: map[string]string{
			"id": "Transaksi Terbaru",
		},
		Description: "Latest completed orders",
		DescriptionLocalized: map[string]string{
			"id": "Transaksi terakhir yang selesai",
		},
		Category: "activity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 50,
					"default": 10,
				},
			},
			"additionalProperties": false,
		},
	},
}

func revenueChartSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"range": map[string]any{
				"type":    "string",
				"enum":    RangeCodes(),
				"default": RangeLast12Month,
			},
			"theme": map[string]any{
				"type": "string",
				"enum": chartThemes(),
			},
			"show_chart_title": map[string]any{
				"type":    "boolean",
				"default": false,
			},
			"footer_note": map[string]any{
				"type": "string",
			},
		},
		"additionalProperties": false,
	}
}

func chartThemes() []string {
	return []string{
		string(types.ThemeWesteros),
		string(types.ThemeWalden),
		string(types.ThemeWonderland),
		string(types.ThemeChalk),
	}
}

var defaultSeedConfigs = []AddWidgetRequest{
	{
		DefinitionID:  "nabung.widget.section_cards",
		AreaCode:      "nabung.dashboard.sidebar",
		Configuration: map[string]any{"location": "Indonesia", "months": 12},
	},
	{
		DefinitionID:  "nabung.widget.revenue_chart",
		AreaCode:      "nabung.dashboard.main",
		Configuration: map[string]any{"range": RangeLast12Month},
	},
	{
		DefinitionID:  "nabung.widget.best_selling",
		AreaCode:      "nabung.dashboard.main",
		Configuration: map[string]any{"limit": 5, "range_label": "Last 6 Months"},
	},
	{
		DefinitionID:  "nabung.widget.cashflow_forecast",
		AreaCode:      "nabung.dashboard.main",
		Configuration: map[string]any{},
	},
	{
		DefinitionID:  "nabung.widget.opportunity",
		AreaCode:      "nabung.dashboard.insight",
		Configuration: map[string]any{"location": "Indonesia"},
	},
	{
		DefinitionID:  "nabung.widget.chatbot",
		AreaCode:      "nabung.dashboard.insight",
		Configuration: map[string]any{},
	},
	{
		DefinitionID:  "nabung.widget.recent_orders",
		AreaCode:      "nabung.dashboard.sidebar",
		Configuration: map[string]any{"limit": 10},
	},
}

// DefaultAreaDefinitions returns copies of built-in area definitions.
func DefaultAreaDefinitions() []WidgetAreaDefinition {
	out := make([]WidgetAreaDefinition, len(defaultAreaDefinitions))
	copy(out, defaultAreaDefinitions)
	return out
}

// DefaultWidgetDefinitions returns copies of built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(out, defaultWidgetDefinitions)
	return out
}

// DefaultSeedWidgets returns starter widget configurations.
func DefaultSeedWidgets() []AddWidgetRequest {
	out := make([]AddWidgetRequest, len(defaultSeedConfigs))
	for i, cfg := range defaultSeedConfigs {
		copyCfg := cfg
		if cfg.StartAt != nil {
			start := *cfg.StartAt
			copyCfg.StartAt = &start
		}
		if cfg.EndAt != nil {
			end := *cfg.EndAt
			copyCfg.EndAt = &end
		}
		out[i] = copyCfg
	}
	return out
}
