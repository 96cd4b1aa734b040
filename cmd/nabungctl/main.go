package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/nabunglabs/nabung-dashboard/components/dashboard"
	"github.com/nabunglabs/nabung-dashboard/components/dashboard/commands"
	"github.com/nabunglabs/nabung-dashboard/components/dashboard/gorouter"
	"github.com/nabunglabs/nabung-dashboard/components/dashboard/httpapi"
	"github.com/nabunglabs/nabung-dashboard/pkg/posapi"
	"github.com/nabunglabs/nabung-dashboard/pkg/rediscache"
	"github.com/nabunglabs/nabung-dashboard/pkg/telemetry"
)

type cli struct {
	Serve    serveCmd    `cmd:"" help:"Run the business dashboard server."`
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a widget definition, provider stub, and manifest entry."`
}

func main() {
	_ = godotenv.Load()
	ctx := kong.Parse(&cli{},
		kong.Description("Business dashboard server and widget tooling for the nabung POS."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type serveCmd struct {
	Listen    string `default:":8080" env:"LISTEN_ADDR" help:"Address the HTTP server binds to."`
	POSURL    string `name:"pos-url" env:"POS_API_URL" help:"Base URL of the POS backend. Empty runs against demo data."`
	APIKey    string `name:"api-key" env:"POS_API_KEY" help:"Bearer token for the POS backend."`
	RedisAddr string `name:"redis-addr" env:"REDIS_ADDR" help:"Optional Redis address for the shared chart cache."`
	Location  string `env:"BUSINESS_LOCATION" help:"Business location used by the AI analysis widgets."`
	BasePath  string `default:"/app" help:"Base path the dashboard routes mount under."`
	Manifest  string `type:"path" help:"Optional widget manifest YAML to load at startup."`
	Demo      bool   `help:"Force demo data even when --pos-url is set."`
}

func (cmd *serveCmd) Run(ctx context.Context) error {
	logger := logrus.StandardLogger()

	client, err := cmd.buildClient()
	if err != nil {
		return err
	}

	renderer, err := cmd.buildChartRenderer()
	if err != nil {
		return err
	}

	sessions := dashboard.NewChatSessions(client)
	deps := dashboard.DefaultProviderDeps{
		Revenue:    posapi.NewRevenueRepository(client),
		TopSelling: posapi.NewTopSellingRepository(client),
		Orders:     posapi.NewOrdersSummaryRepository(client),
		OrderList:  posapi.NewOrderListRepository(client),
		Analysis:   posapi.NewAnalysisRepository(client),
		Insights:   posapi.NewInsightsRepository(client),
		Chat:       sessions,
		Renderer:   renderer,
	}

	registry := dashboard.NewRegistry()
	if err := dashboard.RegisterProviders(registry, deps); err != nil {
		return fmt.Errorf("nabungctl: register providers: %w", err)
	}
	if cmd.Manifest != "" {
		if _, err := registry.LoadManifestFile(cmd.Manifest); err != nil {
			return fmt.Errorf("nabungctl: load manifest: %w", err)
		}
	}

	store := dashboard.NewMemoryWidgetStore()
	hook := dashboard.NewBroadcastHook()
	recorder := telemetry.NewRecorder(telemetry.WithLogger(logger))

	service := dashboard.NewService(dashboard.Options{
		WidgetStore: store,
		Providers:   registry,
		RefreshHook: hook,
		Telemetry:   recorder,
	})

	seed := commands.NewSeedDashboardCommand(store, registry, service, recorder)
	if err := seed.Execute(ctx, commands.SeedDashboardInput{SeedLayout: true, Location: cmd.Location}); err != nil {
		return fmt.Errorf("nabungctl: seed dashboard: %w", err)
	}

	pageRenderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("nabungctl: build renderer: %w", err)
	}
	controller := dashboard.NewController(service,
		dashboard.WithRenderer(pageRenderer),
		dashboard.WithProductRepository(posapi.NewItemListRepository(client)),
		dashboard.WithOrderRepository(posapi.NewOrderListRepository(client)),
	)

	executor := &httpapi.CommandExecutor{
		AssignCmd:      commands.NewAssignWidgetCommand(service, recorder),
		RemoveCmd:      commands.NewRemoveWidgetCommand(service, recorder),
		ReorderCmd:     commands.NewReorderWidgetsCommand(service, recorder),
		RefreshCmd:     commands.NewRefreshWidgetCommand(service, recorder),
		PreferencesCmd: commands.NewSaveLayoutPreferencesCommand(service, recorder),
		UploadCmd:      commands.NewUploadCSVCommand(client, service, recorder),
		ChatQuery:      commands.NewSendChatQuery(sessions, recorder),
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		API:        executor,
		Templates:  client,
		Broadcast:  hook,
		BasePath:   cmd.BasePath,
	}); err != nil {
		return fmt.Errorf("nabungctl: register routes: %w", err)
	}

	mode := "live"
	if cmd.demoMode() {
		mode = "demo"
	}
	logger.WithFields(logrus.Fields{
		"listen": cmd.Listen,
		"base":   cmd.BasePath,
		"mode":   mode,
	}).Info("dashboard ready")
	return server.Serve(cmd.Listen)
}

func (cmd *serveCmd) demoMode() bool {
	return cmd.Demo || cmd.POSURL == ""
}

func (cmd *serveCmd) buildClient() (posapi.Client, error) {
	if cmd.demoMode() {
		return posapi.NewMockClient(demoMockData()), nil
	}
	httpClient, err := posapi.NewHTTPClient(posapi.HTTPConfig{
		BaseURL: cmd.POSURL,
		APIKey:  cmd.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("nabungctl: pos client: %w", err)
	}
	return posapi.NewCachedClient(httpClient), nil
}

func (cmd *serveCmd) buildChartRenderer() (*dashboard.ChartRenderer, error) {
	if cmd.RedisAddr == "" {
		return dashboard.NewChartRenderer(), nil
	}
	redisClient := redis.NewClient(&redis.Options{Addr: cmd.RedisAddr})
	cache := rediscache.New(redisClient)
	return dashboard.NewChartRenderer(dashboard.WithChartCache(cache)), nil
}

// demoMockData seeds the mock POS client with a plausible year of sales for
// a small food stall.
func demoMockData() posapi.MockData {
	monthly := make(map[string]float64, 12)
	now := time.Now()
	revenues := []float64{
		5200000, 5650000, 6100000, 5900000, 6400000, 6900000,
		6700000, 7250000, 7800000, 7400000, 8100000, 8500000,
	}
	var total float64
	for i, revenue := range revenues {
		month := now.AddDate(0, i-len(revenues)+1, 0).Format("2006-01")
		monthly[month] = revenue
		total += revenue
	}

	return posapi.MockData{
		Revenue: dashboard.RevenueReport{TotalRevenue: total, Monthly: monthly},
		TopSelling: []dashboard.TopSellingItem{
			{ItemName: "Es Teh Manis", TotalSold: 182},
			{ItemName: "Nasi Goreng Spesial", TotalSold: 167},
			{ItemName: "Ayam Geprek", TotalSold: 141},
			{ItemName: "Mie Ayam Bakso", TotalSold: 118},
			{ItemName: "Es Jeruk", TotalSold: 96},
		},
		Orders: []dashboard.Order{
			{ID: "ord-demo-1", Total: 48000, CompletedAt: now.Add(-25 * time.Minute), Items: []dashboard.OrderItem{{ItemID: "itm-1", Quantity: 2}}},
			{ID: "ord-demo-2", Total: 25000, CompletedAt: now.Add(-2 * time.Hour), Items: []dashboard.OrderItem{{ItemID: "itm-2", Quantity: 1}}},
			{ID: "ord-demo-3", Total: 63000, CompletedAt: now.Add(-26 * time.Hour), Items: []dashboard.OrderItem{{ItemID: "itm-3", Quantity: 3}}},
		},
		Items: []dashboard.Item{
			{ID: "itm-1", Name: "Nasi Goreng Spesial", Stock: 40, Price: 25000, ProductionPrice: 14000},
			{ID: "itm-2", Name: "Es Teh Manis", Stock: 120, Price: 6000, ProductionPrice: 1800},
			{ID: "itm-3", Name: "Ayam Geprek", Stock: 35, Price: 21000, ProductionPrice: 12500},
		},
		Analysis: dashboard.DashboardAnalysis{
			Location: "Jakarta Selatan",
			Cashflow: dashboard.CashflowAnalysis{
				CleanProfit:   4200000,
				ProfitMargin:  31.5,
				Status:        "GOOD",
				StatusMessage: "Arus kas sehat bulan ini",
			},
			TopSellersRecommendation: "Pertahankan stok Es Teh Manis dan Nasi Goreng Spesial",
			SalesForecastNextMonth:   "132 transaksi diperkirakan bulan depan",
			RevenueInsights:          "Pendapatan naik 12% dibanding bulan lalu",
			Crowd: dashboard.CrowdAnalysis{
				EstimatedCrowds: 220,
				Recommendation:  "Tambah stok menjelang akhir pekan",
			},
		},
		Insights: dashboard.FinancialInsights{
			TotalRevenue:  total,
			TotalProfit:   total * 0.3,
			TotalExpenses: total * 0.7,
			Monthly:       dashboard.BuildRevenueSeries(monthly),
			Tips: []string{
				"Pisahkan kas pribadi dan kas usaha",
				"Sisihkan 10% pendapatan untuk dana darurat",
			},
			TrendAnalytics: "Tren pendapatan naik stabil enam bulan terakhir",
			Forecast: &dashboard.RevenueForecast{
				Month1: dashboard.MonthProjection{Optimistic: 9100000, Baseline: 8500000, Pessimistic: 7800000},
				Month2: dashboard.MonthProjection{Optimistic: 9600000, Baseline: 8500000, Pessimistic: 7200000},
			},
		},
		ChatReply:    "Penjualan bulan ini naik 12% dibanding bulan lalu. Menu terlaris masih Es Teh Manis.",
		ImportResult: dashboard.ImportResult{OrdersAdded: 42, Message: "42 pesanan diimpor"},
		OrdersTemplate: dashboard.CSVTemplate{
			FileName: "template_penjualan.csv",
			Content:  []byte("id,total,completed_at,item_id,quantity\n"),
		},
		ItemsTemplate: dashboard.CSVTemplate{
			FileName: "template_produk.csv",
			Content:  []byte("name,stock,price,production_price\n"),
		},
	}
}

type scaffoldCmd struct {
	Code            string   `required:"" help:"Fully-qualified widget code (e.g. nabung.widget.stock_alert)."`
	Name            string   `required:"" help:"Display name for the widget."`
	Description     string   `required:"" help:"One-line description used in manifests."`
	Category        string   `default:"custom" help:"Widget category (analytics, sales, etc.)."`
	ManifestPath    string   `required:"" type:"path" help:"Path to the widget manifest YAML file to update."`
	SchemaPath      string   `type:"path" help:"Optional path to a JSON schema file for the widget configuration."`
	Tag             []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Capabilities    []string `help:"Provider capability labels (html,json,sse,...)."`
	ProviderPackage string   `default:"github.com/nabunglabs/nabung-dashboard/components/dashboard" help:"Go package where the provider factory lives."`
	ProviderEntry   string   `help:"Factory identifier recorded in the manifest (defaults to New<Widget>Provider)."`
	ProviderOut     string   `help:"File path for the generated provider stub (defaults to components/dashboard/<code>_provider.go)."`
	Overwrite       bool     `help:"Overwrite existing provider stub / manifest entry if present."`
	SkipProvider    bool     `name:"skip-provider" help:"Skip provider stub generation."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("nabungctl: widget code %s must contain at least one '.' segment", cmd.Code)
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("nabungctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, widget := range doc.Widgets {
			if widget.Definition.Code == cmd.Code {
				return fmt.Errorf("nabungctl: manifest already defines widget %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	baseName := deriveBaseName(cmd.Code)
	providerType := baseName + "Provider"
	providerEntry := cmd.ProviderEntry
	if providerEntry == "" {
		providerEntry = fmt.Sprintf("%s.New%s", cmd.ProviderPackage, providerType)
	}

	entry := dashboard.ManifestWidget{
		Definition: dashboard.WidgetDefinition{
			Code:        cmd.Code,
			Name:        cmd.Name,
			Description: cmd.Description,
			Category:    cmd.Category,
			Schema:      schema,
		},
		Provider: dashboard.ManifestProvider{
			Name:         fmt.Sprintf("%s Provider", cmd.Name),
			Summary:      cmd.Description,
			Entry:        providerEntry,
			Package:      cmd.ProviderPackage,
			Capabilities: cmd.Capabilities,
		},
		Tags: cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Widgets {
			if doc.Widgets[idx].Definition.Code == cmd.Code {
				doc.Widgets[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Widgets = append(doc.Widgets, entry)
		}
	} else {
		doc.Widgets = append(doc.Widgets, entry)
	}

	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Definition.Code < doc.Widgets[j].Definition.Code
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	if cmd.SkipProvider {
		fmt.Fprintf(os.Stdout, "✓ Added %s to %s (provider entry recorded as %s)\n", cmd.Code, manifestPath, providerEntry)
		return nil
	}

	providerPath := cmd.ProviderOut
	if providerPath == "" {
		providerPath = filepath.Join("components", "dashboard", fmt.Sprintf("%s_provider.go", sanitizeFileName(cmd.Code)))
	}
	if err := writeProviderStub(providerPath, providerType, cmd.Code, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s and generated %s\n", cmd.Code, manifestPath, providerPath)
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("nabungctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("nabungctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*dashboard.WidgetManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &dashboard.WidgetManifestDocument{
				Version: dashboard.ManifestVersion,
				Widgets: []dashboard.ManifestWidget{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("nabungctl: stat manifest: %w", err)
	}
	doc, err := dashboard.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeManifest(path string, doc *dashboard.WidgetManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("nabungctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("nabungctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("nabungctl: write manifest: %w", err)
	}
	return nil
}

func writeProviderStub(path, providerType, code string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("nabungctl: provider stub %s already exists (use --overwrite or --provider-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("nabungctl: mkdir provider dir: %w", err)
	}
	content := fmt.Sprintf(`package dashboard

import (
	"context"
)

// %s fetches data for %s widgets.
type %s struct{}

// New%s wires the provider into the dashboard registry.
func New%s() Provider {
	return &%s{}
}

// Fetch retrieves the widget payload. Replace with your implementation.
func (p *%s) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	_ = meta
	return WidgetData{
		"message": "replace with real data",
	}, nil
}
`, providerType, code, providerType, providerType, providerType, providerType, providerType)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("nabungctl: write provider stub: %w", err)
	}
	return nil
}

func deriveBaseName(code string) string {
	parts := strings.Split(code, ".")
	slug := parts[len(parts)-1]
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = code
	}
	return strcase.ToCamel(slug)
}

func sanitizeFileName(code string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_")
	return strings.ToLower(replacer.Replace(code))
}
