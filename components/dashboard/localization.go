package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// DefaultLocale is the locale the dashboard ships with. The merchant UI is
// Indonesian-first with English as the fallback catalog.
const DefaultLocale = "id"

// TranslationService exposes locale-aware translation helpers. Implementations
// can provide pluralization or interpolation; transports and providers rely on
// the lightweight interface defined here.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// ResolveLocalizedValue selects the best translation for the provided locale
// and falls back to the supplied value. Keys match case-insensitively, and
// language-region pairs (`id-ID`) fall back to their base language (`id`).
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		if candidate == "" {
			continue
		}
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	if value, ok := values["default"]; ok && value != "" {
		return value
	}
	return fallback
}

// NameForLocale returns the display name for the requested locale with
// graceful fallback to the default name.
func (def WidgetDefinition) NameForLocale(locale string) string {
	return ResolveLocalizedValue(def.NameLocalized, locale, def.Name)
}

// DescriptionForLocale returns the localized description if available.
func (def WidgetDefinition) DescriptionForLocale(locale string) string {
	return ResolveLocalizedValue(def.DescriptionLocalized, locale, def.Description)
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}

func normalizeLocale(locale string) string {
	return strings.TrimSpace(strings.ToLower(locale))
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}

// StaticCatalog is an in-memory TranslationService seeded with the dashboard
// UI strings. Args interpolate into {placeholder} markers.
type StaticCatalog struct {
	defaultLocale string
	mu            sync.RWMutex
	catalog       map[string]map[string]string
}

// NewTranslationService builds the built-in catalog. Unknown locales resolve
// through the usual candidate chain down to the default locale.
func NewTranslationService(defaultLocale string) *StaticCatalog {
	if defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	return &StaticCatalog{
		defaultLocale: normalizeLocale(defaultLocale),
		catalog: map[string]map[string]string{
			"id": {
				"dashboard.title":               "Dasbor Bisnis",
				"dashboard.greeting":            "Halo! Ada yang bisa dibantu soal bisnismu?",
				"dashboard.range.label":         "Rentang waktu",
				"dashboard.error.fetch":         "Gagal memuat data. Coba lagi.",
				"dashboard.error.chat":          "Maaf, koneksi bermasalah. Coba lagi ya!",
				"dashboard.import.title":        "Impor Data CSV",
				"dashboard.import.success":      "Berhasil mengimpor {orders} transaksi dan {items} produk.",
				"dashboard.products.title":      "Daftar Produk",
				"dashboard.sales.title":         "Riwayat Transaksi",
				"dashboard.salesdata.title":     "Data Penjualan",
				"dashboard.cards.revenue":       "Total Pendapatan",
				"dashboard.cards.profit":        "Laba Bersih",
				"dashboard.cards.orders":        "Total Transaksi",
				"dashboard.cards.forecast":      "Prediksi Bulan Depan",
				"dashboard.chart.empty":         "Belum ada data untuk rentang ini.",
				"dashboard.insight.unavailable": "Wawasan AI belum tersedia.",
				"dashboard.forecast.legend":     "Prediksi",
				"dashboard.historical.label":    "Aktual",
			},
			"en": {
				"dashboard.title":               "Business Dashboard",
				"dashboard.greeting":            "Hi! How can I help with your business?",
				"dashboard.range.label":         "Time range",
				"dashboard.error.fetch":         "Failed to load data. Try again.",
				"dashboard.error.chat":          "Sorry, connection trouble. Please retry!",
				"dashboard.import.title":        "Import CSV Data",
				"dashboard.import.success":      "Imported {orders} orders and {items} items.",
				"dashboard.products.title":      "Products",
				"dashboard.sales.title":         "Sales History",
				"dashboard.salesdata.title":     "Sales Data",
				"dashboard.cards.revenue":       "Total Revenue",
				"dashboard.cards.profit":        "Net Profit",
				"dashboard.cards.orders":        "Total Orders",
				"dashboard.cards.forecast":      "Next Month Forecast",
				"dashboard.chart.empty":         "No data for this range yet.",
				"dashboard.insight.unavailable": "AI insight not available yet.",
				"dashboard.forecast.legend":     "Forecast",
				"dashboard.historical.label":    "Actual",
			},
		},
	}
}

// Translate resolves a catalog entry, interpolating args into {name} markers.
// Missing keys return an error so callers can fall back.
func (c *StaticCatalog) Translate(_ context.Context, key, locale string, args map[string]any) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	candidates := localeCandidates(locale)
	candidates = append(candidates, c.defaultLocale)
	for _, candidate := range candidates {
		entries, ok := c.catalog[candidate]
		if !ok {
			continue
		}
		if value, ok := entries[key]; ok && value != "" {
			return interpolate(value, args), nil
		}
	}
	return "", fmt.Errorf("dashboard: translation %s missing for locale %s", key, locale)
}

// AddTranslations merges extra entries into a locale catalog.
func (c *StaticCatalog) AddTranslations(locale string, entries map[string]string) {
	locale = normalizeLocale(locale)
	if locale == "" || len(entries) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.catalog[locale]
	if !ok {
		existing = make(map[string]string, len(entries))
		c.catalog[locale] = existing
	}
	for key, value := range entries {
		existing[key] = value
	}
}

func interpolate(value string, args map[string]any) string {
	if len(args) == 0 {
		return value
	}
	for name, arg := range args {
		value = strings.ReplaceAll(value, "{"+name+"}", fmt.Sprint(arg))
	}
	return value
}
