package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
)

func TestChartRendererBarRendersMarkup(t *testing.T) {
	renderer := NewChartRenderer(WithChartCache(nil))
	html, err := renderer.Bar("", ChartSpec{
		Title: "Pendapatan",
		XAxis: []string{"Jan 2025", "Feb 2025"},
		Series: []ChartSeries{
			{Name: "Pendapatan", Points: []ChartPoint{
				{Label: "Jan 2025", Value: 5000000.0},
				{Label: "Feb 2025", Value: 5400000.0},
			}},
		},
	}, ViewerContext{})
	if err != nil {
		t.Fatalf("Bar returned error: %v", err)
	}
	if !strings.Contains(html, "Jan 2025") || !strings.Contains(html, "Pendapatan") {
		t.Fatalf("expected axis labels and series name in markup")
	}
	if !strings.Contains(html, defaultChartAssetsHost) {
		t.Fatalf("expected echarts assets host referenced")
	}
}

func TestChartRendererUsesCache(t *testing.T) {
	cache := NewChartCache(time.Minute)
	renderer := NewChartRenderer(WithChartCache(cache))
	spec := ChartSpec{
		XAxis:  []string{"Jan 2025"},
		Series: []ChartSeries{{Name: "s", Points: []ChartPoint{{Label: "Jan 2025", Value: 1.0}}}},
	}
	first, err := renderer.Bar("render-test-key", spec, ViewerContext{})
	if err != nil {
		t.Fatalf("Bar returned error: %v", err)
	}
	second, err := renderer.Bar("render-test-key", ChartSpec{}, ViewerContext{})
	if err != nil {
		t.Fatalf("Bar returned error: %v", err)
	}
	if first != second {
		t.Fatalf("expected cached markup on second render")
	}
}

func TestChartRendererThemePrecedence(t *testing.T) {
	renderer := NewChartRenderer(
		WithChartTheme(types.ThemeWalden),
		WithChartThemeResolver(func(viewer ViewerContext) string {
			if viewer.UserID == "dark-mode" {
				return types.ThemeChalk
			}
			return ""
		}),
	)
	if got := renderer.resolveTheme(ViewerContext{}, types.ThemeWonderland); got != types.ThemeWonderland {
		t.Fatalf("expected spec override to win, got %q", got)
	}
	if got := renderer.resolveTheme(ViewerContext{UserID: "dark-mode"}, ""); got != types.ThemeChalk {
		t.Fatalf("expected resolver theme, got %q", got)
	}
	if got := renderer.resolveTheme(ViewerContext{}, ""); got != types.ThemeWalden {
		t.Fatalf("expected static theme fallback, got %q", got)
	}
}

func TestConfigValueHelpers(t *testing.T) {
	if got := stringValue("x", "fallback"); got != "x" {
		t.Fatalf("stringValue passthrough failed: %q", got)
	}
	if got := stringValue("", "fallback"); got != "fallback" {
		t.Fatalf("stringValue fallback failed: %q", got)
	}
	if got := intValue(float64(7), 0); got != 7 {
		t.Fatalf("intValue float64 failed: %d", got)
	}
	if got := intValue("12", 0); got != 12 {
		t.Fatalf("intValue string failed: %d", got)
	}
	if got := intValue(nil, 5); got != 5 {
		t.Fatalf("intValue fallback failed: %d", got)
	}
	if !boolValue(true) || !boolValue("TRUE") || boolValue("nope") || boolValue(nil) {
		t.Fatalf("boolValue coercion failed")
	}
}
