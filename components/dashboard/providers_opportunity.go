package dashboard

import (
	"context"
	"fmt"
	"net/url"
)

// OpportunityProvider surfaces the crowd estimate and AI recommendation for a
// configured location. It shares the analysis endpoint with the summary
// cards; request coalescing happens in the client layer.
type OpportunityProvider struct {
	repo AnalysisRepository
}

// NewOpportunityProvider wires an AnalysisRepository into a Provider.
func NewOpportunityProvider(repo AnalysisRepository) Provider {
	if repo == nil {
		repo = DemoAnalysisRepository{}
	}
	return &OpportunityProvider{repo: repo}
}

// Fetch assembles the opportunity widget payload.
func (p *OpportunityProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}
	location := stringValue(cfg["location"], "Indonesia")

	analysis, err := p.repo.FetchAnalysis(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("opportunity provider: %w", err)
	}

	title := translateOrFallback(ctx, meta.Translator, "dashboard.widget.nabung.widget.opportunity.title", meta.Viewer.Locale, "Peluang Bisnis", nil)

	return WidgetData{
		"title":            title,
		"location":         analysis.Location,
		"estimated_crowds": analysis.Crowd.EstimatedCrowds,
		"crowd_label":      FormatCount(analysis.Crowd.EstimatedCrowds),
		"recommendation":   analysis.Crowd.Recommendation,
		"top_sellers":      analysis.TopSellersRecommendation,
		"map_url":          mapEmbedURL(locationOrFallback(analysis.Location, location)),
	}, nil
}

func locationOrFallback(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

// mapEmbedURL points the location card's iframe at a Google Maps embed for
// the analyzed area.
func mapEmbedURL(location string) string {
	return "https://maps.google.com/maps?q=" + url.QueryEscape(location) + "&hl=id&output=embed"
}
