package dashboard

import (
	"context"
	"errors"
	"fmt"
)

// RegisterAreas ensures the dashboard widget areas exist in the store.
func RegisterAreas(ctx context.Context, store WidgetStore) error {
	if store == nil {
		return errMissingWidgetStore
	}
	for _, area := range DefaultAreaDefinitions() {
		if _, err := store.EnsureArea(ctx, area); err != nil {
			return fmt.Errorf("register area %s: %w", area.Code, err)
		}
	}
	return nil
}

// RegisterDefinitions registers the built-in widget definitions with the
// store and, when provided, the registry.
func RegisterDefinitions(ctx context.Context, store WidgetStore, registry ProviderRegistry) error {
	if store == nil {
		return errMissingWidgetStore
	}
	for _, def := range DefaultWidgetDefinitions() {
		if _, err := store.EnsureDefinition(ctx, def); err != nil {
			return fmt.Errorf("register definition %s: %w", def.Code, err)
		}
		if registry != nil {
			if err := registry.RegisterDefinition(def); err != nil {
				return fmt.Errorf("register definition in registry %s: %w", def.Code, err)
			}
		}
	}
	return nil
}

// SeedLayout creates the starter dashboard widget assignments.
func SeedLayout(ctx context.Context, service *Service) error {
	return SeedLayoutWidgets(ctx, service, DefaultSeedWidgets())
}

// SeedLayoutWidgets assigns the given widget requests, collecting per-widget
// failures so one bad seed does not abort the rest.
func SeedLayoutWidgets(ctx context.Context, service *Service, reqs []AddWidgetRequest) error {
	if service == nil {
		return errors.New("dashboard: service is required to seed layout")
	}
	var seedErr error
	for _, req := range reqs {
		if err := service.AddWidget(ctx, req); err != nil {
			seedErr = errors.Join(seedErr, err)
		}
	}
	return seedErr
}

// SeedWidgetsForLocation returns the default seed set with the business
// location applied to the widgets that scope their analysis by area.
func SeedWidgetsForLocation(location string) []AddWidgetRequest {
	reqs := DefaultSeedWidgets()
	if location == "" {
		return reqs
	}
	for i, req := range reqs {
		if req.DefinitionID != "nabung.widget.opportunity" {
			continue
		}
		cfg := make(map[string]any, len(req.Configuration)+1)
		for k, v := range req.Configuration {
			cfg[k] = v
		}
		cfg["location"] = location
		reqs[i].Configuration = cfg
	}
	return reqs
}
