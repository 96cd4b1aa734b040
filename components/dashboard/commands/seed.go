package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

// SeedDashboardInput controls bootstrap behavior. Location scopes the
// analysis widgets to the business area when set.
type SeedDashboardInput struct {
	SeedLayout bool
	Location   string
}

// SeedDashboardCommand registers areas/definitions and optionally seeds the
// starter layout.
type SeedDashboardCommand struct {
	store     dashboard.WidgetStore
	registry  dashboard.ProviderRegistry
	service   *dashboard.Service
	telemetry Telemetry
}

// NewSeedDashboardCommand wires dependencies.
func NewSeedDashboardCommand(store dashboard.WidgetStore, registry dashboard.ProviderRegistry, service *dashboard.Service, telemetry Telemetry) *SeedDashboardCommand {
	return &SeedDashboardCommand{
		store:     store,
		registry:  registry,
		service:   service,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[SeedDashboardInput] = (*SeedDashboardCommand)(nil)

// Execute runs the bootstrap pipeline.
func (c *SeedDashboardCommand) Execute(ctx context.Context, msg SeedDashboardInput) error {
	if c.store == nil {
		return errors.New("seed command requires widget store")
	}
	if err := dashboard.RegisterAreas(ctx, c.store); err != nil {
		return err
	}
	if err := dashboard.RegisterDefinitions(ctx, c.store, c.registry); err != nil {
		return err
	}
	if msg.SeedLayout && c.service != nil {
		widgets := dashboard.SeedWidgetsForLocation(msg.Location)
		if err := dashboard.SeedLayoutWidgets(ctx, c.service, widgets); err != nil {
			return err
		}
	}
	c.telemetry.Record(ctx, EventDashboardSeeded, map[string]any{"seed_layout": msg.SeedLayout})
	return nil
}
