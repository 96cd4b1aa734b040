package commands

import "context"

// Events emitted by the command layer, one per state-changing operation.
const (
	EventWidgetAssigned   = "dashboard.widget.assign"
	EventWidgetRemoved    = "dashboard.widget.remove"
	EventWidgetsReordered = "dashboard.widget.reorder"
	EventWidgetRefreshed  = "dashboard.widget.refresh"
	EventPreferencesSaved = "dashboard.preferences.save"
	EventDashboardSeeded  = "dashboard.seed"
	EventImportCompleted  = "dashboard.import.completed"
	EventImportFailed     = "dashboard.import.failed"
	EventChatSent         = "dashboard.chat.sent"
	EventChatFallback     = "dashboard.chat.fallback"
)

// Telemetry allows commands to emit structured events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
