package dashboard

import "context"

// Events emitted by the service. Provider errors are recorded per widget
// instance while the layout itself still resolves.
const (
	EventWidgetUpdated  = "dashboard.widget.event"
	EventProviderFailed = "dashboard.widget.provider_error"
)

// Telemetry records dashboard events for observability. The logrus-backed
// implementation lives in pkg/telemetry.
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
