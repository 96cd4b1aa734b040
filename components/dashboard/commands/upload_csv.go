package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

// UploadCSVInput carries one CSV upload destined for the sales backend.
type UploadCSVInput struct {
	Kind     dashboard.ImportKind
	FileName string
	Content  io.Reader
	Viewer   dashboard.ViewerContext
}

// CSVUploader forwards validated CSV files to the sales backend.
type CSVUploader interface {
	UploadOrdersCSV(ctx context.Context, fileName string, csv io.Reader) (dashboard.ImportResult, error)
	UploadItemsCSV(ctx context.Context, fileName string, csv io.Reader) (dashboard.ImportResult, error)
}

// UploadCSVCommand drives the import dialog state machine around the actual
// upload, then notifies transports so open dashboards refetch their data.
type UploadCSVCommand struct {
	uploader  CSVUploader
	sessions  map[dashboard.ImportKind]*dashboard.ImportSession
	notifier  refreshNotifier
	telemetry Telemetry
}

// NewUploadCSVCommand wires the uploader and the per-dataset dialog sessions.
func NewUploadCSVCommand(uploader CSVUploader, notifier refreshNotifier, telemetry Telemetry) *UploadCSVCommand {
	return &UploadCSVCommand{
		uploader: uploader,
		sessions: map[dashboard.ImportKind]*dashboard.ImportSession{
			dashboard.ImportOrders: dashboard.NewImportSession(dashboard.ImportOrders),
			dashboard.ImportItems:  dashboard.NewImportSession(dashboard.ImportItems),
		},
		notifier:  notifier,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[UploadCSVInput] = (*UploadCSVCommand)(nil)

// Session exposes the dialog session for a dataset so transports can render
// its state.
func (c *UploadCSVCommand) Session(kind dashboard.ImportKind) *dashboard.ImportSession {
	return c.sessions[kind]
}

// Execute validates the file, uploads it, and records the outcome on the
// dialog session. A failed upload leaves the session retryable.
func (c *UploadCSVCommand) Execute(ctx context.Context, msg UploadCSVInput) error {
	if c.uploader == nil {
		return errors.New("upload command requires uploader")
	}
	session, ok := c.sessions[msg.Kind]
	if !ok {
		return fmt.Errorf("upload command: unknown import kind %q", msg.Kind)
	}
	if msg.Content == nil {
		return dashboard.ErrImportNoFile
	}

	if err := session.Open(); err != nil {
		return err
	}
	if err := session.SelectFile(msg.FileName); err != nil {
		return err
	}
	fileName, err := session.BeginUpload()
	if err != nil {
		return err
	}

	var result dashboard.ImportResult
	switch msg.Kind {
	case dashboard.ImportOrders:
		result, err = c.uploader.UploadOrdersCSV(ctx, fileName, msg.Content)
	case dashboard.ImportItems:
		result, err = c.uploader.UploadItemsCSV(ctx, fileName, msg.Content)
	}
	session.FinishUpload(result, err)
	if err != nil {
		c.telemetry.Record(ctx, EventImportFailed, map[string]any{
			"kind":  string(msg.Kind),
			"error": err.Error(),
		})
		return err
	}

	if c.notifier != nil {
		if err := c.notifier.NotifyWidgetUpdated(ctx, dashboard.WidgetEvent{Reason: "import"}); err != nil {
			return err
		}
	}
	c.telemetry.Record(ctx, EventImportCompleted, map[string]any{
		"kind":         string(msg.Kind),
		"orders_added": result.OrdersAdded,
		"items_added":  result.ItemsAdded,
	})
	return nil
}
