package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/nabunglabs/nabung-dashboard/components/dashboard"
	"github.com/nabunglabs/nabung-dashboard/components/dashboard/commands"
)

// Executor exposes the shared dashboard commands to transport adapters.
type Executor interface {
	Assign(ctx context.Context, req dashboard.AddWidgetRequest) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error
	Refresh(ctx context.Context, input commands.RefreshWidgetInput) error
	Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error
	Upload(ctx context.Context, input commands.UploadCSVInput) error
	Chat(ctx context.Context, input commands.SendChatInput) (dashboard.ChatMessage, error)
}

// CommandExecutor implements Executor on top of the command handlers.
type CommandExecutor struct {
	AssignCmd      gocommand.Commander[dashboard.AddWidgetRequest]
	RemoveCmd      gocommand.Commander[commands.RemoveWidgetInput]
	ReorderCmd     gocommand.Commander[commands.ReorderWidgetsInput]
	RefreshCmd     gocommand.Commander[commands.RefreshWidgetInput]
	PreferencesCmd gocommand.Commander[commands.SaveLayoutPreferencesInput]
	UploadCmd      gocommand.Commander[commands.UploadCSVInput]
	ChatQuery      gocommand.Querier[commands.SendChatInput, dashboard.ChatMessage]
}

func (e *CommandExecutor) Assign(ctx context.Context, req dashboard.AddWidgetRequest) error {
	return execute(ctx, e.AssignCmd, req)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	return execute(ctx, e.RemoveCmd, input)
}

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error {
	return execute(ctx, e.ReorderCmd, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshWidgetInput) error {
	return execute(ctx, e.RefreshCmd, input)
}

func (e *CommandExecutor) Preferences(ctx context.Context, input commands.SaveLayoutPreferencesInput) error {
	return execute(ctx, e.PreferencesCmd, input)
}

func (e *CommandExecutor) Upload(ctx context.Context, input commands.UploadCSVInput) error {
	return execute(ctx, e.UploadCmd, input)
}

func (e *CommandExecutor) Chat(ctx context.Context, input commands.SendChatInput) (dashboard.ChatMessage, error) {
	if e.ChatQuery == nil {
		return dashboard.ChatMessage{}, errors.New("httpapi: chat query not configured")
	}
	return e.ChatQuery.Query(ctx, input)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errors.New("httpapi: command not configured")
	}
	return cmd.Execute(ctx, msg)
}

// TemplateClient downloads example CSV files from the sales backend.
type TemplateClient interface {
	OrdersCSVTemplate(ctx context.Context) (dashboard.CSVTemplate, error)
	ItemsCSVTemplate(ctx context.Context) (dashboard.CSVTemplate, error)
}

// ViewerFunc resolves the viewer behind an incoming request.
type ViewerFunc func(*http.Request) dashboard.ViewerContext

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	API       Executor
	Templates TemplateClient
	Viewer    ViewerFunc
}

// maxCSVUploadBytes caps import uploads at 10 MiB.
const maxCSVUploadBytes = 10 << 20

func (h *Handlers) viewer(r *http.Request) dashboard.ViewerContext {
	if h.Viewer != nil {
		return h.Viewer(r)
	}
	return dashboard.ViewerContext{Locale: dashboard.DefaultLocale}
}

func (h *Handlers) HandleAssignWidget(w http.ResponseWriter, r *http.Request) {
	var payload dashboard.AddWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Assign(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	input := commands.RemoveWidgetInput{WidgetID: widgetID}
	if err := h.API.Remove(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderWidgetsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Reorder(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRefreshWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveLayoutPreferencesInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.Viewer = h.viewer(r)
	if err := h.API.Preferences(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleUploadCSV accepts a multipart upload with a csv_file part and imports
// it into the dataset named by kind.
func (h *Handlers) HandleUploadCSV(w http.ResponseWriter, r *http.Request, kind dashboard.ImportKind) {
	file, header, err := parseCSVUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	input := commands.UploadCSVInput{
		Kind:     kind,
		FileName: header.Filename,
		Content:  file,
		Viewer:   h.viewer(r),
	}
	if err := h.API.Upload(r.Context(), input); err != nil {
		http.Error(w, err.Error(), importErrorStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "imported"})
}

func parseCSVUpload(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxCSVUploadBytes); err != nil {
		return nil, nil, fmt.Errorf("httpapi: parse upload: %w", err)
	}
	file, header, err := r.FormFile("csv_file")
	if err != nil {
		return nil, nil, fmt.Errorf("httpapi: missing csv_file part: %w", err)
	}
	return file, header, nil
}

func importErrorStatus(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrImportNotCSV), errors.Is(err, dashboard.ErrImportNoFile):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrImportBusy):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// HandleCSVTemplate streams the example file for the dataset named by kind.
func (h *Handlers) HandleCSVTemplate(w http.ResponseWriter, r *http.Request, kind dashboard.ImportKind) {
	if h.Templates == nil {
		http.Error(w, "templates unavailable", http.StatusNotFound)
		return
	}
	var template dashboard.CSVTemplate
	var err error
	switch kind {
	case dashboard.ImportItems:
		template, err = h.Templates.ItemsCSVTemplate(r.Context())
	default:
		template, err = h.Templates.OrdersCSVTemplate(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", template.FileName))
	_, _ = w.Write(template.Content)
}

type chatRequest struct {
	Message string `json:"message"`
}

// HandleChat relays one user message to the assistant and returns the reply.
func (h *Handlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.SendChatInput{Viewer: h.viewer(r), Message: payload.Message}
	reply, err := h.API.Chat(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), chatErrorStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reply)
}

func chatErrorStatus(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrEmptyChatMessage):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrChatBusy):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
