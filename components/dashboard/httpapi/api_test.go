package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nabunglabs/nabung-dashboard/components/dashboard"
	"github.com/nabunglabs/nabung-dashboard/components/dashboard/commands"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(ctx context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

type stubExecutor struct {
	CommandExecutor
	chatReply dashboard.ChatMessage
	chatErr   error
	chatLast  commands.SendChatInput
}

func (s *stubExecutor) Chat(ctx context.Context, input commands.SendChatInput) (dashboard.ChatMessage, error) {
	s.chatLast = input
	return s.chatReply, s.chatErr
}

func TestHandleAssignWidget(t *testing.T) {
	assign := &stubCommander[dashboard.AddWidgetRequest]{}
	api := &Handlers{API: &CommandExecutor{AssignCmd: assign}}
	payload := dashboard.AddWidgetRequest{DefinitionID: "nabung.widget.revenue_chart", AreaCode: "nabung.dashboard.main"}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/widgets", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleAssignWidget(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if assign.calls != 1 {
		t.Fatalf("expected assign to execute")
	}
}

func TestHandleRemoveWidget(t *testing.T) {
	remove := &stubCommander[commands.RemoveWidgetInput]{}
	api := &Handlers{API: &CommandExecutor{RemoveCmd: remove}}
	req := httptest.NewRequest(http.MethodDelete, "/widgets/w1", nil)
	rec := httptest.NewRecorder()
	api.HandleRemoveWidget(rec, req, "w1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if remove.last.WidgetID != "w1" {
		t.Fatalf("expected widget id propagation")
	}
}

func TestHandleReorderWidgets(t *testing.T) {
	reorder := &stubCommander[commands.ReorderWidgetsInput]{}
	api := &Handlers{API: &CommandExecutor{ReorderCmd: reorder}}
	payload := commands.ReorderWidgetsInput{AreaCode: "nabung.dashboard.main", WidgetIDs: []string{"w1", "w2"}}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/widgets/reorder", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleReorderWidgets(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if reorder.calls != 1 {
		t.Fatalf("expected reorder to execute")
	}
}

func TestHandleRefreshWidget(t *testing.T) {
	refresh := &stubCommander[commands.RefreshWidgetInput]{}
	api := &Handlers{API: &CommandExecutor{RefreshCmd: refresh}}
	payload := commands.RefreshWidgetInput{Event: dashboard.WidgetEvent{AreaCode: "nabung.dashboard.main"}}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/widgets/refresh", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleRefreshWidget(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if refresh.calls != 1 {
		t.Fatalf("expected refresh to execute")
	}
}

func TestHandleSavePreferencesAttachesViewer(t *testing.T) {
	prefs := &stubCommander[commands.SaveLayoutPreferencesInput]{}
	api := &Handlers{
		API: &CommandExecutor{PreferencesCmd: prefs},
		Viewer: func(*http.Request) dashboard.ViewerContext {
			return dashboard.ViewerContext{UserID: "owner", Locale: "id"}
		},
	}
	payload := commands.SaveLayoutPreferencesInput{TimeRange: dashboard.RangeLast90Days}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/preferences", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleSavePreferences(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if prefs.last.Viewer.UserID != "owner" {
		t.Fatalf("expected viewer attached, got %#v", prefs.last.Viewer)
	}
}

func TestHandleUploadCSV(t *testing.T) {
	upload := &stubCommander[commands.UploadCSVInput]{}
	api := &Handlers{API: &CommandExecutor{UploadCmd: upload}}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("csv_file", "penjualan.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("id,total\n1,25000\n")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/orders/upload-csv", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	api.HandleUploadCSV(rec, req, dashboard.ImportOrders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if upload.last.Kind != dashboard.ImportOrders || upload.last.FileName != "penjualan.csv" {
		t.Fatalf("unexpected input: %#v", upload.last)
	}
}

func TestHandleUploadCSVRejectsNonCSV(t *testing.T) {
	upload := &stubCommander[commands.UploadCSVInput]{err: dashboard.ErrImportNotCSV}
	api := &Handlers{API: &CommandExecutor{UploadCmd: upload}}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("csv_file", "laporan.xlsx")
	_, _ = part.Write([]byte("binary"))
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/orders/upload-csv", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	api.HandleUploadCSV(rec, req, dashboard.ImportOrders)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type stubTemplateClient struct{}

func (stubTemplateClient) OrdersCSVTemplate(context.Context) (dashboard.CSVTemplate, error) {
	return dashboard.CSVTemplate{FileName: "template_penjualan.csv", Content: []byte("id,total\n")}, nil
}

func (stubTemplateClient) ItemsCSVTemplate(context.Context) (dashboard.CSVTemplate, error) {
	return dashboard.CSVTemplate{FileName: "template_produk.csv", Content: []byte("name,price\n")}, nil
}

func TestHandleCSVTemplate(t *testing.T) {
	api := &Handlers{Templates: stubTemplateClient{}}
	req := httptest.NewRequest(http.MethodGet, "/items/csv-template", nil)
	rec := httptest.NewRecorder()
	api.HandleCSVTemplate(rec, req, dashboard.ImportItems)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "template_produk.csv") {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "name,price") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestHandleChat(t *testing.T) {
	exec := &stubExecutor{chatReply: dashboard.ChatMessage{Role: dashboard.ChatRoleAssistant, Text: "Penjualan naik."}}
	api := &Handlers{API: exec}
	buf, _ := json.Marshal(map[string]string{"message": "Bagaimana penjualan?"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleChat(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if exec.chatLast.Message != "Bagaimana penjualan?" {
		t.Fatalf("unexpected chat input: %#v", exec.chatLast)
	}
	var reply dashboard.ChatMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Text != "Penjualan naik." {
		t.Fatalf("unexpected reply %#v", reply)
	}
}

func TestHandleChatBusy(t *testing.T) {
	exec := &stubExecutor{chatErr: dashboard.ErrChatBusy}
	api := &Handlers{API: exec}
	buf, _ := json.Marshal(map[string]string{"message": "Halo"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleChat(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
