package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/nabunglabs/nabung-dashboard/components/dashboard"
	"github.com/nabunglabs/nabung-dashboard/components/dashboard/commands"
	"github.com/nabunglabs/nabung-dashboard/components/dashboard/httpapi"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the dashboard controller, command API, upload
// endpoints, and refresh hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Templates      httpapi.TemplateClient
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML         string
	Layout       string
	Widgets      string
	WidgetID     string
	Reorder      string
	Refresh      string
	Preferences  string
	WebSocket    string
	Products     string
	Sales        string
	Transactions string
	Upload       string
	CSVTemplate  string
	Chat         string
}

// Register mounts the dashboard routes (HTML pages, JSON, REST, WebSocket) on
// a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/app"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		html, err := cfg.Controller.RenderHTML(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send([]byte(html))
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		payload, err := cfg.Controller.LayoutPayload(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	group.Get(routes.Products, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		html, err := cfg.Controller.RenderProductsHTML(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send([]byte(html))
	}))

	salesPage := router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		html, err := cfg.Controller.RenderSalesHTML(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send([]byte(html))
	})
	group.Get(routes.Sales, salesPage)
	// the transaction history page shares the sales order list
	group.Get(routes.Transactions, salesPage)

	if cfg.API != nil {
		registerAPI(group, cfg.API, viewerResolver, routes)
	}

	if cfg.Templates != nil {
		registerTemplates(group, cfg.Templates, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload dashboard.AddWidgetRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Assign(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		if err := api.Remove(ctx.Context(), commands.RemoveWidgetInput{WidgetID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReorderWidgetsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Reorder(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Refresh(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))

	r.Post(routes.Preferences, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SaveLayoutPreferencesInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.Preferences(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Upload, router.WrapHandler(func(ctx router.Context) error {
		kind, err := importKind(ctx.Param("kind"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		fileName, content, err := csvFromMultipart(ctx)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.UploadCSVInput{
			Kind:     kind,
			FileName: fileName,
			Content:  content,
			Viewer:   resolver(ctx),
		}
		if err := api.Upload(ctx.Context(), input); err != nil {
			return respondError(ctx, uploadStatus(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "imported"})
	}))

	r.Post(routes.Chat, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		reply, err := api.Chat(ctx.Context(), commands.SendChatInput{
			Viewer:  resolver(ctx),
			Message: payload.Message,
		})
		if err != nil {
			return respondError(ctx, chatStatus(err), err)
		}
		return ctx.JSON(http.StatusOK, reply)
	}))
}

func registerTemplates[T any](r router.Router[T], templates httpapi.TemplateClient, routes RouteConfig) {
	r.Get(routes.CSVTemplate, router.WrapHandler(func(ctx router.Context) error {
		kind, err := importKind(ctx.Param("kind"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		var template dashboard.CSVTemplate
		if kind == dashboard.ImportItems {
			template, err = templates.ItemsCSVTemplate(ctx.Context())
		} else {
			template, err = templates.OrdersCSVTemplate(ctx.Context())
		}
		if err != nil {
			return respondError(ctx, http.StatusBadGateway, err)
		}
		ctx.SetHeader("Content-Type", "text/csv")
		ctx.SetHeader("Content-Disposition", fmt.Sprintf("attachment; filename=%q", template.FileName))
		return ctx.Send(template.Content)
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func importKind(raw string) (dashboard.ImportKind, error) {
	switch dashboard.ImportKind(raw) {
	case dashboard.ImportOrders:
		return dashboard.ImportOrders, nil
	case dashboard.ImportItems:
		return dashboard.ImportItems, nil
	default:
		return "", fmt.Errorf("unknown import kind %q", raw)
	}
}

// csvFromMultipart extracts the csv_file part out of a raw multipart body.
func csvFromMultipart(ctx router.Context) (string, io.Reader, error) {
	contentType := ctx.Header("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return "", nil, errors.New("multipart form upload required")
	}
	boundary := params["boundary"]
	if boundary == "" {
		return "", nil, errors.New("multipart boundary missing")
	}
	reader := multipart.NewReader(bytes.NewReader(ctx.Body()), boundary)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, err
		}
		if part.FormName() == "csv_file" {
			content, err := io.ReadAll(part)
			if err != nil {
				return "", nil, err
			}
			return part.FileName(), bytes.NewReader(content), nil
		}
	}
	return "", nil, errors.New("csv_file part missing")
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrImportNotCSV), errors.Is(err, dashboard.ErrImportNoFile):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrImportBusy):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func chatStatus(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrEmptyChatMessage):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrChatBusy):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return dashboard.DefaultLocale
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dasbor"
	}
	if routes.Layout == "" {
		routes.Layout = "/dasbor/_layout"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/dasbor/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/dasbor/widgets/:id"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/dasbor/widgets/reorder"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/dasbor/widgets/refresh"
	}
	if routes.Preferences == "" {
		routes.Preferences = "/dasbor/preferences"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dasbor/ws"
	}
	if routes.Products == "" {
		routes.Products = "/produk"
	}
	if routes.Sales == "" {
		routes.Sales = "/data-penjualan"
	}
	if routes.Transactions == "" {
		routes.Transactions = "/transaksi"
	}
	if routes.Upload == "" {
		routes.Upload = "/impor/:kind"
	}
	if routes.CSVTemplate == "" {
		routes.CSVTemplate = "/impor/:kind/template"
	}
	if routes.Chat == "" {
		routes.Chat = "/chat"
	}
	return routes
}
