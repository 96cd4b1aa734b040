package commands

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

// SendChatInput is one outgoing assistant message.
type SendChatInput struct {
	Viewer  dashboard.ViewerContext `json:"viewer"`
	Message string                  `json:"message"`
}

// SendChatQuery sends a message through the viewer's chat session and
// returns the assistant reply. A busy session is an error; the caller shows
// it instead of queueing.
type SendChatQuery struct {
	sessions  *dashboard.ChatSessions
	telemetry Telemetry
}

// NewSendChatQuery wires the session pool.
func NewSendChatQuery(sessions *dashboard.ChatSessions, telemetry Telemetry) *SendChatQuery {
	return &SendChatQuery{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Querier[SendChatInput, dashboard.ChatMessage] = (*SendChatQuery)(nil)

// Query sends the message and returns the reply. When the backend fails, the
// fallback reply is returned alongside a nil error; the session already shows
// it and the user is asked to retry.
func (q *SendChatQuery) Query(ctx context.Context, msg SendChatInput) (dashboard.ChatMessage, error) {
	if q.sessions == nil {
		return dashboard.ChatMessage{}, errors.New("chat query requires sessions")
	}
	if strings.TrimSpace(msg.Message) == "" {
		return dashboard.ChatMessage{}, dashboard.ErrEmptyChatMessage
	}
	session := q.sessions.Session(msg.Viewer)
	reply, err := session.Send(ctx, msg.Message)
	if err != nil {
		if errors.Is(err, dashboard.ErrChatBusy) || errors.Is(err, dashboard.ErrEmptyChatMessage) {
			return dashboard.ChatMessage{}, err
		}
		q.telemetry.Record(ctx, EventChatFallback, map[string]any{
			"user_id": msg.Viewer.UserID,
			"error":   err.Error(),
		})
		return reply, nil
	}
	q.telemetry.Record(ctx, EventChatSent, map[string]any{
		"user_id": msg.Viewer.UserID,
	})
	return reply, nil
}
