package dashboard

import (
	"context"
)

// ChatbotProvider exposes the viewer's conversation state to the dashboard.
// Message sends go through the chat command/transport; the widget only renders
// history and the busy flag.
type ChatbotProvider struct {
	sessions *ChatSessions
}

// NewChatbotProvider wires a session pool into a Provider.
func NewChatbotProvider(sessions *ChatSessions) Provider {
	if sessions == nil {
		sessions = NewChatSessions(DemoChatClient{})
	}
	return &ChatbotProvider{sessions: sessions}
}

// Sessions exposes the pool so transports share conversation state with the
// widget.
func (p *ChatbotProvider) Sessions() *ChatSessions {
	return p.sessions
}

// Fetch returns the conversation history for rendering.
func (p *ChatbotProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	session := p.sessions.Session(meta.Viewer)
	history := session.History()

	messages := make([]map[string]any, len(history))
	for i, msg := range history {
		messages[i] = map[string]any{
			"id":      msg.ID,
			"role":    string(msg.Role),
			"text":    msg.Text,
			"sent_at": msg.SentAt,
		}
	}

	title := translateOrFallback(ctx, meta.Translator, "dashboard.widget.nabung.widget.chatbot.title", meta.Viewer.Locale, "Asisten Bisnis", nil)
	return WidgetData{
		"title":    title,
		"messages": messages,
		"busy":     session.Busy(),
	}, nil
}
