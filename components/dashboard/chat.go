package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChatFallbackReply is returned verbatim when the assistant backend fails.
const ChatFallbackReply = "Maaf, koneksi bermasalah. Coba lagi ya!"

// DefaultChatGreeting seeds every new conversation.
const DefaultChatGreeting = "Halo! Ada yang bisa dibantu soal bisnismu?"

const defaultChatHistoryLimit = 50

// ErrChatBusy reports that a send is already in flight for the session.
// Callers surface it instead of queueing a second request.
var ErrChatBusy = errors.New("dashboard: chat reply still in flight")

// ErrEmptyChatMessage reports a blank outgoing message.
var ErrEmptyChatMessage = errors.New("dashboard: chat message is empty")

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is a single conversation entry.
type ChatMessage struct {
	ID     string    `json:"id"`
	Role   ChatRole  `json:"role"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// ChatSession holds one conversation with the assistant. At most one send is
// active at a time; Send returns ErrChatBusy while a reply is pending.
type ChatSession struct {
	client       ChatClient
	historyLimit int

	mu      sync.Mutex
	busy    bool
	history []ChatMessage
}

// ChatSessionOption customizes session behavior.
type ChatSessionOption func(*ChatSession)

// WithChatGreeting overrides the seeded assistant greeting.
func WithChatGreeting(greeting string) ChatSessionOption {
	return func(s *ChatSession) {
		if greeting != "" {
			s.history = []ChatMessage{newChatMessage(ChatRoleAssistant, greeting)}
		}
	}
}

// WithChatHistoryLimit caps retained messages; older entries are dropped.
func WithChatHistoryLimit(limit int) ChatSessionOption {
	return func(s *ChatSession) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// NewChatSession builds a session seeded with the assistant greeting.
func NewChatSession(client ChatClient, options ...ChatSessionOption) *ChatSession {
	if client == nil {
		client = DemoChatClient{}
	}
	s := &ChatSession{
		client:       client,
		historyLimit: defaultChatHistoryLimit,
		history:      []ChatMessage{newChatMessage(ChatRoleAssistant, DefaultChatGreeting)},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Send appends the user message, calls the assistant, and appends the reply.
// A backend failure appends the fallback reply instead of dropping the turn;
// the returned error still reports the underlying cause.
func (s *ChatSession) Send(ctx context.Context, message string) (ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatMessage{}, ErrEmptyChatMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ChatMessage{}, ErrChatBusy
	}
	s.busy = true
	s.append(newChatMessage(ChatRoleUser, message))
	s.mu.Unlock()

	reply, err := s.client.Chat(ctx, message)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		fallback := newChatMessage(ChatRoleAssistant, ChatFallbackReply)
		s.append(fallback)
		return fallback, err
	}
	msg := newChatMessage(ChatRoleAssistant, reply)
	s.append(msg)
	return msg, nil
}

// History returns a copy of the conversation so far.
func (s *ChatSession) History() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// Busy reports whether a reply is currently in flight.
func (s *ChatSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Reset clears the conversation back to the greeting.
func (s *ChatSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = []ChatMessage{newChatMessage(ChatRoleAssistant, DefaultChatGreeting)}
}

func (s *ChatSession) append(msg ChatMessage) {
	s.history = append(s.history, msg)
	if len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
}

func newChatMessage(role ChatRole, text string) ChatMessage {
	return ChatMessage{
		ID:     uuid.NewString(),
		Role:   role,
		Text:   text,
		SentAt: time.Now().UTC(),
	}
}

// ChatSessions tracks one session per viewer.
type ChatSessions struct {
	client  ChatClient
	options []ChatSessionOption

	mu       sync.Mutex
	sessions map[string]*ChatSession
}

// NewChatSessions builds a session pool sharing one client.
func NewChatSessions(client ChatClient, options ...ChatSessionOption) *ChatSessions {
	return &ChatSessions{
		client:   client,
		options:  options,
		sessions: map[string]*ChatSession{},
	}
}

// Session returns the viewer's session, creating it on first use.
func (p *ChatSessions) Session(viewer ViewerContext) *ChatSession {
	key := viewer.UserID
	if key == "" {
		key = "anonymous"
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if session, ok := p.sessions[key]; ok {
		return session
	}
	session := NewChatSession(p.client, p.options...)
	p.sessions[key] = session
	return session
}
