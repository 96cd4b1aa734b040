package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type scriptedChatClient struct {
	mu      sync.Mutex
	chatFn  func(ctx context.Context, message string) (string, error)
	prompts []string
}

func (c *scriptedChatClient) Chat(ctx context.Context, message string) (string, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, message)
	fn := c.chatFn
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx, message)
	}
	return "Baik, sudah dicatat.", nil
}

func TestChatSessionSendAppendsBothTurns(t *testing.T) {
	client := &scriptedChatClient{}
	session := NewChatSession(client)
	reply, err := session.Send(context.Background(), "Berapa omzet bulan ini?")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if reply.Role != ChatRoleAssistant || reply.Text != "Baik, sudah dicatat." {
		t.Fatalf("unexpected reply: %#v", reply)
	}
	history := session.History()
	if len(history) != 3 {
		t.Fatalf("expected greeting + user + assistant, got %d entries", len(history))
	}
	if history[0].Text != DefaultChatGreeting {
		t.Fatalf("expected seeded greeting, got %q", history[0].Text)
	}
	if history[1].Role != ChatRoleUser || history[1].Text != "Berapa omzet bulan ini?" {
		t.Fatalf("expected user turn recorded, got %#v", history[1])
	}
	if len(client.prompts) != 1 || client.prompts[0] != "Berapa omzet bulan ini?" {
		t.Fatalf("expected trimmed message forwarded, got %v", client.prompts)
	}
}

func TestChatSessionRejectsEmptyMessage(t *testing.T) {
	session := NewChatSession(&scriptedChatClient{})
	if _, err := session.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyChatMessage) {
		t.Fatalf("expected ErrEmptyChatMessage, got %v", err)
	}
	if len(session.History()) != 1 {
		t.Fatalf("expected history untouched, got %d entries", len(session.History()))
	}
}

func TestChatSessionBusyWhileReplyInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	client := &scriptedChatClient{
		chatFn: func(context.Context, string) (string, error) {
			close(started)
			<-release
			return "selesai", nil
		},
	}
	session := NewChatSession(client)
	done := make(chan error, 1)
	go func() {
		_, err := session.Send(context.Background(), "pertama")
		done <- err
	}()
	<-started
	if !session.Busy() {
		t.Fatalf("expected session busy during send")
	}
	if _, err := session.Send(context.Background(), "kedua"); !errors.Is(err, ErrChatBusy) {
		t.Fatalf("expected ErrChatBusy, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first send returned error: %v", err)
	}
	if session.Busy() {
		t.Fatalf("expected session idle after reply")
	}
}

func TestChatSessionFallbackOnBackendFailure(t *testing.T) {
	backendErr := errors.New("posapi: chat: status 502")
	client := &scriptedChatClient{
		chatFn: func(context.Context, string) (string, error) {
			return "", backendErr
		},
	}
	session := NewChatSession(client)
	reply, err := session.Send(context.Background(), "halo")
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error surfaced, got %v", err)
	}
	if reply.Text != ChatFallbackReply {
		t.Fatalf("expected fallback reply, got %q", reply.Text)
	}
	history := session.History()
	if history[len(history)-1].Text != ChatFallbackReply {
		t.Fatalf("expected fallback appended to history, got %#v", history[len(history)-1])
	}
	if session.Busy() {
		t.Fatalf("expected session idle after failed send")
	}
}

func TestChatSessionHistoryLimit(t *testing.T) {
	session := NewChatSession(&scriptedChatClient{}, WithChatHistoryLimit(4))
	for i := 0; i < 5; i++ {
		if _, err := session.Send(context.Background(), "pesan"); err != nil {
			t.Fatalf("Send returned error: %v", err)
		}
	}
	history := session.History()
	if len(history) != 4 {
		t.Fatalf("expected history capped at 4, got %d", len(history))
	}
	if history[0].Text == DefaultChatGreeting {
		t.Fatalf("expected oldest entries dropped first")
	}
}

func TestChatSessionCustomGreeting(t *testing.T) {
	session := NewChatSession(&scriptedChatClient{}, WithChatGreeting("Selamat datang di Warung Nabung!"))
	history := session.History()
	if len(history) != 1 || history[0].Text != "Selamat datang di Warung Nabung!" {
		t.Fatalf("expected custom greeting, got %#v", history)
	}
}

func TestChatSessionReset(t *testing.T) {
	session := NewChatSession(&scriptedChatClient{})
	if _, err := session.Send(context.Background(), "halo"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	session.Reset()
	history := session.History()
	if len(history) != 1 || history[0].Text != DefaultChatGreeting {
		t.Fatalf("expected reset back to greeting, got %#v", history)
	}
}

func TestChatSessionsPoolPerViewer(t *testing.T) {
	pool := NewChatSessions(&scriptedChatClient{})
	alfa := pool.Session(ViewerContext{UserID: "alfa"})
	if again := pool.Session(ViewerContext{UserID: "alfa"}); again != alfa {
		t.Fatalf("expected same session per viewer")
	}
	beta := pool.Session(ViewerContext{UserID: "beta"})
	if beta == alfa {
		t.Fatalf("expected distinct sessions per viewer")
	}
	anon := pool.Session(ViewerContext{})
	if anon2 := pool.Session(ViewerContext{}); anon2 != anon {
		t.Fatalf("expected anonymous viewers to share a session")
	}
}
