package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestSession_AccumulatesHistory(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`first reply`)},
		MockResponse{Content: json.RawMessage(`second reply`)},
	)

	s := Open(mock, SessionOptions{System: "sys"})

	reply, err := s.Send(context.Background(), "one")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "first reply" {
		t.Fatalf("expected 'first reply', got %q", reply)
	}

	if _, err := s.Send(context.Background(), "two"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second call must replay the first exchange.
	second := mock.Calls[1]
	if len(second.Messages) != 3 {
		t.Fatalf("expected 3 messages in second call, got %d", len(second.Messages))
	}
	if second.Messages[0].Content != "one" || second.Messages[1].Content != "first reply" || second.Messages[2].Content != "two" {
		t.Fatalf("unexpected replay order: %+v", second.Messages)
	}

	history := s.History()
	if len(history) != 4 {
		t.Fatalf("expected 4 history entries, got %d", len(history))
	}
}

func TestSession_SeedTurnsPrecedeFirstSend(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`ok`)})

	s := Open(mock, SessionOptions{
		System: "sys",
		Seed: []Message{
			{Role: RoleUser, Content: "doc", Attachments: []Attachment{{MIMEType: "application/pdf", Data: []byte("%PDF")}}},
			{Role: RoleAssistant, Content: "ready"},
		},
	})

	if _, err := s.Send(context.Background(), "go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := mock.Calls[0]
	if len(call.Messages) != 3 {
		t.Fatalf("expected seed turns + message, got %d messages", len(call.Messages))
	}
	if len(call.Messages[0].Attachments) != 1 {
		t.Fatal("expected document attachment on the first seed turn")
	}
	if call.Messages[2].Content != "go" {
		t.Fatalf("expected new message last, got %q", call.Messages[2].Content)
	}
}

func TestSession_FailedSendLeavesHistoryUntouched(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
	)

	s := Open(mock, SessionOptions{})
	if _, err := s.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
	if len(s.History()) != 0 {
		t.Fatalf("expected empty history after failure, got %d entries", len(s.History()))
	}

	// The session is reusable after a failure.
	mock.AddResponse(MockResponse{Content: json.RawMessage(`ok`)})
	if _, err := s.Send(context.Background(), "again"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.History()) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(s.History()))
	}
}

func TestSession_SendSchemaPassesSchemaThrough(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})

	s := Open(mock, SessionOptions{})
	schema := &Schema{Name: "test-shape", Definition: map[string]any{"type": "object"}}

	raw, err := s.SendSchema(context.Background(), "format", schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"ok":true}` {
		t.Fatalf("unexpected payload: %s", raw)
	}
	if mock.Calls[0].Schema == nil || mock.Calls[0].Schema.Name != "test-shape" {
		t.Fatal("expected schema forwarded to the provider")
	}
}

// blockingProvider parks GenerateStream until released, to observe the
// session mid-flight.
type blockingProvider struct {
	stream  *Stream
	started chan struct{}
}

func (p *blockingProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{}
}

func (p *blockingProvider) GenerateStream(context.Context, Request) (*Stream, error) {
	close(p.started)
	return p.stream, nil
}

func (p *blockingProvider) ModelID() string { return "blocking" }

func TestSession_SingleOwnerGuard(t *testing.T) {
	inner := newStream()
	p := &blockingProvider{stream: inner, started: make(chan struct{})}

	s := Open(p, SessionOptions{})
	stream, err := s.SendStream(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-p.started

	if _, err := s.Send(context.Background(), "racing"); !errors.Is(err, ErrSessionBusy) {
		t.Fatalf("expected ErrSessionBusy, got: %v", err)
	}

	inner.push("done")
	inner.finish(nil)

	text, err := stream.Collect()
	if err != nil || text != "done" {
		t.Fatalf("unexpected stream result: %q, %v", text, err)
	}
}

func TestSession_StreamAppendsHistoryOnCleanEnd(t *testing.T) {
	mock := NewMockProvider(MockResponse{Fragments: []string{"He", "llo"}})

	s := Open(mock, SessionOptions{})
	stream, err := s.SendStream(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hello" {
		t.Fatalf("expected 'Hello', got %q", text)
	}

	history := s.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[1].Role != RoleAssistant || history[1].Content != "Hello" {
		t.Fatalf("unexpected assistant turn: %+v", history[1])
	}
}

func TestSession_CloseAbandonedStreamFreesSession(t *testing.T) {
	// Enough fragments to overrun every channel buffer between the
	// producer and a consumer that never reads.
	frags := make([]string, 40)
	for i := range frags {
		frags[i] = "x"
	}
	mock := NewMockProvider(
		MockResponse{Fragments: frags},
		MockResponse{Content: json.RawMessage(`ok`)},
	)

	s := Open(mock, SessionOptions{})
	stream, err := s.SendStream(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stream.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		_, err = s.Send(context.Background(), "again")
		if !errors.Is(err, ErrSessionBusy) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("session stayed busy after the stream was closed")
		}
		time.Sleep(time.Millisecond)
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The abandoned partial reply was never recorded.
	history := s.History()
	if len(history) != 2 {
		t.Fatalf("expected only the follow-up exchange in history, got %d entries", len(history))
	}
	if history[0].Content != "again" {
		t.Fatalf("unexpected first turn: %+v", history[0])
	}
}

func TestSession_InterruptedStreamLeavesHistoryUntouched(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Fragments: []string{"partial"},
		StreamErr: &ErrProviderUnavailable{},
	})

	s := Open(mock, SessionOptions{})
	stream, err := s.SendStream(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := stream.Collect()
	if err == nil {
		t.Fatal("expected stream error")
	}
	if text != "partial" {
		t.Fatalf("expected partial text to stand, got %q", text)
	}
	if len(s.History()) != 0 {
		t.Fatalf("expected empty history after interruption, got %d entries", len(s.History()))
	}
}
