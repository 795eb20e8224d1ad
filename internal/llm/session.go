package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrSessionBusy is returned when a call is made on a session that already
// has a call in flight. Sessions are single-owner: one pipeline run or one
// chat turn at a time.
var ErrSessionBusy = errors.New("session has a call in flight")

// SessionOptions configures a new Session.
type SessionOptions struct {
	// System is the system directive for every call in this session.
	System string

	// Seed is conversation history present before the first Send. Used to
	// ground a session on context (e.g. an uploaded document) that all
	// later turns build on.
	Seed []Message

	// MaxTokens caps each response. Zero means the provider default.
	MaxTokens int

	// Temperature for every call in this session.
	Temperature float64
}

// Session is a stateful conversational context over a Provider. Each Send
// replays the accumulated history, so every turn sees everything that came
// before it. A failed call leaves the history untouched.
type Session struct {
	provider    Provider
	system      string
	maxTokens   int
	temperature float64

	mu      sync.Mutex
	busy    bool
	history []Message
}

// Open creates a new session. Every generation or chat invocation opens a
// fresh session; sessions are never shared between runs.
func Open(provider Provider, opts SessionOptions) *Session {
	history := make([]Message, len(opts.Seed))
	copy(history, opts.Seed)

	return &Session{
		provider:    provider,
		system:      opts.System,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		history:     history,
	}
}

// Send appends a user turn, generates a response with the full history, and
// appends the assistant turn. Returns the response text.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	raw, err := s.send(ctx, text, nil)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// SendSchema is Send with structured output: the response is constrained to
// the given schema and returned as the validated JSON payload.
func (s *Session) SendSchema(ctx context.Context, text string, schema *Schema) (json.RawMessage, error) {
	return s.send(ctx, text, schema)
}

func (s *Session) send(ctx context.Context, text string, schema *Schema) (json.RawMessage, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	userMsg := Message{Role: RoleUser, Content: text}

	resp, err := s.provider.Generate(ctx, Request{
		System:      s.system,
		Messages:    append(s.snapshot(), userMsg),
		Schema:      schema,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, err
	}

	s.append(userMsg, Message{Role: RoleAssistant, Content: string(resp.Content)})
	return resp.Content, nil
}

// SendStream is Send with token-level delivery. The assistant turn is
// appended to the history only once the stream completes cleanly; an
// interrupted stream leaves the history as it was before the call.
// A consumer done with the reply early calls Close on the returned stream:
// the inner stream is torn down, the partial turn is dropped, and the
// session is released for the next call.
func (s *Session) SendStream(ctx context.Context, text string) (*Stream, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}

	userMsg := Message{Role: RoleUser, Content: text}

	inner, err := s.provider.GenerateStream(ctx, Request{
		System:      s.system,
		Messages:    append(s.snapshot(), userMsg),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		s.release()
		return nil, err
	}

	out := newStream()
	go func() {
		defer inner.Close()
		var buf strings.Builder
		for {
			frag, err := inner.Recv()
			if err == io.EOF {
				s.append(userMsg, Message{Role: RoleAssistant, Content: buf.String()})
				s.release()
				out.finish(nil)
				return
			}
			if err != nil {
				s.release()
				out.finish(err)
				return
			}
			buf.WriteString(frag)
			if !out.push(frag) {
				// The consumer walked away: drop the partial turn and
				// free the session.
				s.release()
				out.finish(nil)
				return
			}
		}
	}()

	return out, nil
}

// History returns a copy of the accumulated conversation.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrSessionBusy
	}
	s.busy = true
	return nil
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Session) snapshot() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history), len(s.history)+1)
	copy(out, s.history)
	return out
}

func (s *Session) append(msgs ...Message) {
	s.mu.Lock()
	s.history = append(s.history, msgs...)
	s.mu.Unlock()
}
