// Package chat implements the free-form assistant conversation: one
// streamed turn at a time against a model session.
package chat

import (
	"context"

	"github.com/abhisek/quizwizard/internal/llm"
)

const assistantDirective = "You are a helpful, intelligent AI assistant for an enterprise education platform."

// Turn is one prior exchange entry replayed into the session.
type Turn struct {
	Role llm.Role
	Text string
}

// Config holds chat tuning.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns chat defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Orchestrator produces streamed replies over a Provider. Each call opens
// a fresh session seeded with the caller's history; the orchestrator
// itself holds no conversational state.
type Orchestrator struct {
	provider llm.Provider
	cfg      Config
}

// New creates an Orchestrator.
func New(provider llm.Provider, cfg Config) *Orchestrator {
	return &Orchestrator{provider: provider, cfg: cfg}
}

// StreamReply replays history, sends message, and returns the reply as a
// lazy fragment stream. Fragments arrive in order and are append-only: a
// transport failure surfaces as the stream's terminal error after zero or
// more fragments, and nothing already delivered is retracted.
func (o *Orchestrator) StreamReply(ctx context.Context, history []Turn, message string) (*llm.Stream, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)

	seed := make([]llm.Message, len(history))
	for i, t := range history {
		seed[i] = llm.Message{Role: t.Role, Content: t.Text}
	}

	session := llm.Open(o.provider, llm.SessionOptions{
		System:      assistantDirective,
		Seed:        seed,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	})

	return session.SendStream(ctx, message)
}
