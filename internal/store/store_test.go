package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEventRepo_AppendAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.5-pro",
		Purpose:      "quiz-gen",
		InputTokens:  1200,
		OutputTokens: 450,
		LatencyMs:    2300,
		Success:      true,
		RequestBody:  `{"messages":[]}`,
		ResponseBody: `{"questions":[]}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected an event")
	}
	if e.Provider != "gemini" || e.Model != "gemini-2.5-pro" || e.Purpose != "quiz-gen" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.InputTokens != 1200 || e.OutputTokens != 450 || e.LatencyMs != 2300 {
		t.Fatalf("unexpected usage fields: %+v", e)
	}
	if !e.Success {
		t.Fatal("expected success flag set")
	}
	if e.RequestBody != `{"messages":[]}` || e.ResponseBody != `{"questions":[]}` {
		t.Fatalf("unexpected bodies: %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Fatal("expected a timestamp")
	}
}

func TestEventRepo_GetAbsentReturnsNil(t *testing.T) {
	s := openTestStore(t)

	e, err := s.EventRepo().GetLLMEvent(context.Background(), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e != nil {
		t.Fatalf("expected nil for an absent event, got: %+v", e)
	}
}

func TestEventRepo_QueryNewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock",
			Model:    "mock",
			Purpose:  "chat",
			Success:  true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 3})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].ID != 5 || events[1].ID != 4 || events[2].ID != 3 {
		t.Fatalf("expected newest first, got ids %d, %d, %d", events[0].ID, events[1].ID, events[2].ID)
	}
}

func TestEventRepo_QueryFiltersByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"quiz-gen", "chat", "quiz-gen"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock",
			Model:    "mock",
			Purpose:  purpose,
			Success:  true,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 quiz-gen events, got %d", len(events))
	}
	for _, e := range events {
		if e.Purpose != "quiz-gen" {
			t.Fatalf("unexpected purpose %q", e.Purpose)
		}
	}
}

func TestEventRepo_RecordsFailures(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "quiz-gen",
		Success:      false,
		ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.Success {
		t.Fatal("expected success flag unset")
	}
	if e.ErrorMessage != "rate limited" {
		t.Fatalf("unexpected error message %q", e.ErrorMessage)
	}
}

func TestOpen_ReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "chat", Success: true,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	events, err := reopened.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected the event to survive reopen, got %d", len(events))
	}
}
