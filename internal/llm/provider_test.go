package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_StreamsFragments(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Fragments: []string{"He", "llo", " world"}},
	)

	stream, err := mock.GenerateStream(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for {
		frag, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		got = append(got, frag)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 fragments, got %d: %v", len(got), got)
	}
	if got[0] != "He" || got[1] != "llo" || got[2] != " world" {
		t.Fatalf("fragments out of order: %v", got)
	}
}

func TestMockProvider_GeneratesImages(t *testing.T) {
	mock := NewMockProvider()
	mock.AddImageResponse(MockImageResponse{MIMEType: "image/png", Data: []byte("png-bytes")})

	resp, err := mock.GenerateImage(context.Background(), ImageRequest{Prompt: "a labelled cell diagram", Size: "1K"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.MIMEType != "image/png" || string(resp.Data) != "png-bytes" {
		t.Fatalf("unexpected image: %+v", resp)
	}
	if len(mock.ImageCalls) != 1 || mock.ImageCalls[0].Prompt != "a labelled cell diagram" {
		t.Fatalf("expected the request recorded, got: %+v", mock.ImageCalls)
	}
}

func TestMockProvider_EmptyImageQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.GenerateImage(context.Background(), ImageRequest{Prompt: "x"})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %v", err)
	}
}

func TestGeminiProvider_RejectsUnknownImageSize(t *testing.T) {
	p := &GeminiProvider{model: "gemini-2.5-pro"}
	if _, err := p.GenerateImage(context.Background(), ImageRequest{Prompt: "x", Size: "8K"}); err == nil {
		t.Fatal("expected error for an unsupported size")
	}
}

func TestMockProvider_StreamInterruption(t *testing.T) {
	wantErr := &ErrProviderUnavailable{Err: errors.New("connection reset")}
	mock := NewMockProvider(
		MockResponse{Fragments: []string{"partial"}, StreamErr: wantErr},
	)

	stream, err := mock.GenerateStream(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := stream.Collect()
	if text != "partial" {
		t.Fatalf("expected delivered fragments to stand, got %q", text)
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %v", err)
	}

	// The terminal error is sticky.
	if _, err := stream.Recv(); !errors.As(err, &unavail) {
		t.Fatalf("expected repeated terminal error, got: %v", err)
	}
}
