package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error

	// Fragments, when set, is used by GenerateStream instead of Content.
	Fragments []string

	// StreamErr terminates a streamed response after Fragments are
	// delivered, simulating a mid-stream interruption.
	StreamErr error
}

// MockImageResponse is a canned image for the MockProvider.
type MockImageResponse struct {
	MIMEType string
	Data     []byte
	Err      error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu             sync.Mutex
	responses      []MockResponse
	imageResponses []MockImageResponse
	Calls          []Request
	ImageCalls     []ImageRequest
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	resp, err := m.next(req)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// GenerateStream returns the next canned response as a fragment stream.
// Responses with Fragments set are delivered fragment by fragment; plain
// Content is delivered as a single fragment.
func (m *MockProvider) GenerateStream(_ context.Context, req Request) (*Stream, error) {
	resp, err := m.next(req)
	if err != nil {
		return nil, err
	}

	s := newStream()
	go func() {
		if resp.Fragments != nil {
			for _, f := range resp.Fragments {
				if !s.push(f) {
					return
				}
			}
		} else if len(resp.Content) > 0 {
			if !s.push(string(resp.Content)) {
				return
			}
		}
		s.finish(resp.StreamErr)
	}()

	return s, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// GenerateImage returns the next canned image or ErrProviderUnavailable if
// the image queue is empty.
func (m *MockProvider) GenerateImage(_ context.Context, req ImageRequest) (*ImageResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ImageCalls = append(m.ImageCalls, req)

	if len(m.imageResponses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	resp := m.imageResponses[0]
	m.imageResponses = m.imageResponses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &ImageResponse{
		MIMEType: resp.MIMEType,
		Data:     resp.Data,
		Model:    "mock",
	}, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// AddImageResponse appends a canned image to the queue.
func (m *MockProvider) AddImageResponse(resp MockImageResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imageResponses = append(m.imageResponses, resp)
}

// CallCount returns the number of Generate/GenerateStream calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockProvider) next(req Request) (MockResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return MockResponse{}, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return MockResponse{}, resp.Err
	}
	return resp, nil
}
