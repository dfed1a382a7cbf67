package assistant

import (
	"context"
	"strings"
	"sync"
)

// MockProvider is a test double that records requests and replays
// configured responses. Streaming responses are delivered word by word
// so callers exercise their delta handling.
type MockProvider struct {
	mu        sync.Mutex
	name      string
	responses []MockResponse
	calls     []*Request
	respIndex int
}

// MockResponse is one pre-configured reply.
type MockResponse struct {
	Content string
	Usage   Usage
	Err     error
}

// NewMockProvider creates an empty mock.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name}
}

// QueueResponse appends a canned reply.
func (m *MockProvider) QueueResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, r)
}

// Calls returns the recorded requests.
func (m *MockProvider) Calls() []*Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]*Request, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Name returns the mock's name.
func (m *MockProvider) Name() string {
	return m.name
}

// Generate records the call and returns the next canned reply.
func (m *MockProvider) Generate(_ context.Context, req *Request) (*Response, error) {
	next := m.take(req)
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage}, nil
}

// GenerateStream behaves like Generate but chunks the canned content
// through the callback first.
func (m *MockProvider) GenerateStream(_ context.Context, req *Request, onDelta StreamCallback) (*Response, error) {
	next := m.take(req)
	if next.Err != nil {
		return nil, next.Err
	}

	if onDelta != nil {
		for i, word := range strings.SplitAfter(next.Content, " ") {
			if word == "" && i > 0 {
				continue
			}
			onDelta(word, false)
		}
		onDelta("", true)
	}
	return &Response{Content: next.Content, Usage: next.Usage}, nil
}

// take records the request and pops the next response, repeating the
// last one once the queue runs out.
func (m *MockProvider) take(req *Request) MockResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if len(m.responses) == 0 {
		return MockResponse{Content: "ok"}
	}
	r := m.responses[m.respIndex]
	if m.respIndex < len(m.responses)-1 {
		m.respIndex++
	}
	return r
}
