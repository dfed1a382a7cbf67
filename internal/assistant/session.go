package assistant

import (
	"context"

	"github.com/google/uuid"
)

// defaultHistoryWindow caps how many prior turns accompany each request.
const defaultHistoryWindow = 20

// Session is an in-memory conversation. Nothing is persisted across
// runs; each session lives and dies with its process.
type Session struct {
	// ID identifies the session in logs.
	ID string

	// SystemPrompt frames the assistant's role for every exchange.
	SystemPrompt string

	// History holds the completed user/assistant turns in order.
	History []ChatMessage

	// HistoryWindow caps how many recent turns are replayed per
	// request; 0 uses the default.
	HistoryWindow int
}

// NewSession creates a conversation with the given system prompt.
func NewSession(systemPrompt string) *Session {
	return &Session{
		ID:           uuid.NewString(),
		SystemPrompt: systemPrompt,
	}
}

// BuildRequest assembles the message list for one user message: system
// prompt, the most recent history window, then the new message. Empty
// historical messages are dropped.
func (s *Session) BuildRequest(userMessage string) *Request {
	window := s.HistoryWindow
	if window <= 0 {
		window = defaultHistoryWindow
	}

	messages := make([]ChatMessage, 0, window+2)
	if s.SystemPrompt != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: s.SystemPrompt})
	}

	history := s.History
	if len(history) > window {
		history = history[len(history)-window:]
	}
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		messages = append(messages, m)
	}

	messages = append(messages, ChatMessage{Role: "user", Content: userMessage})
	return &Request{Messages: messages}
}

// Ask sends a user message through the provider, streaming deltas to
// onDelta, and records both sides of the exchange in the history.
func (s *Session) Ask(ctx context.Context, p Provider, userMessage string, onDelta StreamCallback) (*Response, error) {
	req := s.BuildRequest(userMessage)

	resp, err := p.GenerateStream(ctx, req, onDelta)
	if err != nil {
		return nil, err
	}

	s.History = append(s.History,
		ChatMessage{Role: "user", Content: userMessage},
		ChatMessage{Role: "assistant", Content: resp.Content},
	)
	return resp, nil
}
