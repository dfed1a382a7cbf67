// Package assistant is the chat panel's backend: a thin client for a
// hosted large-language-model API with a "send messages, receive
// streamed text" contract. It carries no routing, tool execution, or
// usage accounting — the assistant is a collaborator of the learning
// content, not an engine of its own.
package assistant

import "context"

// ChatMessage is one turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// Usage reports token consumption for one exchange.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Request is one generation request.
type Request struct {
	Messages  []ChatMessage `json:"messages"`
	Model     string        `json:"model,omitempty"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

// Response is a completed generation.
type Response struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

// StreamCallback receives text deltas as they arrive. done is true on
// the final call, which carries an empty delta.
type StreamCallback func(delta string, done bool)

// Provider is the interface hosted chat services implement.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req *Request) (*Response, error)
	GenerateStream(ctx context.Context, req *Request, onDelta StreamCallback) (*Response, error)
}
