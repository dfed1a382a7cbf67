package assistant

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	defaultMaxTokens = 1024
)

// AnthropicProvider talks to the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewAnthropicProvider creates a provider for the given model. The API
// key comes from the argument or, when empty, from the ANTHROPIC_API_KEY
// environment variable.
func NewAnthropicProvider(model, apiKey string) (*AnthropicProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key required (set ANTHROPIC_API_KEY or configure assistant.api_key)")
	}
	if model == "" {
		return nil, fmt.Errorf("anthropic model required")
	}

	return &AnthropicProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Name returns the provider name.
func (a *AnthropicProvider) Name() string {
	return "anthropic"
}

// Generate performs a non-streaming request.
func (a *AnthropicProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	body, err := a.buildBody(req, false)
	if err != nil {
		return nil, err
	}

	respBody, err := a.post(ctx, body)
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	var apiResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(respBody).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var content strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return &Response{
		Content: content.String(),
		Usage: Usage{
			PromptTokens:     apiResp.Usage.InputTokens,
			CompletionTokens: apiResp.Usage.OutputTokens,
			TotalTokens:      apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens,
		},
	}, nil
}

// GenerateStream performs a streaming request, invoking onDelta for
// each text fragment as it arrives.
func (a *AnthropicProvider) GenerateStream(ctx context.Context, req *Request, onDelta StreamCallback) (*Response, error) {
	body, err := a.buildBody(req, true)
	if err != nil {
		return nil, err
	}

	respBody, err := a.post(ctx, body)
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	return parseSSEStream(respBody, onDelta)
}

// buildBody assembles the Messages API request payload. A leading
// system message becomes the top-level system field.
func (a *AnthropicProvider) buildBody(req *Request, stream bool) ([]byte, error) {
	if req == nil || len(req.Messages) == 0 {
		return nil, fmt.Errorf("request has no messages")
	}

	model := a.model
	if req.Model != "" {
		model = req.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	messages := req.Messages
	payload := map[string]interface{}{
		"model":      model,
		"max_tokens": maxTokens,
	}
	if stream {
		payload["stream"] = true
	}

	if messages[0].Role == "system" {
		payload["system"] = messages[0].Content
		messages = messages[1:]
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("request has no user messages")
	}

	converted := make([]map[string]string, 0, len(messages))
	for _, m := range messages {
		if m.Content == "" {
			continue // the API rejects empty content
		}
		converted = append(converted, map[string]string{
			"role":    m.Role,
			"content": m.Content,
		})
	}
	payload["messages"] = converted

	return json.Marshal(payload)
}

// post issues the request and returns the response body on success.
func (a *AnthropicProvider) post(ctx context.Context, body []byte) (io.ReadCloser, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error: %d - %s", resp.StatusCode, string(bodyBytes))
	}
	return resp.Body, nil
}

// parseSSEStream consumes an Anthropic server-sent-event stream,
// accumulating text deltas and usage counters.
func parseSSEStream(body io.Reader, onDelta StreamCallback) (*Response, error) {
	scanner := bufio.NewScanner(body)

	var content strings.Builder
	var usage Usage

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue // event-name and blank lines
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var event map[string]interface{}
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			log.Printf("[Assistant] Skipping malformed stream event: %v", err)
			continue
		}

		eventType, _ := event["type"].(string)
		switch eventType {
		case "message_start":
			if msg, ok := event["message"].(map[string]interface{}); ok {
				if u, ok := msg["usage"].(map[string]interface{}); ok {
					usage.PromptTokens = intField(u, "input_tokens")
				}
			}

		case "content_block_delta":
			if delta, ok := event["delta"].(map[string]interface{}); ok {
				if deltaType, _ := delta["type"].(string); deltaType == "text_delta" {
					if text, ok := delta["text"].(string); ok {
						content.WriteString(text)
						if onDelta != nil {
							onDelta(text, false)
						}
					}
				}
			}

		case "message_delta":
			if u, ok := event["usage"].(map[string]interface{}); ok {
				usage.CompletionTokens = intField(u, "output_tokens")
			}

		case "error":
			if e, ok := event["error"].(map[string]interface{}); ok {
				msg, _ := e["message"].(string)
				return nil, fmt.Errorf("stream error: %s", msg)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stream read failed: %w", err)
	}

	if onDelta != nil {
		onDelta("", true)
	}

	usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	return &Response{Content: content.String(), Usage: usage}, nil
}

// intField extracts a numeric JSON field as an int.
func intField(m map[string]interface{}, key string) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return 0
}
