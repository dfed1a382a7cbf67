package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest(t *testing.T) {
	t.Run("system prompt first", func(t *testing.T) {
		s := NewSession("you explain astrobiology concepts")
		req := s.BuildRequest("what is k-means?")

		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "what is k-means?", req.Messages[1].Content)
	})

	t.Run("no system prompt", func(t *testing.T) {
		s := NewSession("")
		req := s.BuildRequest("hello")

		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
	})

	t.Run("history window", func(t *testing.T) {
		s := NewSession("sys")
		s.HistoryWindow = 4
		for i := 0; i < 10; i++ {
			s.History = append(s.History,
				ChatMessage{Role: "user", Content: fmt.Sprintf("q%d", i)},
				ChatMessage{Role: "assistant", Content: fmt.Sprintf("a%d", i)},
			)
		}

		req := s.BuildRequest("latest")
		// system + 4 windowed turns + new user message
		require.Len(t, req.Messages, 6)
		assert.Equal(t, "q8", req.Messages[1].Content)
		assert.Equal(t, "latest", req.Messages[5].Content)
	})

	t.Run("empty history entries dropped", func(t *testing.T) {
		s := NewSession("sys")
		s.History = []ChatMessage{
			{Role: "user", Content: "q"},
			{Role: "assistant", Content: ""},
		}

		req := s.BuildRequest("next")
		require.Len(t, req.Messages, 3)
	})
}

func TestSessionAsk(t *testing.T) {
	mock := NewMockProvider("mock")
	mock.QueueResponse(MockResponse{Content: "Clustering groups similar points."})

	s := NewSession("teach")
	var streamed string
	resp, err := s.Ask(context.Background(), mock, "what is clustering?", func(delta string, done bool) {
		streamed += delta
	})
	require.NoError(t, err)

	assert.Equal(t, "Clustering groups similar points.", resp.Content)
	assert.Equal(t, "Clustering groups similar points.", streamed)

	// Both turns recorded.
	require.Len(t, s.History, 2)
	assert.Equal(t, "user", s.History[0].Role)
	assert.Equal(t, "assistant", s.History[1].Role)

	// Second ask replays the first exchange as context.
	_, err = s.Ask(context.Background(), mock, "and anomalies?", nil)
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 2)
	assert.Len(t, calls[1].Messages, 4) // system + 2 history + new message
}

func TestSessionAskError(t *testing.T) {
	mock := NewMockProvider("mock")
	mock.QueueResponse(MockResponse{Err: errors.New("service unavailable")})

	s := NewSession("teach")
	_, err := s.Ask(context.Background(), mock, "hello", nil)
	require.Error(t, err)

	// Failed exchanges leave no history behind.
	assert.Empty(t, s.History)
}

func TestSessionIDsUnique(t *testing.T) {
	a := NewSession("x")
	b := NewSession("x")
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEmpty(t, a.ID)
}
