package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestAskWithoutContext(t *testing.T) {
	agent, err := New("test-key", "")
	require.NoError(t, err)

	_, err = agent.Ask(context.Background(), "who contributes most?")
	assert.ErrorIs(t, err, ErrNoContext)
}

// newTestAgent points the SDK at a local httptest server.
func newTestAgent(t *testing.T, handler http.HandlerFunc) (*Agent, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	agent, err := New("test-key", "test-model",
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)
	return agent, server
}

func messageResponse(text string) string {
	return fmt.Sprintf(`{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "test-model",
		"content": [{"type": "text", "text": %q}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 10, "output_tokens": 5}
	}`, text)
}

func TestAskAppendsToTranscript(t *testing.T) {
	var requests []map[string]any
	agent, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requests = append(requests, body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, messageResponse("the top contributor is a"))
	})

	agent.SetContext("# Repository analysis: octo/spoon")

	answer, err := agent.Ask(context.Background(), "who contributes most?")
	require.NoError(t, err)
	assert.Equal(t, "the top contributor is a", answer)
	assert.Equal(t, 2, agent.Turns()) // question + answer

	_, err = agent.Ask(context.Background(), "and second?")
	require.NoError(t, err)
	assert.Equal(t, 4, agent.Turns())

	// The follow-up request must carry the whole transcript.
	require.Len(t, requests, 2)
	messages, ok := requests[1]["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 3)

	// The system prompt carries the repository context on every turn.
	system := fmt.Sprintf("%v", requests[1]["system"])
	assert.Contains(t, system, "octo/spoon")
}

func TestAskRollsBackOnTransportFailure(t *testing.T) {
	agent, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"type": "error", "error": {"type": "api_error", "message": "boom"}}`)
	})

	agent.SetContext("context")

	_, err := agent.Ask(context.Background(), "anything")
	assert.Error(t, err)
	assert.Equal(t, 0, agent.Turns())
}

func TestSetContextClearsTranscript(t *testing.T) {
	agent, _ := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, messageResponse("ok"))
	})

	agent.SetContext("first repository")
	_, err := agent.Ask(context.Background(), "q1")
	require.NoError(t, err)
	require.Equal(t, 2, agent.Turns())

	agent.SetContext("second repository")
	assert.Equal(t, 0, agent.Turns())
	assert.True(t, agent.HasContext())
}
