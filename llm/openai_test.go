package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewOpenAIClientWithConfig(cfg, "gpt-3.5-turbo")
}

func TestAsk_SendsQueryOnceWithTokenCap(t *testing.T) {
	var calls int
	var gotBody struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-3.5-turbo",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "  The answer.  \n"},
				"finish_reason": "stop"
			}]
		}`)
	})

	answer, err := client.Ask(context.Background(), "What is Go?")
	require.NoError(t, err)

	assert.Equal(t, "The answer.", answer, "response must be trimmed")
	assert.Equal(t, 1, calls, "exactly one provider call per query")
	assert.Equal(t, "gpt-3.5-turbo", gotBody.Model)
	assert.Equal(t, 150, gotBody.MaxTokens)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "What is Go?", gotBody.Messages[0].Content)
}

func TestAsk_APIErrorIsProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "rate limited", "type": "requests"}}`)
	})

	_, err := client.Ask(context.Background(), "hello")
	require.Error(t, err)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, err.Error(), "OpenAI API Error:")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestAsk_NoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`)
	})

	_, err := client.Ask(context.Background(), "hello")
	require.Error(t, err)

	var provErr *ProviderError
	assert.False(t, errors.As(err, &provErr), "empty choices is not a provider error")
}
