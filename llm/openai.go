package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// maxResponseTokens caps the length of every completion.
const maxResponseTokens = 150

// ProviderError reports a failure coming from the OpenAI API or the transport
// to it, as opposed to an unexpected local failure.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("OpenAI API Error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// OpenAIClient answers single-shot user queries with a chat completion. Each
// query is independent; no conversation state is kept between calls.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a client for the given API key and chat model.
func NewOpenAIClient(apiKey string, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewOpenAIClientWithConfig creates a client from a full client config. Used by
// tests to point the client at a fake backend.
func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Ask sends the query as a single user message and returns the completion text
// trimmed of leading and trailing whitespace.
func (c *OpenAIClient) Ask(ctx context.Context, query string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		MaxTokens: maxResponseTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		if errors.As(err, &apiErr) || errors.As(err, &reqErr) {
			return "", &ProviderError{Err: err}
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
