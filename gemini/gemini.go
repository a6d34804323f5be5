package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const defaultEndpoint = "https://api.gemini.com/v1/query"

// StatusError reports a non-200 reply from the Gemini API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to get response from Gemini API: %d", e.Code)
}

// Client queries the Gemini API with a bearer token.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// NewClient creates a client for the fixed Gemini endpoint.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     http.DefaultClient,
	}
}

// NewClientWithEndpoint creates a client against a custom endpoint. Used by
// tests to point the client at a fake backend.
func NewClientWithEndpoint(apiKey, endpoint string) *Client {
	c := NewClient(apiKey)
	c.endpoint = endpoint
	return c
}

// Query posts {"query": <text>} and returns the provider's JSON body verbatim.
// A non-200 status yields a *StatusError; transport failures are wrapped with a
// "Request Error" prefix. Either way the single error return is the only
// failure channel.
func (c *Client) Query(ctx context.Context, query string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "Request Error")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	if !json.Valid(raw) {
		return nil, errors.New("response is not valid JSON")
	}
	return json.RawMessage(raw), nil
}
