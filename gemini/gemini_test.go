package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_ReturnsBodyVerbatim(t *testing.T) {
	const reply = `{"candidates":[{"text":"hey there"}],"score":0.92}`

	var gotAuth, gotContentType string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, reply)
	}))
	defer srv.Close()

	client := NewClientWithEndpoint("gm-key", srv.URL)
	raw, err := client.Query(context.Background(), "what's the weather?")
	require.NoError(t, err)

	assert.JSONEq(t, reply, string(raw))
	assert.Equal(t, "Bearer gm-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]string{"query": "what's the weather?"}, gotBody)
}

func TestQuery_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClientWithEndpoint("gm-key", srv.URL)
	_, err := client.Query(context.Background(), "hello")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, "Failed to get response from Gemini API: 503", err.Error())
}

func TestQuery_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClientWithEndpoint("gm-key", srv.URL)
	_, err := client.Query(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Request Error:")
}

func TestQuery_InvalidJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer srv.Close()

	client := NewClientWithEndpoint("gm-key", srv.URL)
	_, err := client.Query(context.Background(), "hello")
	require.Error(t, err)
}
