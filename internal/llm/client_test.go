package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *Config {
	return &Config{
		APIKey:      "test-key",
		APIURL:      url,
		Model:       "test-model",
		Temperature: 0.8,
		Timeout:     5,
		AppName:     "tagged-doc-translator",
	}
}

func TestClient_Complete(t *testing.T) {
	var gotRequest ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "tagged-doc-translator", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		response := ChatResponse{
			ID:    "resp-1",
			Model: "test-model",
			Choices: []Choice{{
				Message: Message{Role: "assistant", Content: "<p data-line=\"1\">你好</p>"},
			}},
		}
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	content, err := client.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "<p data-line=\"1\">你好</p>", content)

	require.Len(t, gotRequest.Messages, 2)
	assert.Equal(t, "system", gotRequest.Messages[0].Role)
	assert.Equal(t, "user", gotRequest.Messages[1].Role)
	assert.Equal(t, "test-model", gotRequest.Model)
}

func TestClient_APIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(ChatResponse{
			Error: &APIError{Message: "rate limited", Type: "rate_limit"},
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ChatResponse{ID: "resp-2"})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestNewClient_ValidatesConfig(t *testing.T) {
	_, err := NewClient(&Config{APIURL: "https://api.example.com", Model: "m"})
	assert.Error(t, err)

	_, err = NewClient(&Config{APIKey: "k", Model: "m"})
	assert.Error(t, err)

	_, err = NewClient(&Config{APIKey: "k", APIURL: "https://api.example.com"})
	assert.Error(t, err)
}
