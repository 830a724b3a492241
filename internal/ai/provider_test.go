package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProvider_Complete(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"htmlContent\":\"<p>ok</p>\"}"},"finish_reason":"stop"}]}`))
	}))
	defer ts.Close()

	p, err := NewProvider(context.Background(), ProviderConfig{
		Name:    ProviderOpenAI,
		APIKey:  "test-key",
		Model:   "gpt-test",
		BaseURL: ts.URL + "/v1",
	})
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-test", p.Name())

	text, err := p.Complete(context.Background(), "system rules", "user ask")
	require.NoError(t, err)
	assert.Equal(t, `{"htmlContent":"<p>ok</p>"}`, text)

	assert.Equal(t, "gpt-test", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system rules", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "user ask", got.Messages[1].Content)
}

func TestOpenAIProvider_UpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer ts.Close()

	p := NewOpenAIProvider(ProviderConfig{Name: ProviderOpenAI, APIKey: "k", BaseURL: ts.URL + "/v1"})
	_, err := p.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestGeminiProvider_Complete(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, ":generateContent") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Contains(t, r.URL.Path, "gemini-test")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"htmlContent\":\"<p>ok</p>\"}"}]},"finishReason":"STOP"}]}`))
	}))
	defer ts.Close()

	p, err := NewProvider(context.Background(), ProviderConfig{
		Name:    ProviderGemini,
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: ts.URL + "/",
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini:gemini-test", p.Name())

	text, err := p.Complete(context.Background(), "system rules", "user ask")
	require.NoError(t, err)
	assert.Equal(t, `{"htmlContent":"<p>ok</p>"}`, text)
	assert.Contains(t, body, "systemInstruction")
	assert.Contains(t, body, "contents")
}

func TestNewProvider_Errors(t *testing.T) {
	_, err := NewProvider(context.Background(), ProviderConfig{Name: ProviderGemini})
	assert.ErrorContains(t, err, "API key is not configured")

	_, err = NewProvider(context.Background(), ProviderConfig{Name: "claude", APIKey: "k"})
	assert.ErrorContains(t, err, `unknown AI provider "claude"`)
}
