package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldRetry(t *testing.T) {
	assert.False(t, ShouldRetry(nil))
	assert.False(t, ShouldRetry(context.Canceled))
	assert.True(t, ShouldRetry(fmt.Errorf("call: %w", context.DeadlineExceeded)))
	assert.True(t, ShouldRetry(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}))
	assert.True(t, ShouldRetry(&openai.APIError{HTTPStatusCode: http.StatusBadGateway}))
	assert.False(t, ShouldRetry(&openai.APIError{HTTPStatusCode: http.StatusUnauthorized}))
	assert.True(t, ShouldRetry(errors.New("Error 429, Message: quota, Status: RESOURCE_EXHAUSTED")))
	assert.False(t, ShouldRetry(errors.New("invalid api key")))
}

func TestRetryingHTTPClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewRetryingHTTPClient(RetryOptions{Max: 2, WaitMin: time.Millisecond, WaitMax: 2 * time.Millisecond})
	resp, err := client.Post(ts.URL, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, calls.Load())
}

func TestRetryingHTTPClient_ReturnsLastResponseWhenExhausted(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewRetryingHTTPClient(RetryOptions{Max: 1, WaitMin: time.Millisecond, WaitMax: time.Millisecond})
	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.EqualValues(t, 2, calls.Load())
}

func TestRetryingHTTPClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	client := NewRetryingHTTPClient(RetryOptions{Max: 3, WaitMin: time.Millisecond, WaitMax: time.Millisecond})
	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.EqualValues(t, 1, calls.Load())
}
