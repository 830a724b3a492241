package utils

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sashabaranov/go-openai"
)

// ShouldRetry reports whether a provider error looks transient (rate limits,
// upstream 5xx, timeouts, dropped connections).
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		return openAIErr.HTTPStatusCode >= 500 || openAIErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500 || reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}

	errMsg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"rate limit",
		"error 429",
		"resource_exhausted",
		"500 internal server error",
		"502 bad gateway",
		"503 service unavailable",
		"504 gateway timeout",
		"unavailable",
		"timeout",
		"connection reset by peer",
	} {
		if strings.Contains(errMsg, marker) {
			return true
		}
	}
	return false
}

// RetryPolicy is the retryablehttp.CheckRetry used for provider calls. It never
// retries once the caller's context is done and never retries a 4xx other than 429.
func RetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if resp != nil && resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}
