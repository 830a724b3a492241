package utils

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RetryOptions bounds the provider transport's retries.
type RetryOptions struct {
	Max     int
	WaitMin time.Duration
	WaitMax time.Duration
}

// NewRetryingHTTPClient returns a standard *http.Client whose transport retries
// transient failures with exponential backoff. When retries are exhausted the
// last response is handed back untouched so SDKs can decode the provider's error body.
func NewRetryingHTTPClient(opts RetryOptions) *http.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = opts.Max
	if opts.WaitMin > 0 {
		client.RetryWaitMin = opts.WaitMin
	}
	if opts.WaitMax > 0 {
		client.RetryWaitMax = opts.WaitMax
	}
	client.CheckRetry = RetryPolicy
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = retryLogger{}
	return client.StandardClient()
}

// retryLogger adapts zerolog to retryablehttp.LeveledLogger.
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...interface{}) {
	logWith(log.Error(), keysAndValues).Msg(msg)
}

func (retryLogger) Info(msg string, keysAndValues ...interface{}) {
	logWith(log.Debug(), keysAndValues).Msg(msg)
}

func (retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	logWith(log.Trace(), keysAndValues).Msg(msg)
}

func (retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	logWith(log.Warn(), keysAndValues).Msg(msg)
}

func logWith(event *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	return event.Str("component", "provider-http").Fields(keysAndValues)
}
