package sheets

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type idempotentKey struct{}

// idempotent marks a request context as safe to retry.
func idempotent(ctx context.Context) context.Context {
	return context.WithValue(ctx, idempotentKey{}, true)
}

func isIdempotent(ctx context.Context) bool {
	v, _ := ctx.Value(idempotentKey{}).(bool)
	return v
}

// readOnlyRetryPolicy retries reads with the default policy and never retries
// writes: a write that timed out may still have been applied remotely.
func readOnlyRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if !isIdempotent(ctx) {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// newHTTPClient builds the transport the Sheets and Drive clients sit on.
func newHTTPClient(retryMax int, timeout time.Duration) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.CheckRetry = readOnlyRetryPolicy
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = zerologAdapter{l: log.With().Str("component", "sheets-http").Logger()}
	retryClient.HTTPClient = &http.Client{Timeout: timeout}

	return retryClient.StandardClient()
}

// zerologAdapter satisfies retryablehttp.LeveledLogger.
type zerologAdapter struct {
	l zerolog.Logger
}

func (z zerologAdapter) Error(msg string, kv ...interface{}) { z.l.Error().Fields(kv).Msg(msg) }
func (z zerologAdapter) Warn(msg string, kv ...interface{})  { z.l.Warn().Fields(kv).Msg(msg) }
func (z zerologAdapter) Info(msg string, kv ...interface{})  { z.l.Debug().Fields(kv).Msg(msg) }
func (z zerologAdapter) Debug(msg string, kv ...interface{}) { z.l.Trace().Fields(kv).Msg(msg) }
