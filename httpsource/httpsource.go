// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/z5labs/figcon/codec"
	"github.com/z5labs/figcon/internal/try"
	"github.com/z5labs/figcon/value"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
)

type options struct {
	codec      codec.Codec
	logHandler slog.Handler
	httpClient *http.Client

	maxRetries int
	waitMin    time.Duration
	waitMax    time.Duration

	tripAfter   uint32
	openTimeout time.Duration
}

// Option configures how a document is fetched.
type Option func(*options)

// Codec overrides the codec used to decode the response body.
// By default the codec is picked from the URL path extension.
func Codec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// LogHandler sets the slog.Handler requests are logged with.
// Logs are discarded by default.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// HTTPClient overrides the underlying http.Client entirely. Retry and
// circuit breaker options are ignored when this is used.
func HTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// MaxRetries sets how many times a failed request is retried.
func MaxRetries(n int) Option {
	return func(o *options) {
		o.maxRetries = n
	}
}

// RetryWait bounds the backoff between retries.
func RetryWait(min, max time.Duration) Option {
	return func(o *options) {
		o.waitMin = min
		o.waitMax = max
	}
}

// TripAfter sets how many consecutive failures open the circuit.
func TripAfter(n uint32) Option {
	return func(o *options) {
		o.tripAfter = n
	}
}

// OpenStateTimeout sets how long the circuit stays open before letting
// requests through again.
func OpenStateTimeout(d time.Duration) Option {
	return func(o *options) {
		o.openTimeout = d
	}
}

// StatusError occurs when the remote endpoint responds with a non-2xx
// status code.
type StatusError struct {
	Code int
}

// Error implements the error interface.
func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected response status: %d", e.Code)
}

// Fetch performs a GET request against url and decodes the response
// body into a document tree.
func Fetch(ctx context.Context, url string, opts ...Option) (_ *value.Value, err error) {
	o := &options{
		logHandler: slog.NewTextHandler(io.Discard, nil),
		maxRetries: 3,
		waitMin:    100 * time.Millisecond,
		waitMax:    2 * time.Second,
		tripAfter:  5,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.codec == nil {
		o.codec = codec.ForPath(url)
	}

	client := o.httpClient
	if client == nil {
		client = newClient(o)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer try.Close(&err, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, StatusError{Code: resp.StatusCode}
	}
	return o.codec.Decode(resp.Body)
}

func newClient(o *options) *http.Client {
	logger := slog.New(o.logHandler)

	var rt http.RoundTripper = &logRoundTripper{
		base: http.DefaultTransport,
		log:  logger,
	}

	rt = &breakerRoundTripper{
		base: rt,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "httpsource",
			Timeout: o.openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= o.tripAfter
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				switch to {
				case gobreaker.StateOpen:
					logger.Error("circuit has been opened")
				case gobreaker.StateHalfOpen:
					logger.Warn("circuit is now half open and letting some requests through")
				case gobreaker.StateClosed:
					logger.Info("circuit has been closed")
				}
			},
		}),
	}

	rc := retryablehttp.Client{
		HTTPClient:   &http.Client{Transport: rt},
		RetryWaitMin: o.waitMin,
		RetryWaitMax: o.waitMax,
		RetryMax:     o.maxRetries,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	return rc.StandardClient()
}

type logRoundTripper struct {
	base http.RoundTripper
	log  *slog.Logger
}

func (rt *logRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()
	rt.log.InfoContext(ctx, "request sent", slog.String("url", req.URL.String()))

	resp, err := rt.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	rt.log.InfoContext(
		ctx,
		"response received",
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)
	return resp, nil
}

// errServerStatus marks 5xx responses as failures for the circuit
// breaker while still handing the response back to the caller.
var errServerStatus = errors.New("server status error")

type breakerRoundTripper struct {
	base http.RoundTripper
	cb   *gobreaker.CircuitBreaker
}

func (rt *breakerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	v, err := rt.cb.Execute(func() (any, error) {
		resp, err := rt.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return resp, errServerStatus
		}
		return resp, nil
	})
	if errors.Is(err, errServerStatus) {
		return v.(*http.Response), nil
	}
	if err != nil {
		return nil, err
	}
	return v.(*http.Response), nil
}
