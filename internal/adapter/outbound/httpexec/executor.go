// Package httpexec performs the outbound HTTP calls for tool invocations.
package httpexec

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"sportsbridge/internal/domain"
	"sportsbridge/internal/usecase"
)

// snippetLimit caps how much of an error body is carried into UpstreamError.
const snippetLimit = 512

// retryDelay is the fixed pause before the single permitted retry.
const defaultRetryDelay = 200 * time.Millisecond

// Executor implements usecase.Executor using standard net/http.
//
// Retry policy, fixed and deliberate: exactly one retry after a short fixed
// delay for 5xx responses and transport timeouts; no retry for any 4xx
// (client errors are not retryable). Every invocation therefore results in at
// most two network round trips, and there is no caching of any kind.
type Executor struct {
	client     *http.Client
	logger     *slog.Logger
	retryDelay time.Duration
}

// New creates a new Executor.
func New(client *http.Client, logger *slog.Logger) *Executor {
	if client == nil {
		client = http.DefaultClient
	}
	return &Executor{
		client:     client,
		logger:     logger.With("component", "http_executor"),
		retryDelay: defaultRetryDelay,
	}
}

// Execute issues a single GET for the prepared request, mapping transport
// failures to *domain.TransportError and HTTP status >= 400 to
// *domain.UpstreamError. 2xx/3xx answers return the body unchanged.
func (e *Executor) Execute(ctx context.Context, req *usecase.PreparedRequest) (int, []byte, error) {
	log := e.logger.With(slog.String("url", req.URL))

	status, body, err := e.attempt(ctx, req)
	if retryable(status, err) {
		log.Warn("Retrying after transient failure",
			slog.Int("status_code", status), slog.Any("error", err))
		select {
		case <-time.After(e.retryDelay):
		case <-ctx.Done():
			return 0, nil, &domain.TransportError{Err: ctx.Err()}
		}
		status, body, err = e.attempt(ctx, req)
	}
	if err != nil {
		log.Error("HTTP request failed", slog.Any("error", err))
		return 0, nil, err
	}

	log.Debug("Received HTTP response", slog.Int("status_code", status), slog.Int("body_bytes", len(body)))
	if status >= 400 {
		return status, nil, &domain.UpstreamError{StatusCode: status, Snippet: snippet(body)}
	}
	return status, body, nil
}

// attempt performs one round trip. It returns the raw status so the caller
// can decide on the retry; error mapping to UpstreamError happens above.
func (e *Executor) attempt(ctx context.Context, req *usecase.PreparedRequest) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return 0, nil, &domain.TransportError{Err: err}
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Set(key, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return 0, nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &domain.TransportError{Err: err}
	}
	return resp.StatusCode, body, nil
}

// retryable reports whether the first attempt's outcome qualifies for the
// single retry: a 5xx answer or a transport timeout.
func retryable(status int, err error) bool {
	if status >= 500 {
		return true
	}
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func snippet(body []byte) string {
	if len(body) > snippetLimit {
		body = body[:snippetLimit]
	}
	return string(body)
}
