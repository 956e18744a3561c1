// Package transport contains http.RoundTripper middlewares for the outgoing
// HTTP clients (spreadsheet export, Jira).
//
// Provided middlewares:
//   - WithLogger: Tags each request with a request ID, logs an access log line and records its latency.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID generated for every outgoing request.
const RequestIDHeader = "X-Request-Id"

// Recorder receives the latency of every finished request.
type Recorder interface {
	HTTPRequest(ctx context.Context, host string, status int, took time.Duration)
}

// RoundTripperFunc allows using a function as an http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(r).
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// WithLogger returns a round tripper that sets a request ID, then logs a
// structured access log and reports the latency to rec after next finishes.
// A nil next uses http.DefaultTransport; a nil rec records nothing.
func WithLogger(next http.RoundTripper, rec Recorder) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		ctx := r.Context()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			r = r.Clone(ctx)
			r.Header.Set(RequestIDHeader, requestID)
		}

		start := time.Now()
		resp, err := next.RoundTrip(r)
		took := time.Since(start)

		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		if rec != nil {
			rec.HTTPRequest(ctx, r.URL.Host, status, took)
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.Int("status_code", status),
			zap.Float64("latency", took.Seconds()),
			zap.String("url", r.URL.Redacted()),
			zap.String("method", r.Method),
		}
		if err != nil {
			logger.Warn(ctx, "Request failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug(ctx, "Access log", fields...)
		}

		return resp, err //nolint: wrapcheck
	})
}

// NewClient returns an http.Client with the given timeout whose requests go
// through WithLogger.
func NewClient(timeout time.Duration, rec Recorder) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: WithLogger(http.DefaultTransport, rec),
	}
}
