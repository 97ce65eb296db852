// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/raysh454/mycv/internal/browser"
	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/model"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// WarnCount returns the number of warnings logged so far.
func (l *DummyLogger) WarnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Warns)
}

// ─── WebClient ─────────────────────────────────────────────────────────

// ErrDummyTransport is returned for URLs listed in DummyWebClient.FailURLs.
var ErrDummyTransport = errors.New("dummy transport failure")

// DummyWebClient implements webclient.WebClient.
// By default it answers every request with status 200 and body "{}".
// Set Handler to script responses, or FailURLs[url] = true to force a
// transport error for a specific URL.
type DummyWebClient struct {
	ResponseDelay time.Duration
	FailURLs      map[string]bool
	Handler       func(req *model.Request) *model.Response

	mu       sync.Mutex
	Requests []*model.Request
	closed   bool
}

func (d *DummyWebClient) Do(ctx context.Context, req *model.Request) (*model.Response, error) {
	if d.ResponseDelay > 0 {
		select {
		case <-time.After(d.ResponseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()

	if d.FailURLs != nil && d.FailURLs[req.URL] {
		return nil, ErrDummyTransport
	}

	if d.Handler != nil {
		resp := d.Handler(req)
		if resp.Request == nil {
			resp.Request = req
		}
		if resp.Headers == nil {
			resp.Headers = http.Header{}
		}
		if resp.FetchedAt.IsZero() {
			resp.FetchedAt = time.Now()
		}
		return resp, nil
	}

	return &model.Response{
		Request:    req,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte("{}"),
		StatusCode: http.StatusOK,
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyWebClient) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Closed reports whether Close was called.
func (d *DummyWebClient) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// LastRequest returns the most recent request, or nil.
func (d *DummyWebClient) LastRequest() *model.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Requests) == 0 {
		return nil
	}
	return d.Requests[len(d.Requests)-1]
}

// JSONResponse builds a scripted response with a JSON content type.
func JSONResponse(status int, body string) *model.Response {
	return &model.Response{
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
		StatusCode: status,
	}
}

// ─── Download sink ─────────────────────────────────────────────────────

// MemorySink implements browser.DownloadSink by keeping downloads in memory.
type MemorySink struct {
	Err error

	mu        sync.Mutex
	Downloads []browser.Download
}

func (s *MemorySink) Deliver(_ context.Context, d browser.Download) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Downloads = append(s.Downloads, d)
	return "memory://" + d.Filename, nil
}

// ─── Metrics ───────────────────────────────────────────────────────────

// DummyRecorder implements metrics.Recorder with in-memory recording.
type DummyRecorder struct {
	mu        sync.Mutex
	Requests  []string // "METHOD route status"
	Failures  []string
	Downloads []int
}

func (r *DummyRecorder) ObserveRequest(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Requests = append(r.Requests, fmt.Sprintf("%s %s %d", method, route, status))
}

func (r *DummyRecorder) RecordFailure(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, kind)
}

func (r *DummyRecorder) RecordDownload(size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Downloads = append(r.Downloads, size)
}
