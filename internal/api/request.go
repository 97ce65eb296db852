package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/model"
	"github.com/raysh454/mycv/internal/webclient"
)

const (
	headerContentType = "Content-Type"
	headerRequestID   = "X-Request-ID"
	contentTypeJSON   = "application/json"
)

// RequestOptions describes one call relative to the base URL.
type RequestOptions struct {
	// Method defaults to GET.
	Method string

	// Headers are merged over the defaults (Content-Type: application/json).
	Headers map[string]string

	// Body is pre-serialized JSON.
	Body []byte

	Query url.Values

	// Route labels logs and metrics; defaults to the path.
	Route string
}

// Request performs one call and decodes a successful JSON body into out.
// out may be nil to discard the body. A 204 leaves out untouched. Any
// non-2xx status fails with a *RequestError carrying the server's detail or
// "Request failed".
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions, out any) error {
	resp, err := c.exchange(ctx, path, opts, fallbackMessage, true)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return c.fail(&RequestError{
			Kind:       KindDecode,
			StatusCode: resp.StatusCode,
			Method:     resp.Request.Method,
			Path:       path,
			Message:    fallbackMessage + ": invalid JSON response",
			Err:        err,
		})
	}
	return nil
}

// exchange sends the request and returns the raw response when the status
// is 2xx. jsonBody controls the default Content-Type header.
func (c *Client) exchange(ctx context.Context, path string, opts RequestOptions, fallback string, jsonBody bool) (*model.Response, error) {
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}
	route := opts.Route
	if route == "" {
		route = path
	}

	target := c.baseURL + path
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	headers := http.Header{}
	headers.Set(headerRequestID, uuid.NewString())
	if jsonBody {
		headers.Set(headerContentType, contentTypeJSON)
	}
	for k, v := range c.headers {
		headers.Set(k, v)
	}
	for k, v := range opts.Headers {
		headers.Set(k, v)
	}

	req := &model.Request{
		Method:  method,
		URL:     target,
		Headers: headers,
		Body:    opts.Body,
		Route:   route,
	}

	start := time.Now()
	resp, err := c.wc.Do(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.ObserveRequest(method, route, 0, elapsed)
		kind := KindNetwork
		if errors.Is(err, webclient.ErrBodyTooLarge) {
			kind = KindDecode
		}
		return nil, c.fail(&RequestError{
			Kind:    kind,
			Method:  method,
			Path:    path,
			Message: fallback,
			Err:     err,
		})
	}

	if resp.Request == nil {
		resp.Request = req
	}
	c.metrics.ObserveRequest(method, route, resp.StatusCode, elapsed)
	c.logger.Debug("api request",
		logging.Field{Key: "method", Value: method},
		logging.Field{Key: "route", Value: route},
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "duration_ms", Value: elapsed.Milliseconds()},
		logging.Field{Key: "request_id", Value: headers.Get(headerRequestID)})

	if !resp.OK() {
		return nil, c.fail(&RequestError{
			Kind:       kindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    detailMessage(resp.Body, fallback),
		})
	}
	return resp, nil
}

func (c *Client) fail(e *RequestError) *RequestError {
	c.metrics.RecordFailure(string(e.Kind))
	fields := []logging.Field{
		{Key: "method", Value: e.Method},
		{Key: "path", Value: e.Path},
		{Key: "kind", Value: string(e.Kind)},
		{Key: "message", Value: e.Message},
	}
	if e.StatusCode != 0 {
		fields = append(fields, logging.Field{Key: "status", Value: e.StatusCode})
	}
	if e.Err != nil {
		fields = append(fields, logging.Field{Key: "error", Value: e.Err.Error()})
	}
	c.logger.Warn("api request failed", fields...)
	return e
}

// send marshals payload (when non-nil) and decodes the response into a T.
func send[T any](ctx context.Context, c *Client, method, route, path string, payload any) (T, error) {
	var out T
	opts := RequestOptions{Method: method, Route: route}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return out, fmt.Errorf("encode %s %s body: %w", method, route, err)
		}
		opts.Body = body
	}
	err := c.Request(ctx, path, opts, &out)
	return out, err
}

func get[T any](ctx context.Context, c *Client, route, path string) (T, error) {
	return send[T](ctx, c, http.MethodGet, route, path, nil)
}

func remove(ctx context.Context, c *Client, route, path string) error {
	return c.Request(ctx, path, RequestOptions{Method: http.MethodDelete, Route: route}, nil)
}
