package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raysh454/mycv/internal/api"
	"github.com/raysh454/mycv/internal/webclient"
)

// captured is one request as the test server saw it.
type captured struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

type recorder struct {
	mu   sync.Mutex
	reqs []captured
}

func (r *recorder) last(t *testing.T) captured {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.reqs, "no request reached the server")
	return r.reqs[len(r.reqs)-1]
}

// newTestServer starts a server that records each request and then delegates
// to reply.
func newTestServer(t *testing.T, reply http.HandlerFunc) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, captured{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   string(body),
		})
		rec.mu.Unlock()
		reply(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

// newTestClient points a client at newTestServer, with the API mounted at /api.
func newTestClient(t *testing.T, reply http.HandlerFunc, opts ...api.Option) (*api.Client, *recorder) {
	t.Helper()
	srv, rec := newTestServer(t, reply)

	wc, err := webclient.NewNetHTTPClient(webclient.Config{}, nil, srv.Client())
	require.NoError(t, err)

	c, err := api.New(srv.URL+"/api", wc, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, rec
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func strPtr(s string) *string { return &s }
