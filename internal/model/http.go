package model

import (
	"net/http"
	"time"
)

// Request is one raw HTTP exchange handed to a transport backend. URL is
// absolute; the gateway has already joined it with the base URL.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte

	// Route is the path template (e.g. "/resumes/{id}") used as a low
	// cardinality label for logs and metrics. Optional.
	Route string
}

// Response is what a transport backend returns for every status code.
type Response struct {
	Request    *Request
	Headers    http.Header
	Body       []byte
	StatusCode int
	FetchedAt  time.Time
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}
