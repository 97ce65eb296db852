package webclient

import (
	"errors"
	"time"
)

type Backend string

const (
	BackendNetHTTP Backend = "nethttp"
)

// ErrBodyTooLarge is returned when a response body exceeds Config.MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

// Config holds transport settings shared by all backends.
type Config struct {
	Backend Backend

	// Timeout bounds a whole exchange, body included. Zero means 30s.
	Timeout time.Duration

	// MaxBodyBytes caps how much of a response body is read. Zero means no cap.
	MaxBodyBytes int64

	// CookieJar keeps server cookies between calls, as a browser would for a
	// same-origin API.
	CookieJar bool

	// UserAgent is sent on every request when set.
	UserAgent string
}
