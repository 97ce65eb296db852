package api

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrRequestFailed matches every *RequestError via errors.Is.
var ErrRequestFailed = errors.New("request failed")

const (
	fallbackMessage    = "Request failed"
	pdfFallbackMessage = "PDF generation failed"
)

// Kind classifies a failed request. Callers that only need a message can
// ignore it.
type Kind string

const (
	KindNetwork Kind = "network" // no response received
	KindClient  Kind = "client"  // non-2xx below 500
	KindServer  Kind = "server"  // 5xx
	KindDecode  Kind = "decode"  // 2xx whose body could not be read or parsed
)

// RequestError is the single error type returned by the gateway. Error()
// returns only Message, which is the server's detail when it sent one.
type RequestError struct {
	Kind       Kind
	StatusCode int
	Method     string
	Path       string
	Message    string
	Err        error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// AsRequestError is a convenience around errors.As.
func AsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

func kindForStatus(status int) Kind {
	if status >= 500 {
		return KindServer
	}
	return KindClient
}

// detailMessage extracts the server's "detail" from an error body. A string
// detail is used as is; a validation list ([{"msg": ...}]) is joined. Anything
// else yields fallback.
func detailMessage(body []byte, fallback string) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return fallback
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		if s != "" {
			return s
		}
		return fallback
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return fallback
}
