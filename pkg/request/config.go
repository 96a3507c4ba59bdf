package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Verb is an HTTP method accepted by the Web API.
type Verb string

const (
	GET    Verb = http.MethodGet
	POST   Verb = http.MethodPost
	PUT    Verb = http.MethodPut
	DELETE Verb = http.MethodDelete
)

// carriesBody reports whether requests with this verb may attach a body.
func (v Verb) carriesBody() bool {
	return v == POST || v == PUT
}

// Descriptor describes a single outgoing request: method, headers and an optional serialized body.
type Descriptor struct {
	Method  Verb
	Headers map[string]string
	Body    string
}

// HasBody reports whether the descriptor carries a body.
func (d Descriptor) HasBody() bool {
	return d.Body != ""
}

// NewRequest materializes the descriptor as an [http.Request] against url.
func (d Descriptor) NewRequest(ctx context.Context, url string) (*http.Request, error) {
	var body io.Reader
	if d.HasBody() {
		body = strings.NewReader(d.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(d.Method), url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// BuildConfig builds the [Descriptor] for a call authenticated with token.
//
// An empty body means no body: no Content-Type header is set. A non-empty body is attached verbatim
// and marked as application/json; serializing it is the caller's job.
func BuildConfig(token string, verb Verb, body string) Descriptor {
	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}

	if body == "" {
		return Descriptor{Method: verb, Headers: headers}
	}

	headers["Content-Type"] = "application/json"
	return Descriptor{Method: verb, Headers: headers, Body: body}
}
