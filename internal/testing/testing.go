// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/mia-z/spotty-api/pkg/request"
)

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// RecordedRequest is a request captured by [RecordingTransport], with its body read out.
type RecordedRequest struct {
	Method  string
	URL     string
	Header  http.Header
	Body    string
	HasBody bool
}

// RecordingTransport records every request and answers with a fixed status and body.
type RecordingTransport struct {
	Status int
	Body   string

	mu       sync.Mutex
	requests []RecordedRequest
}

func NewRecordingTransport(status int, body string) *RecordingTransport {
	return &RecordingTransport{Status: status, Body: body}
}

func (rt *RecordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		rec.Body = string(data)
		rec.HasBody = true
	}

	rt.mu.Lock()
	rt.requests = append(rt.requests, rec)
	rt.mu.Unlock()

	return &http.Response{
		StatusCode: rt.Status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(rt.Body)),
		Request:    req,
	}, nil
}

// Requests returns a copy of the recorded requests in order.
func (rt *RecordingTransport) Requests() []RecordedRequest {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]RecordedRequest(nil), rt.requests...)
}

// Client returns an [http.Client] using this transport.
func (rt *RecordingTransport) Client() *http.Client {
	return &http.Client{Transport: rt}
}

// Call is a single [request.Doer] invocation captured by [MockDoer].
type Call struct {
	Verb request.Verb
	Path string
	Body any
}

// MockDoer is a test double for [request.Doer] that records calls and returns Result.
type MockDoer struct {
	Result request.Result[any]
	Calls  []Call
}

func (m *MockDoer) Dispatch(ctx context.Context, verb request.Verb, path string, body any) request.Result[any] {
	m.Calls = append(m.Calls, Call{Verb: verb, Path: path, Body: body})
	return m.Result
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}
