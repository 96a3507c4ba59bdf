package request_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/mia-z/spotty-api/pkg/request"
)

func TestBuildConfig(t *testing.T) {
	t.Run("adds bearer token to every verb", func(t *testing.T) {
		tc := []struct {
			verb request.Verb
			body string
		}{
			{verb: request.GET},
			{verb: request.POST, body: "body"},
			{verb: request.PUT, body: "body"},
			{verb: request.DELETE},
		}

		for _, tt := range tc {
			t.Run(string(tt.verb), func(t *testing.T) {
				config := request.BuildConfig("new_token", tt.verb, tt.body)
				if got := config.Headers["Authorization"]; got != "Bearer new_token" {
					t.Errorf("expected 'Bearer new_token', got %q", got)
				}
				if config.Method != tt.verb {
					t.Errorf("expected method %s, got %s", tt.verb, config.Method)
				}
			})
		}
	})

	t.Run("GET has no content type", func(t *testing.T) {
		config := request.BuildConfig("token", request.GET, "")
		if _, ok := config.Headers["Content-Type"]; ok {
			t.Error("expected no Content-Type header")
		}
		if config.HasBody() {
			t.Error("expected no body")
		}
	})

	t.Run("POST with a body", func(t *testing.T) {
		body := `{"key":"value"}`
		config := request.BuildConfig("token", request.POST, body)

		if config.Body != body {
			t.Errorf("expected body %q, got %q", body, config.Body)
		}
		if got := config.Headers["Content-Type"]; got != "application/json" {
			t.Errorf("expected application/json, got %q", got)
		}
		if got := config.Headers["Authorization"]; got != "Bearer token" {
			t.Errorf("expected bearer header, got %q", got)
		}
	})

	t.Run("PUT with a body", func(t *testing.T) {
		body := `{"key":"value"}`
		config := request.BuildConfig("token", request.PUT, body)
		if config.Body != body {
			t.Errorf("expected body %q, got %q", body, config.Body)
		}
	})

	t.Run("POST without a body", func(t *testing.T) {
		config := request.BuildConfig("token", request.POST, "")
		if config.HasBody() {
			t.Error("expected no body")
		}
		if len(config.Headers) != 1 {
			t.Errorf("expected only the Authorization header, got %v", config.Headers)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		a := request.BuildConfig("token", request.PUT, "x")
		b := request.BuildConfig("token", request.PUT, "x")
		if a.Body != b.Body || a.Method != b.Method || len(a.Headers) != len(b.Headers) {
			t.Errorf("expected identical descriptors, got %+v and %+v", a, b)
		}
		for k, v := range a.Headers {
			if b.Headers[k] != v {
				t.Errorf("header %s differs: %q vs %q", k, v, b.Headers[k])
			}
		}
	})
}

func TestDescriptorNewRequest(t *testing.T) {
	t.Run("with body", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"name": "test"})
		config := request.BuildConfig("token", request.POST, string(body))

		req, err := config.NewRequest(context.Background(), "https://example.com/users/u/playlists")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.Method != "POST" {
			t.Errorf("expected POST, got %s", req.Method)
		}
		if req.Header.Get("Content-Type") != "application/json" {
			t.Error("expected Content-Type to be copied")
		}
		data, _ := io.ReadAll(req.Body)
		if string(data) != string(body) {
			t.Errorf("expected body %s, got %s", body, data)
		}
	})

	t.Run("without body", func(t *testing.T) {
		config := request.BuildConfig("token", request.GET, "")
		req, err := config.NewRequest(context.Background(), "https://example.com/me")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.Body != nil {
			t.Error("expected nil body")
		}
		if req.Header.Get("Authorization") != "Bearer token" {
			t.Error("expected Authorization header")
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		config := request.BuildConfig("token", request.GET, "")
		if _, err := config.NewRequest(context.Background(), "https://example.com/\x00"); err == nil {
			t.Error("expected error for invalid URL")
		}
	})
}
