package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mia-z/spotty-api/internal/shared"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// tokenServer stands in for the accounts service token URL.
func tokenServer(t *testing.T, status int, body string, seen *url.Values) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		if seen != nil {
			*seen = r.PostForm
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "client_id" || pass != "client_secret" {
			t.Errorf("expected client credentials in basic auth, got %q %q", user, pass)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(tokenURL string) shared.ServerConfig {
	return shared.ServerConfig{
		Host:         "127.0.0.1",
		Port:         0,
		ClientID:     "client_id",
		ClientSecret: "client_secret",
		TokenURL:     tokenURL,
	}
}

func TestRefreshHandler(t *testing.T) {
	t.Run("exchanges the refresh token", func(t *testing.T) {
		var form url.Values
		accounts := tokenServer(t, http.StatusOK, `{"access_token":"new_access","token_type":"Bearer","expires_in":3600}`, &form)
		handler := NewRefreshHandler(testConfig(accounts.URL), quietLogger())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/refresh?refresh_token=old_refresh", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if form.Get("grant_type") != "refresh_token" || form.Get("refresh_token") != "old_refresh" {
			t.Errorf("unexpected token request %v", form)
		}

		var resp RefreshResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.AccessToken != "new_access" || resp.TokenType != "Bearer" {
			t.Errorf("unexpected response %+v", resp)
		}
		if resp.ExpiresIn < 3590 || resp.ExpiresIn > 3600 {
			t.Errorf("expected expires_in near 3600, got %d", resp.ExpiresIn)
		}
		if resp.RefreshToken != "" {
			t.Errorf("expected no rotated refresh token, got %s", resp.RefreshToken)
		}
	})

	t.Run("reports a rotated refresh token", func(t *testing.T) {
		accounts := tokenServer(t, http.StatusOK, `{"access_token":"a","token_type":"Bearer","refresh_token":"rotated"}`, nil)
		handler := NewRefreshHandler(testConfig(accounts.URL), quietLogger())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/refresh?refresh_token=old", nil))

		var resp RefreshResponse
		json.NewDecoder(rec.Body).Decode(&resp)
		if resp.RefreshToken != "rotated" {
			t.Errorf("expected rotated, got %q", resp.RefreshToken)
		}
	})

	t.Run("missing refresh token", func(t *testing.T) {
		handler := NewRefreshHandler(testConfig("http://unused.test"), quietLogger())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/refresh", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "missing refresh_token") {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("rejected refresh token", func(t *testing.T) {
		accounts := tokenServer(t, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"Invalid refresh token"}`, nil)
		handler := NewRefreshHandler(testConfig(accounts.URL), quietLogger())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/refresh?refresh_token=bad", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("accounts service failure", func(t *testing.T) {
		accounts := tokenServer(t, http.StatusServiceUnavailable, `{}`, nil)
		handler := NewRefreshHandler(testConfig(accounts.URL), quietLogger())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/refresh?refresh_token=x", nil))

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("custom http client", func(t *testing.T) {
		accounts := tokenServer(t, http.StatusOK, `{"access_token":"via_client","token_type":"Bearer"}`, nil)
		called := false
		client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			called = true
			return http.DefaultTransport.RoundTrip(r)
		})}
		handler := NewRefreshHandler(testConfig(accounts.URL), quietLogger()).WithHTTPClient(client)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/refresh?refresh_token=x", nil))

		if rec.Code != http.StatusOK || !called {
			t.Errorf("expected the custom client to be used, got %d (called=%v)", rec.Code, called)
		}
	})

	t.Run("only GET", func(t *testing.T) {
		handler := NewRefreshHandler(testConfig("http://unused.test"), quietLogger())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh?refresh_token=x", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestRouter(t *testing.T) {
	t.Run("middleware order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mark("first"), mark("second"))
		router.Handle(http.MethodGet, "/x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("unexpected order %v", order)
		}
	})

	t.Run("method filtering", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/x", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if rec.Header().Get("Allow") != http.MethodGet {
			t.Errorf("expected Allow: GET, got %q", rec.Header().Get("Allow"))
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("RequestID assigns and echoes", func(t *testing.T) {
		var seen string
		handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
			t.Errorf("expected echoed id, got %q and %q", seen, rec.Header().Get(RequestIDHeader))
		}
	})

	t.Run("RequestID keeps an incoming id", func(t *testing.T) {
		handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "given")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Header().Get(RequestIDHeader) != "given" {
			t.Errorf("expected given, got %q", rec.Header().Get(RequestIDHeader))
		}
	})

	t.Run("Logging leaves out the query", func(t *testing.T) {
		var buf bytes.Buffer
		handler := Logging(log.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/refresh?refresh_token=secret", nil))

		out := buf.String()
		if strings.Contains(out, "secret") {
			t.Errorf("expected the refresh token to stay out of the log, got %q", out)
		}
		if !strings.Contains(out, "status=418") {
			t.Errorf("expected the status to be logged, got %q", out)
		}
	})

	t.Run("Recover", func(t *testing.T) {
		handler := Recover(quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestServer(t *testing.T) {
	accounts := tokenServer(t, http.StatusOK, `{"access_token":"fresh","token_type":"Bearer"}`, nil)
	srv := httptest.NewServer(New(testConfig(accounts.URL), quietLogger()).Handler())
	defer srv.Close()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
		if resp.Header.Get(RequestIDHeader) == "" {
			t.Error("expected a request id header")
		}
	})

	t.Run("refresh", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/refresh?refresh_token=r")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if body["access_token"] != "fresh" {
			t.Errorf("expected fresh, got %v", body["access_token"])
		}
	})

	t.Run("Run stops with its context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		config := testConfig(accounts.URL)
		done := make(chan error, 1)
		go func() { done <- New(config, quietLogger()).Run(ctx) }()

		cancel()
		if err := <-done; err != nil {
			t.Errorf("expected a clean shutdown, got %v", err)
		}
	})
}
