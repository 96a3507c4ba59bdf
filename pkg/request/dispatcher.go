package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mia-z/spotty-api/internal/casing"
	"github.com/mia-z/spotty-api/internal/shared"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the Spotify Web API root every dispatched path is appended to.
const DefaultBaseURL = "https://api.spotify.com/v1"

// Doer dispatches a single call. [*Dispatcher] is the production implementation.
type Doer interface {
	Dispatch(ctx context.Context, verb Verb, path string, body any) Result[any]
}

// Options configures a [Dispatcher]. Every field is optional.
type Options struct {
	RefreshToken    string
	RefreshEndpoint string // the refresh token is appended to this to form the refresh URL
	BaseURL         string
	HTTPClient      *http.Client
	Logger          *log.Logger

	// OnTokenRefresh is called after [Dispatcher.GetNewToken] replaces the credential.
	OnTokenRefresh func(*oauth2.Token)
}

// Dispatcher owns the credential and issues authenticated calls against the Web API.
//
// It is safe for concurrent use. Each call reads the access token once, before building its request,
// so a concurrent [Dispatcher.SetToken] affects only calls that start after it.
type Dispatcher struct {
	mu              sync.RWMutex
	credential      oauth2.Token
	refreshEndpoint string

	baseURL        string
	httpClient     *http.Client
	logger         *log.Logger
	onTokenRefresh func(*oauth2.Token)
}

// NewDispatcher creates a [Dispatcher] for token. An empty token is rejected with [shared.ErrNoToken].
func NewDispatcher(token string, opts Options) (*Dispatcher, error) {
	if token == "" {
		return nil, shared.ErrNoToken
	}

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	if opts.RefreshToken == "" {
		opts.Logger.Warn("no refresh token given to client - if you attempt to refresh later, it will fail")
	}
	if opts.RefreshEndpoint == "" {
		opts.Logger.Warn("no refresh endpoint given to client - if you attempt to refresh later, it will fail")
	}

	return &Dispatcher{
		credential: oauth2.Token{
			AccessToken:  token,
			TokenType:    "Bearer",
			RefreshToken: opts.RefreshToken,
		},
		refreshEndpoint: opts.RefreshEndpoint,
		baseURL:         strings.TrimRight(opts.BaseURL, "/"),
		httpClient:      opts.HTTPClient,
		logger:          opts.Logger,
		onTokenRefresh:  opts.OnTokenRefresh,
	}, nil
}

// Token returns the current access token.
func (d *Dispatcher) Token() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.credential.AccessToken
}

// SetToken replaces the access token unconditionally.
func (d *Dispatcher) SetToken(token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.credential = oauth2.Token{
		AccessToken:  token,
		TokenType:    d.credential.TokenType,
		RefreshToken: d.credential.RefreshToken,
	}
}

// SetRefreshToken replaces the refresh token. It fails with [shared.ErrNoRefreshToken] when the dispatcher was
// created without one.
func (d *Dispatcher) SetRefreshToken(refreshToken string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.credential.RefreshToken == "" {
		return shared.ErrNoRefreshToken
	}
	d.credential = oauth2.Token{
		AccessToken:  d.credential.AccessToken,
		TokenType:    d.credential.TokenType,
		RefreshToken: refreshToken,
	}
	return nil
}

// Dispatch issues verb against path, relative to the base URL, and returns the normalized JSON response.
//
// Only POST and PUT send body, serialized as JSON; GET and DELETE never carry one. A body that encodes to
// null, such as a nil pointer, is sent as no body. Failures never surface as Go
// errors: they come back as an [ErrorEnvelope] on the result.
func (d *Dispatcher) Dispatch(ctx context.Context, verb Verb, path string, body any) Result[any] {
	logger := shared.WithLogger(d.logger, "request_id", shared.GenerateID(), "method", verb, "path", path)

	var payload string
	if verb.carriesBody() && body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return d.fail(logger, NewFailure(fmt.Errorf("failed to encode request body: %w", err)))
		}
		if string(data) != "null" {
			payload = string(data)
		}
	}

	config := BuildConfig(d.Token(), verb, payload)
	req, err := config.NewRequest(ctx, d.baseURL+path)
	if err != nil {
		return d.fail(logger, NewFailure(err))
	}

	logger.Debug("dispatching request", "body", config.HasBody())

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return d.fail(logger, NewFailure(fmt.Errorf("request failed: %w", err)))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return d.fail(logger, NewFailure(fmt.Errorf("failed to read response: %w", err)))
	}

	var parsed any
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &parsed); err != nil {
			return d.fail(logger, NewFailure(fmt.Errorf("failed to decode response: %w", err)))
		}
	}
	normalized := casing.Normalize(parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return d.fail(logger, &ErrorEnvelope{
			Code:   resp.StatusCode,
			Reason: statusReason(resp.StatusCode, normalized),
			Extra:  normalized,
		})
	}

	logger.Debug("request complete", "status", resp.StatusCode)
	return Ok(normalized)
}

func (d *Dispatcher) fail(logger *log.Logger, env *ErrorEnvelope) Result[any] {
	logger.Warn("request failed", "code", env.Code, "reason", env.Reason, "err", env.Unwrap())
	return Fail[any](env)
}

// statusReason prefers the message of a Web API error object ({"error": {"status": .., "message": ..}})
// and falls back to the status text.
func statusReason(status int, body any) string {
	if obj, ok := body.(map[string]any); ok {
		switch e := obj["error"].(type) {
		case map[string]any:
			if msg, ok := e["message"].(string); ok && msg != "" {
				return msg
			}
		case string:
			if e != "" {
				return e
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return dispatchFailureReason
}

// refreshResponse is the body the refresh endpoint answers with.
type refreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// GetNewToken exchanges the refresh token for a new access token by calling the refresh endpoint.
//
// Without a refresh token it fails with [shared.ErrNoRefreshToken] before any network call. A 200 response
// replaces the access token; any other status leaves the credential untouched and returns nil.
func (d *Dispatcher) GetNewToken(ctx context.Context) error {
	d.mu.RLock()
	refreshToken := d.credential.RefreshToken
	endpoint := d.refreshEndpoint
	d.mu.RUnlock()

	if refreshToken == "" {
		return shared.ErrNoRefreshToken
	}
	if endpoint == "" {
		return shared.ErrNoRefreshEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+refreshToken, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrRefreshFailed, err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.logger.Warn("refresh endpoint rejected the refresh token, keeping current token", "status", resp.StatusCode)
		return nil
	}

	var body refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrRefreshFailed, err)
	}
	if body.AccessToken == "" {
		return fmt.Errorf("%w: response has no access_token", shared.ErrRefreshFailed)
	}

	d.SetToken(body.AccessToken)
	d.logger.Info("access token refreshed")

	if d.onTokenRefresh != nil {
		d.mu.RLock()
		token := d.credential
		d.mu.RUnlock()
		d.onTokenRefresh(&token)
	}
	return nil
}
