package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mia-z/spotty-api/internal/shared"
	"golang.org/x/oauth2"
)

// RefreshResponse is what [RefreshHandler] answers with on success.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"` // set only when the accounts service rotated it
}

// RefreshHandler exchanges refresh tokens for access tokens using the application's client credentials.
type RefreshHandler struct {
	config     *oauth2.Config
	httpClient *http.Client
	logger     *log.Logger
}

// NewRefreshHandler creates a [RefreshHandler] posting to config.TokenURL.
func NewRefreshHandler(config shared.ServerConfig, logger *log.Logger) *RefreshHandler {
	return &RefreshHandler{
		config: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  config.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		logger: logger,
	}
}

// WithHTTPClient sets the client used to reach the token URL.
func (h *RefreshHandler) WithHTTPClient(c *http.Client) *RefreshHandler {
	h.httpClient = c
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *RefreshHandler) Routes() []string {
	return []string{"/refresh"}
}

// ServeHTTP handles GET /refresh?refresh_token=...
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	refreshToken := r.URL.Query().Get("refresh_token")
	if refreshToken == "" {
		writeError(w, http.StatusBadRequest, "missing refresh_token")
		return
	}

	ctx := r.Context()
	if h.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, h.httpClient)
	}

	logger := shared.WithLogger(h.logger, "request_id", RequestIDFrom(ctx))

	token, err := h.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		status := http.StatusBadGateway
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil && retrieveErr.Response.StatusCode < 500 {
			status = http.StatusUnauthorized
		}
		logger.Warn("token exchange failed", "status", status, "err", err)
		writeError(w, status, "token exchange failed")
		return
	}

	resp := RefreshResponse{AccessToken: token.AccessToken, TokenType: token.Type()}
	if !token.Expiry.IsZero() {
		resp.ExpiresIn = int(time.Until(token.Expiry).Round(time.Second).Seconds())
	}
	if token.RefreshToken != refreshToken {
		resp.RefreshToken = token.RefreshToken
	}

	logger.Debug("token exchanged", "expires_in", resp.ExpiresIn)
	writeJSON(w, http.StatusOK, resp)
}
