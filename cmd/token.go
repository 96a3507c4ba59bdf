package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mia-z/spotty-api/internal/server"
	"github.com/mia-z/spotty-api/internal/shared"
	"github.com/urfave/cli/v3"
)

// mask hides all but the last four characters of a secret.
func mask(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

// TokenShow prints the configured credentials, masked unless --reveal is set.
func (r *Runner) TokenShow(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials
	token, refresh := mask(creds.Token), mask(creds.RefreshToken)
	if cmd.Bool("reveal") {
		token, refresh = creds.Token, creds.RefreshToken
	}

	if r.client != nil {
		token = r.client.Token()
		if !cmd.Bool("reveal") {
			token = mask(token)
		}
	}

	endpoint := creds.RefreshEndpoint
	if endpoint == "" {
		endpoint = "(unset)"
	}
	return r.writePlain("token:            %s\nrefresh token:    %s\nrefresh endpoint: %s\n", token, refresh, endpoint)
}

// TokenRefresh exchanges the refresh token for a new access token.
func (r *Runner) TokenRefresh(ctx context.Context, cmd *cli.Command) error {
	c, err := r.api()
	if err != nil {
		return err
	}

	before := c.Token()
	if err := c.GetNewToken(ctx); err != nil {
		return err
	}

	if c.Token() == before {
		return r.writePlain("Token unchanged\n")
	}
	return r.writePlain("✓ Token refreshed\n")
}

// ConfigInit writes the default configuration file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	if err := shared.CreateConfigFile(r.configPath); err != nil {
		return err
	}
	r.logger.Info("created config file", "path", r.configPath)
	return r.writePlain("Config written to %s\n", r.configPath)
}

// ConfigShow prints the resolved configuration as JSON with secrets masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config := *r.config
	config.Credentials.Token = mask(config.Credentials.Token)
	config.Credentials.RefreshToken = mask(config.Credentials.RefreshToken)
	config.Server.ClientSecret = mask(config.Server.ClientSecret)
	return r.writeJSON(config, true)
}

// Serve runs the refresh endpoint until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.config.Server
	if config.ClientID == "" || config.ClientSecret == "" {
		return fmt.Errorf("%w: server.client_id and server.client_secret are required", shared.ErrMissingConfig)
	}

	srv := server.New(config, r.logger)
	r.logger.Info("refresh endpoint", "url", fmt.Sprintf("http://%s/refresh?refresh_token=", config.Addr()))
	return srv.Run(ctx)
}

// Open opens a resource in the browser.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	kind, err := arg(cmd, 0, "kind")
	if err != nil {
		return err
	}
	id, err := arg(cmd, 1, "id")
	if err != nil {
		return err
	}

	switch kind {
	case "album", "artist", "track", "playlist", "user":
	default:
		return fmt.Errorf("%w: kind must be album, artist, track, playlist or user, got %q", shared.ErrInvalidArgument, kind)
	}

	url := shared.OpenURL(kind, id)
	if err := shared.OpenBrowser(url); err != nil {
		fmt.Fprintf(os.Stderr, "Open this URL in your browser:\n%s\n", url)
		return err
	}
	return r.writePlain("Opened %s\n", url)
}
