package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mia-z/spotty-api/internal/shared"
	"github.com/mia-z/spotty-api/pkg/client"
	"github.com/mia-z/spotty-api/pkg/request"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	client     *client.Client
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is resolved from ConfigPath and the environment when the first command runs.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     *client.Client
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		client:     opts.Client,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the logger for subsequent work, including a client created afterwards.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// before resolves configuration and the log level ahead of every command.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.config == nil {
		config, err := shared.ResolveConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	level := shared.ParseLevel(r.config.Log.Level)
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)
	return ctx, nil
}

// api returns the Web API client, creating it from the configured credentials on first use.
func (r *Runner) api() (*client.Client, error) {
	if r.client != nil {
		return r.client, nil
	}
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}

	creds := r.config.Credentials
	if creds.Token == "" {
		return nil, fmt.Errorf("%w: set credentials.token in %s or SPOTTY_TOKEN", shared.ErrNoToken, r.configPath)
	}

	c, err := client.New(creds.Token, request.Options{
		RefreshToken:    creds.RefreshToken,
		RefreshEndpoint: creds.RefreshEndpoint,
		BaseURL:         r.config.API.BaseURL,
		HTTPClient:      r.httpClient,
		Logger:          r.logger,
		OnTokenRefresh:  r.persistToken,
	})
	if err != nil {
		return nil, err
	}

	r.client = c
	return c, nil
}

// persistToken stores a refreshed access token in the config file, when there is one.
//
// The file is reloaded and only the token changes, so values from the environment never end up on disk.
func (r *Runner) persistToken(token *oauth2.Token) {
	r.config.Credentials.Token = token.AccessToken

	if r.configPath == "" {
		return
	}
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Debug("no config file to persist token to", "path", r.configPath)
		return
	}

	onDisk, err := shared.LoadConfig(r.configPath)
	if err != nil {
		r.logger.Warn("failed to read config file, refreshed token not persisted", "error", err)
		return
	}
	onDisk.Credentials.Token = token.AccessToken

	if err := shared.SaveConfig(r.configPath, onDisk); err != nil {
		r.logger.Warn("failed to persist refreshed token", "error", err)
		return
	}
	r.logger.Info("saved refreshed token", "path", r.configPath)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// emit prints a successful result as JSON. An envelope becomes the command's error.
func emit[T any](r *Runner, cmd *cli.Command, res request.Result[T]) error {
	if !res.OK() {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, res.Err)
	}

	var value any = res.Value
	if value == nil {
		return r.writePlain("✓ Done\n")
	}
	return r.writeJSON(value, cmd.Bool("pretty"))
}

// arg returns the positional argument at i, or [shared.ErrMissingArgument] naming it.
func arg(cmd *cli.Command, i int, name string) (string, error) {
	v := cmd.Args().Get(i)
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}

// idArgs collects ids from the positional arguments starting at from, accepting both
// "a b c" and "a,b,c".
func idArgs(cmd *cli.Command, from int, name string) ([]string, error) {
	var ids []string
	for _, a := range cmd.Args().Slice()[min(from, cmd.Args().Len()):] {
		ids = append(ids, shared.SplitIDs(a)...)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return ids, nil
}

// noArgs builds an action for a method that takes nothing but a context.
func noArgs[T any](r *Runner, fn func(*client.Client, context.Context) request.Result[T]) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		c, err := r.api()
		if err != nil {
			return err
		}
		return emit(r, cmd, fn(c, ctx))
	}
}

// byID builds an action for a method taking the first positional argument.
func byID[T any](r *Runner, name string, fn func(*client.Client, context.Context, string) request.Result[T]) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		id, err := arg(cmd, 0, name)
		if err != nil {
			return err
		}
		c, err := r.api()
		if err != nil {
			return err
		}
		return emit(r, cmd, fn(c, ctx, id))
	}
}

// byIDs builds an action for a method taking every positional argument as an id list.
func byIDs[T any](r *Runner, name string, fn func(*client.Client, context.Context, []string) request.Result[T]) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ids, err := idArgs(cmd, 0, name)
		if err != nil {
			return err
		}
		c, err := r.api()
		if err != nil {
			return err
		}
		return emit(r, cmd, fn(c, ctx, ids))
	}
}

// byIDAndList builds an action for a method taking one id followed by a list.
func byIDAndList[T any](r *Runner, name, listName string, fn func(*client.Client, context.Context, string, []string) request.Result[T]) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		id, err := arg(cmd, 0, name)
		if err != nil {
			return err
		}
		list, err := idArgs(cmd, 1, listName)
		if err != nil {
			return err
		}
		c, err := r.api()
		if err != nil {
			return err
		}
		return emit(r, cmd, fn(c, ctx, id, list))
	}
}
