package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mia-z/spotty-api/internal/shared"
	"github.com/mia-z/spotty-api/internal/ui"
	"github.com/mia-z/spotty-api/pkg/client"
	"github.com/mia-z/spotty-api/pkg/request"
	"github.com/urfave/cli/v3"
)

// onDevice builds an action for a transport control that accepts an optional --device.
func (r *Runner) onDevice(fn func(*client.PlayerService, context.Context, string) request.Result[any]) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		c, err := r.api()
		if err != nil {
			return err
		}
		return emit(r, cmd, fn(c.Player, ctx, cmd.String("device")))
	}
}

func intArg(cmd *cli.Command, name string) (int, error) {
	v, err := arg(cmd, 0, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", shared.ErrInvalidArgument, name, v)
	}
	return n, nil
}

// Seek moves playback to a position in milliseconds.
func (r *Runner) Seek(ctx context.Context, cmd *cli.Command) error {
	position, err := intArg(cmd, "position")
	if err != nil {
		return err
	}
	if position < 0 {
		return fmt.Errorf("%w: position must not be negative", shared.ErrInvalidArgument)
	}

	c, err := r.api()
	if err != nil {
		return err
	}
	return emit(r, cmd, c.Player.Seek(ctx, position))
}

// Volume sets the volume of the active device.
func (r *Runner) Volume(ctx context.Context, cmd *cli.Command) error {
	percent, err := intArg(cmd, "volume")
	if err != nil {
		return err
	}
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume must be between 0 and 100, got %d", shared.ErrInvalidArgument, percent)
	}

	c, err := r.api()
	if err != nil {
		return err
	}
	return emit(r, cmd, c.Player.SetVolume(ctx, percent))
}

// Repeat sets the repeat mode to track, context or off.
func (r *Runner) Repeat(ctx context.Context, cmd *cli.Command) error {
	mode, err := arg(cmd, 0, "repeat mode")
	if err != nil {
		return err
	}

	c, err := r.api()
	if err != nil {
		return err
	}

	switch mode {
	case "track":
		return emit(r, cmd, c.Player.RepeatTrack(ctx))
	case "context":
		return emit(r, cmd, c.Player.RepeatContext(ctx))
	case "off":
		return emit(r, cmd, c.Player.RepeatOff(ctx))
	default:
		return fmt.Errorf("%w: repeat mode must be track, context or off, got %q", shared.ErrInvalidArgument, mode)
	}
}

// Shuffle turns shuffle on or off.
func (r *Runner) Shuffle(ctx context.Context, cmd *cli.Command) error {
	state, err := arg(cmd, 0, "shuffle state")
	if err != nil {
		return err
	}

	var on bool
	switch state {
	case "on", "true":
		on = true
	case "off", "false":
	default:
		return fmt.Errorf("%w: shuffle must be on or off, got %q", shared.ErrInvalidArgument, state)
	}

	c, err := r.api()
	if err != nil {
		return err
	}
	return emit(r, cmd, c.Player.SetShuffle(ctx, on))
}

// TUI launches the interactive player remote.
//
// Logs go to a file in the temp directory so they don't draw over the alt screen.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logPath := filepath.Join(os.TempDir(), "spotty-tui.log")
	logger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	shared.SetLogLevel(logger, r.logger.GetLevel())
	r.SetLogger(logger)

	c, err := r.api()
	if err != nil {
		return err
	}

	logger.Info("starting player remote")
	p := tea.NewProgram(ui.NewModel(ctx, c.Player), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run player remote: %w", err)
	}
	return nil
}
