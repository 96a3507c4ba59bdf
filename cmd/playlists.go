package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mia-z/spotty-api/internal/shared"
	"github.com/mia-z/spotty-api/internal/tasks"
	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/urfave/cli/v3"
)

// details reads the playlist detail flags. Unset booleans are left out of the body.
func details(cmd *cli.Command) models.PlaylistDetails {
	d := models.PlaylistDetails{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
	}
	if cmd.IsSet("public") {
		public := cmd.Bool("public")
		d.Public = &public
	}
	if cmd.IsSet("collaborative") {
		collaborative := cmd.Bool("collaborative")
		d.Collaborative = &collaborative
	}
	return d
}

// CreatePlaylist creates a playlist for the given user.
func (r *Runner) CreatePlaylist(ctx context.Context, cmd *cli.Command) error {
	userID, err := arg(cmd, 0, "user id")
	if err != nil {
		return err
	}

	c, err := r.api()
	if err != nil {
		return err
	}

	r.logger.Debug("creating playlist", "user", userID, "name", cmd.String("name"))
	return emit(r, cmd, c.Playlists.CreatePlaylist(ctx, userID, details(cmd)))
}

// UpdatePlaylist changes a playlist's name, description or visibility.
func (r *Runner) UpdatePlaylist(ctx context.Context, cmd *cli.Command) error {
	id, err := arg(cmd, 0, "playlist id")
	if err != nil {
		return err
	}

	d := details(cmd)
	if d == (models.PlaylistDetails{}) {
		return fmt.Errorf("%w: nothing to update, pass --name, --description, --public or --collaborative", shared.ErrMissingArgument)
	}

	c, err := r.api()
	if err != nil {
		return err
	}
	return emit(r, cmd, c.Playlists.UpdateDetails(ctx, id, d))
}

// UploadCover reads a JPEG and hands it to the client, which reports the operation as not implemented.
func (r *Runner) UploadCover(ctx context.Context, cmd *cli.Command) error {
	id, err := arg(cmd, 0, "playlist id")
	if err != nil {
		return err
	}
	path, err := arg(cmd, 1, "jpeg file")
	if err != nil {
		return err
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read cover image: %w", err)
	}

	c, err := r.api()
	if err != nil {
		return err
	}

	res := c.Playlists.UploadCoverImage(ctx, id, image)
	if !res.OK() {
		return res.Err
	}
	return r.writePlain("✓ Done\n")
}

// ExportPlaylist fetches a playlist and writes it in the requested format.
//
// Only the first page of tracks embedded in the playlist object is exported.
func (r *Runner) ExportPlaylist(ctx context.Context, cmd *cli.Command) error {
	id, err := arg(cmd, 0, "playlist id")
	if err != nil {
		return err
	}

	format, err := tasks.ParseFormat(strings.ToLower(cmd.String("format")))
	if err != nil {
		return err
	}

	c, err := r.api()
	if err != nil {
		return err
	}

	export, err := tasks.NewExporter(c.Playlists, r.httpClient, r.logger).Fetch(ctx, id)
	if err != nil {
		return err
	}

	files, err := tasks.WriteExport(ctx, r.httpClient, export, format, cmd.String("output"))
	if err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "playlist", id, "format", format)
	if files.CoverErr != nil {
		logger.Warn("cover image not saved", "error", files.CoverErr)
	}
	logger.Info("exported playlist", "tracks", len(export.Tracks))
	return r.writePlain("%s\n", strings.Join(files.Files, "\n"))
}

// ExportPlaylists exports several playlists (or all of yours with --mine) into one directory.
func (r *Runner) ExportPlaylists(ctx context.Context, cmd *cli.Command) error {
	c, err := r.api()
	if err != nil {
		return err
	}

	var ids []string
	if cmd.Bool("mine") {
		page, err := c.Playlists.CurrentUserPlaylists(ctx).Unwrap()
		if err != nil {
			return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
		}
		for _, p := range page.Items {
			ids = append(ids, p.ID)
		}
		if page.Total > len(page.Items) {
			r.logger.Warn("exporting first page of playlists only", "exported", len(page.Items), "total", page.Total)
		}
	} else if ids, err = idArgs(cmd, 0, "playlist ids"); err != nil {
		return err
	}

	prog := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range prog {
			r.logger.Info(u.Message, "phase", u.Phase)
		}
	}()

	result, err := tasks.NewExporter(c.Playlists, r.httpClient, r.logger).BulkExport(ctx, prog, ids, tasks.BulkExportOpts{
		Format:     strings.ToLower(cmd.String("format")),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	if err := r.writePlain("Exported %d/%d playlists to %s\n", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory); err != nil {
		return err
	}
	if result.FailedExports > 0 {
		return fmt.Errorf("%w: %d playlists failed, see %s", shared.ErrAPIRequest, result.FailedExports, result.ManifestPath)
	}
	return nil
}
