package tasks

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mia-z/spotty-api/internal/formatter"
	"github.com/mia-z/spotty-api/internal/shared"
	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
)

// Export formats accepted by [WriteExport].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
	FormatJSON     = "json"
)

// PlaylistFetcher is the part of the playlist endpoints an export needs. [*client.PlaylistService] implements it.
type PlaylistFetcher interface {
	Playlist(ctx context.Context, id string) request.Result[models.Playlist]
}

// Exporter fetches and writes playlists.
type Exporter struct {
	playlists  PlaylistFetcher
	httpClient *http.Client
	logger     *log.Logger
}

// NewExporter creates an [Exporter]. httpClient downloads cover images for Markdown exports.
func NewExporter(playlists PlaylistFetcher, httpClient *http.Client, logger *log.Logger) *Exporter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{playlists: playlists, httpClient: httpClient, logger: logger}
}

// ParseFormat normalizes a format name, accepting md and text as aliases.
func ParseFormat(name string) (string, error) {
	switch name {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (use csv, md, txt or json)", shared.ErrInvalidFlag, name)
	}
}

// Fetch retrieves a playlist and builds its export from the first page of tracks.
func (e *Exporter) Fetch(ctx context.Context, id string) (*formatter.PlaylistExport, error) {
	playlist, err := e.playlists.Playlist(ctx, id).Unwrap()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}

	export := formatter.NewPlaylistExport(playlist, playlist.Tracks.Items)
	if total := playlist.Tracks.Total; total > len(playlist.Tracks.Items) {
		e.logger.Warn("exporting first page only", "playlist", id, "exported", len(export.Tracks), "total", total)
	}
	return export, nil
}

// ExportFiles lists what [WriteExport] created. CoverErr is set when a Markdown cover could not be saved.
type ExportFiles struct {
	Files    []string
	CoverErr error
}

// WriteExport writes export in format. output is a base path for csv, a directory for markdown and a file
// path otherwise; empty means a name derived from the playlist ID.
func WriteExport(ctx context.Context, client *http.Client, export *formatter.PlaylistExport, format, output string) (*ExportFiles, error) {
	switch format {
	case FormatCSV:
		res, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return nil, fmt.Errorf("CSV export failed: %w", err)
		}
		return &ExportFiles{Files: []string{res.TracksFile, res.MetadataFile}}, nil
	case FormatMarkdown:
		res, err := formatter.WriteMarkdownExport(ctx, client, export, output)
		if err != nil {
			return nil, fmt.Errorf("markdown export failed: %w", err)
		}
		return &ExportFiles{Files: res.Files, CoverErr: res.CoverErr}, nil
	case FormatText:
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return nil, fmt.Errorf("text export failed: %w", err)
		}
		return &ExportFiles{Files: []string{path}}, nil
	case FormatJSON:
		path, err := formatter.WriteJSONExport(export, output)
		if err != nil {
			return nil, fmt.Errorf("JSON export failed: %w", err)
		}
		return &ExportFiles{Files: []string{path}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// outputFor places a playlist's files under dir the way [WriteExport] expects for format.
func outputFor(dir, format, playlistID string) string {
	switch format {
	case FormatText:
		return filepath.Join(dir, playlistID+"_tracks.txt")
	case FormatJSON:
		return filepath.Join(dir, playlistID+".json")
	default:
		return filepath.Join(dir, playlistID)
	}
}
