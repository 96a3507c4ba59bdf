// submodule cmd contains command definitions
package main

import (
	"context"

	"github.com/mia-z/spotty-api/pkg/client"
	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
	"github.com/urfave/cli/v3"
)

// Root builds the spotty command tree.
func (r *Runner) Root() *cli.Command {
	return &cli.Command{
		Name:    "spotty",
		Usage:   "Typed Spotify Web API client",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
				Sources: cli.EnvVars("SPOTTY_CONFIG"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
		},
		Before:   r.before,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		albumsCommand, artistsCommand, tracksCommand, usersCommand, playlistsCommand, playerCommand,
		tokenCommand, configCommand, serveCommand, openCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// albumsCommand handles album lookups and the saved albums library
func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "albums",
		Usage: "Album operations",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get an album",
				ArgsUsage: "<id>",
				Action: byID(r, "album id", func(c *client.Client, ctx context.Context, id string) request.Result[models.Album] {
					return c.Albums.Album(ctx, id)
				}),
			},
			{
				Name:      "list",
				Usage:     "Get several albums",
				ArgsUsage: "<id>...",
				Action: byIDs(r, "album ids", func(c *client.Client, ctx context.Context, ids []string) request.Result[models.SeveralAlbums] {
					return c.Albums.Albums(ctx, ids)
				}),
			},
			{
				Name:      "tracks",
				Usage:     "Get an album's tracks",
				ArgsUsage: "<id>",
				Action: byID(r, "album id", func(c *client.Client, ctx context.Context, id string) request.Result[models.ResultSet[models.Track]] {
					return c.Albums.AlbumTracks(ctx, id)
				}),
			},
			{
				Name:  "saved",
				Usage: "List albums in your library",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.ResultSet[models.SavedAlbum]] {
					return c.Albums.SavedAlbums(ctx)
				}),
			},
			{
				Name:      "save",
				Usage:     "Save albums to your library",
				ArgsUsage: "<id>...",
				Action: byIDs(r, "album ids", func(c *client.Client, ctx context.Context, ids []string) request.Result[any] {
					return c.Albums.SaveAlbums(ctx, ids)
				}),
			},
			{
				Name:      "remove",
				Usage:     "Remove albums from your library",
				ArgsUsage: "<id>...",
				Action: byIDs(r, "album ids", func(c *client.Client, ctx context.Context, ids []string) request.Result[any] {
					return c.Albums.RemoveAlbums(ctx, ids)
				}),
			},
			{
				Name:      "contains",
				Usage:     "Check whether albums are in your library",
				ArgsUsage: "<id>...",
				Action: byIDs(r, "album ids", func(c *client.Client, ctx context.Context, ids []string) request.Result[[]bool] {
					return c.Albums.AlbumsAreSaved(ctx, ids)
				}),
			},
			{
				Name:  "new-releases",
				Usage: "List new releases",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.NewReleases] {
					return c.Albums.NewReleases(ctx)
				}),
			},
		},
	}
}

// artistsCommand handles artist lookups
func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artists",
		Usage: "Artist operations",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get an artist",
				ArgsUsage: "<id>",
				Action: byID(r, "artist id", func(c *client.Client, ctx context.Context, id string) request.Result[models.Artist] {
					return c.Artists.Artist(ctx, id)
				}),
			},
			{
				Name:      "list",
				Usage:     "Get several artists",
				ArgsUsage: "<id>...",
				Action: byIDs(r, "artist ids", func(c *client.Client, ctx context.Context, ids []string) request.Result[models.SeveralArtists] {
					return c.Artists.Artists(ctx, ids)
				}),
			},
			{
				Name:      "albums",
				Usage:     "Get an artist's albums",
				ArgsUsage: "<id>",
				Action: byID(r, "artist id", func(c *client.Client, ctx context.Context, id string) request.Result[models.ResultSet[models.Album]] {
					return c.Artists.ArtistAlbums(ctx, id)
				}),
			},
			{
				Name:      "top-tracks",
				Usage:     "Get an artist's top tracks",
				ArgsUsage: "<id>",
				Action: byID(r, "artist id", func(c *client.Client, ctx context.Context, id string) request.Result[models.TopTracks] {
					return c.Artists.TopTracks(ctx, id)
				}),
			},
			{
				Name:      "related",
				Usage:     "Get related artists",
				ArgsUsage: "<id>",
				Action: byID(r, "artist id", func(c *client.Client, ctx context.Context, id string) request.Result[models.SeveralArtists] {
					return c.Artists.RelatedArtists(ctx, id)
				}),
			},
		},
	}
}

// tracksCommand handles track lookups and liked songs
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "Track operations",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get a track",
				ArgsUsage: "<id>",
				Action: byID(r, "track id", func(c *client.Client, ctx context.Context, id string) request.Result[models.Track] {
					return c.Tracks.Track(ctx, id)
				}),
			},
			{
				Name:      "list",
				Usage:     "Get several tracks",
				ArgsUsage: "<id>...",
				Action: byIDs(r, "track ids", func(c *client.Client, ctx context.Context, ids []string) request.Result[models.SeveralTracks] {
					return c.Tracks.Tracks(ctx, ids)
				}),
			},
			{
				Name:  "saved",
				Usage: "List your liked songs",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.ResultSet[models.SavedTrack]] {
					return c.Tracks.SavedTracks(ctx)
				}),
			},
			{
				Name:      "save",
				Usage:     "Like tracks",
				ArgsUsage: "<id>...",
				Action: byIDs(r, "track ids", func(c *client.Client, ctx context.Context, ids []string) request.Result[any] {
					return c.Tracks.SaveTracks(ctx, ids)
				}),
			},
			{
				Name:      "remove",
				Usage:     "Remove tracks from your liked songs",
				ArgsUsage: "<id>...",
				Action: byIDs(r, "track ids", func(c *client.Client, ctx context.Context, ids []string) request.Result[any] {
					return c.Tracks.RemoveTracks(ctx, ids)
				}),
			},
			{
				Name:      "contains",
				Usage:     "Check whether tracks are liked",
				ArgsUsage: "<id>...",
				Action: byIDs(r, "track ids", func(c *client.Client, ctx context.Context, ids []string) request.Result[[]bool] {
					return c.Tracks.TracksAreSaved(ctx, ids)
				}),
			},
		},
	}
}

// usersCommand handles profiles, top items and follows
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "User, top item and follow operations",
		Commands: []*cli.Command{
			{
				Name:  "me",
				Usage: "Get your profile",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.User] {
					return c.Users.CurrentUser(ctx)
				}),
			},
			{
				Name:      "profile",
				Usage:     "Get a user's profile",
				ArgsUsage: "<user-id>",
				Action: byID(r, "user id", func(c *client.Client, ctx context.Context, id string) request.Result[models.User] {
					return c.Users.Profile(ctx, id)
				}),
			},
			{
				Name:  "top-tracks",
				Usage: "Get your top tracks",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.ResultSet[models.Track]] {
					return c.Users.TopTracks(ctx)
				}),
			},
			{
				Name:  "top-albums",
				Usage: "Get your top albums",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.ResultSet[models.Album]] {
					return c.Users.TopAlbums(ctx)
				}),
			},
			{
				Name:  "following",
				Usage: "List artists you follow",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.FollowedArtists] {
					return c.Users.FollowedArtists(ctx)
				}),
			},
			{
				Name:      "follow",
				Usage:     "Follow artists (or users with --users)",
				ArgsUsage: "<id>...",
				Flags:     []cli.Flag{usersFlag()},
				Action:    r.follow(true),
			},
			{
				Name:      "unfollow",
				Usage:     "Unfollow artists (or users with --users)",
				ArgsUsage: "<id>...",
				Flags:     []cli.Flag{usersFlag()},
				Action:    r.follow(false),
			},
			{
				Name:      "follows",
				Usage:     "Check whether you follow artists (or users with --users)",
				ArgsUsage: "<id>...",
				Flags:     []cli.Flag{usersFlag()},
				Action:    r.Follows,
			},
		},
	}
}

func usersFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "users",
		Aliases: []string{"u"},
		Usage:   "Treat ids as user ids instead of artist ids",
	}
}

// playlistsCommand handles playlist operations
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Get a playlist",
				ArgsUsage: "<id>",
				Action: byID(r, "playlist id", func(c *client.Client, ctx context.Context, id string) request.Result[models.Playlist] {
					return c.Playlists.Playlist(ctx, id)
				}),
			},
			{
				Name:  "mine",
				Usage: "List your playlists",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.ResultSet[models.Playlist]] {
					return c.Playlists.CurrentUserPlaylists(ctx)
				}),
			},
			{
				Name:      "user",
				Usage:     "List a user's playlists",
				ArgsUsage: "<user-id>",
				Action: byID(r, "user id", func(c *client.Client, ctx context.Context, id string) request.Result[models.ResultSet[models.Playlist]] {
					return c.Playlists.UserPlaylists(ctx, id)
				}),
			},
			{
				Name:      "tracks",
				Usage:     "List a playlist's tracks",
				ArgsUsage: "<id>",
				Action: byID(r, "playlist id", func(c *client.Client, ctx context.Context, id string) request.Result[models.ResultSet[models.SavedTrack]] {
					return c.Playlists.PlaylistTracks(ctx, id)
				}),
			},
			{
				Name:      "add",
				Usage:     "Add tracks to a playlist",
				ArgsUsage: "<id> <track-uri>...",
				Action: byIDAndList(r, "playlist id", "track uris", func(c *client.Client, ctx context.Context, id string, uris []string) request.Result[models.SnapshotResponse] {
					return c.Playlists.AddTracks(ctx, id, uris)
				}),
			},
			{
				Name:      "remove",
				Usage:     "Remove tracks from a playlist",
				ArgsUsage: "<id> <track-uri>...",
				Action: byIDAndList(r, "playlist id", "track uris", func(c *client.Client, ctx context.Context, id string, uris []string) request.Result[models.SnapshotResponse] {
					return c.Playlists.RemoveTracks(ctx, id, uris)
				}),
			},
			{
				Name:      "create",
				Usage:     "Create a playlist",
				ArgsUsage: "<user-id>",
				Flags:     detailsFlags(true),
				Action:    r.CreatePlaylist,
			},
			{
				Name:      "update",
				Usage:     "Change a playlist's details",
				ArgsUsage: "<id>",
				Flags:     detailsFlags(false),
				Action:    r.UpdatePlaylist,
			},
			{
				Name:  "featured",
				Usage: "List featured playlists",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.FeaturedPlaylists] {
					return c.Playlists.FeaturedPlaylists(ctx)
				}),
			},
			{
				Name:      "category",
				Usage:     "List a browse category's playlists",
				ArgsUsage: "<category-id>",
				Action: byID(r, "category id", func(c *client.Client, ctx context.Context, id string) request.Result[models.FeaturedPlaylists] {
					return c.Playlists.CategoryPlaylists(ctx, id)
				}),
			},
			{
				Name:      "cover",
				Usage:     "Get a playlist's cover images",
				ArgsUsage: "<id>",
				Action: byID(r, "playlist id", func(c *client.Client, ctx context.Context, id string) request.Result[[]models.Image] {
					return c.Playlists.CoverImage(ctx, id)
				}),
			},
			{
				Name:      "upload-cover",
				Usage:     "Upload a cover image (not supported)",
				ArgsUsage: "<id> <jpeg-file>",
				Action:    r.UploadCover,
			},
			{
				Name:      "followers-contain",
				Usage:     "Check whether users follow a playlist",
				ArgsUsage: "<id> <user-id>...",
				Action: byIDAndList(r, "playlist id", "user ids", func(c *client.Client, ctx context.Context, id string, users []string) request.Result[[]bool] {
					return c.Playlists.FollowersContain(ctx, id, users)
				}),
			},
			{
				Name:      "export",
				Usage:     "Export a playlist to a file",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md, txt or json",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (a base name for csv, a directory for md)",
					},
				},
				Action: r.ExportPlaylist,
			},
			{
				Name:      "export-all",
				Usage:     "Export several playlists into one directory",
				ArgsUsage: "[<id>...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "mine",
						Usage: "Export your own playlists instead of the given ids",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md, txt or json",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: spotify_export_{epoch})",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Concurrent writers (at most 10)",
						Value:   5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Playlist fetches per second",
						Value: 5,
					},
				},
				Action: r.ExportPlaylists,
			},
		},
	}
}

func detailsFlags(requireName bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Playlist name", Required: requireName},
		&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Playlist description"},
		&cli.BoolFlag{Name: "public", Usage: "Make the playlist public (--public=false for private)"},
		&cli.BoolFlag{Name: "collaborative", Usage: "Let others edit the playlist"},
	}
}

// playerCommand handles playback control
func playerCommand(r *Runner) *cli.Command {
	deviceFlag := &cli.StringFlag{
		Name:    "device",
		Aliases: []string{"d"},
		Usage:   "Target device id (defaults to the active device)",
	}

	return &cli.Command{
		Name:  "player",
		Usage: "Playback control",
		Commands: []*cli.Command{
			{
				Name:  "state",
				Usage: "Get the playback state",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.Player] {
					return c.Player.PlaybackState(ctx)
				}),
			},
			{
				Name:  "current",
				Usage: "Get the currently playing item",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.Player] {
					return c.Player.CurrentlyPlaying(ctx)
				}),
			},
			{
				Name:  "devices",
				Usage: "List available devices",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.Devices] {
					return c.Player.Devices(ctx)
				}),
			},
			{
				Name:      "transfer",
				Usage:     "Transfer playback to a device",
				ArgsUsage: "<device-id>",
				Action: byIDs(r, "device id", func(c *client.Client, ctx context.Context, ids []string) request.Result[any] {
					return c.Player.TransferPlayback(ctx, ids)
				}),
			},
			{Name: "play", Usage: "Resume playback", Flags: []cli.Flag{deviceFlag}, Action: r.onDevice((*client.PlayerService).Play)},
			{Name: "pause", Usage: "Pause playback", Flags: []cli.Flag{deviceFlag}, Action: r.onDevice((*client.PlayerService).Pause)},
			{Name: "next", Usage: "Skip to the next track", Flags: []cli.Flag{deviceFlag}, Action: r.onDevice((*client.PlayerService).Next)},
			{Name: "previous", Aliases: []string{"prev"}, Usage: "Skip to the previous track", Flags: []cli.Flag{deviceFlag}, Action: r.onDevice((*client.PlayerService).Previous)},
			{
				Name:      "seek",
				Usage:     "Seek to a position in milliseconds",
				ArgsUsage: "<position-ms>",
				Action:    r.Seek,
			},
			{
				Name:      "repeat",
				Usage:     "Set the repeat mode",
				ArgsUsage: "<track|context|off>",
				Action:    r.Repeat,
			},
			{
				Name:      "volume",
				Usage:     "Set the volume (0-100)",
				ArgsUsage: "<percent>",
				Action:    r.Volume,
			},
			{
				Name:      "shuffle",
				Usage:     "Turn shuffle on or off",
				ArgsUsage: "<on|off>",
				Action:    r.Shuffle,
			},
			{
				Name:  "recent",
				Usage: "List recently played tracks",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.RecentlyPlayed] {
					return c.Player.RecentlyPlayed(ctx)
				}),
			},
			{
				Name:  "queue",
				Usage: "Show the playback queue",
				Action: noArgs(r, func(c *client.Client, ctx context.Context) request.Result[models.Queue] {
					return c.Player.Queue(ctx)
				}),
			},
			{
				Name:      "enqueue",
				Usage:     "Add an item to the queue",
				ArgsUsage: "<uri>",
				Action: byID(r, "uri", func(c *client.Client, ctx context.Context, uri string) request.Result[any] {
					return c.Player.AddToQueue(ctx, uri)
				}),
			},
			{
				Name:   "tui",
				Usage:  "Interactive player remote",
				Action: r.TUI,
			},
		},
	}
}

// tokenCommand handles the access token
func tokenCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Access token operations",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the configured credentials",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "reveal", Usage: "Print tokens in full"},
				},
				Action: r.TokenShow,
			},
			{
				Name:   "refresh",
				Usage:  "Exchange the refresh token for a new access token",
				Action: r.TokenRefresh,
			},
		},
	}
}

// configCommand handles the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file operations",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a default config file",
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the resolved configuration",
				Action: r.ConfigShow,
			},
		},
	}
}

// serveCommand runs the refresh endpoint
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the token refresh endpoint",
		Action: r.Serve,
	}
}

// openCommand opens an item in the web player
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open an album, artist, track, playlist or user in the browser",
		ArgsUsage: "<kind> <id>",
		Action:    r.Open,
	}
}
