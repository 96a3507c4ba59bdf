package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mia-z/spotty-api/internal/shared"
	tu "github.com/mia-z/spotty-api/internal/testing"
	"github.com/mia-z/spotty-api/pkg/client"
	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
)

func ptr[T any](v T) *T { return &v }

func encode(t *testing.T, v any) string {
	t.Helper()
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to encode %v: %v", v, err)
	}
	return string(data)
}

func TestNew(t *testing.T) {
	t.Run("rejects an empty token", func(t *testing.T) {
		c, err := client.New("", request.Options{Logger: log.New(io.Discard)})
		if !errors.Is(err, shared.ErrNoToken) {
			t.Errorf("expected ErrNoToken, got %v", err)
		}
		if c != nil {
			t.Error("expected no client")
		}
	})

	t.Run("exposes the dispatcher token", func(t *testing.T) {
		c, err := client.New("abc", request.Options{Logger: log.New(io.Discard)})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c.Token() != "abc" {
			t.Errorf("expected abc, got %s", c.Token())
		}

		c.SetToken("def")
		if c.Token() != "def" {
			t.Errorf("expected def, got %s", c.Token())
		}
	})

	t.Run("GetNewToken without a refresh token", func(t *testing.T) {
		c, _ := client.New("abc", request.Options{Logger: log.New(io.Discard)})
		if err := c.GetNewToken(context.Background()); !errors.Is(err, shared.ErrNoRefreshToken) {
			t.Errorf("expected ErrNoRefreshToken, got %v", err)
		}
	})

	t.Run("custom doer has no credential", func(t *testing.T) {
		c := client.NewWithDoer(&tu.MockDoer{})
		if c.Token() != "" {
			t.Errorf("expected empty token, got %s", c.Token())
		}
		if err := c.GetNewToken(context.Background()); !errors.Is(err, shared.ErrNotImplemented) {
			t.Errorf("expected ErrNotImplemented, got %v", err)
		}
		if err := c.SetRefreshToken("x"); !errors.Is(err, shared.ErrNotImplemented) {
			t.Errorf("expected ErrNotImplemented, got %v", err)
		}
	})
}

func TestEndpoints(t *testing.T) {
	ctx := context.Background()
	details := models.PlaylistDetails{Name: "Road trip", Public: ptr(false)}

	tc := []struct {
		name string
		call func(c *client.Client)
		verb request.Verb
		path string
		body any
	}{
		// Albums
		{"Album", func(c *client.Client) { c.Albums.Album(ctx, "a1") }, request.GET, "/albums/a1", nil},
		{"Albums", func(c *client.Client) { c.Albums.Albums(ctx, []string{"a1", "a2"}) }, request.GET, "/albums?ids=a1,a2", nil},
		{"AlbumTracks", func(c *client.Client) { c.Albums.AlbumTracks(ctx, "a1") }, request.GET, "/albums/a1/tracks", nil},
		{"SavedAlbums", func(c *client.Client) { c.Albums.SavedAlbums(ctx) }, request.GET, "/me/albums", nil},
		{"SaveAlbum", func(c *client.Client) { c.Albums.SaveAlbum(ctx, "a1") }, request.PUT, "/me/albums?ids=a1", nil},
		{"SaveAlbums", func(c *client.Client) { c.Albums.SaveAlbums(ctx, []string{"a1", "a2"}) }, request.PUT, "/me/albums?ids=a1,a2", nil},
		{"RemoveAlbum", func(c *client.Client) { c.Albums.RemoveAlbum(ctx, "a1") }, request.DELETE, "/me/albums?ids=a1", nil},
		{"RemoveAlbums", func(c *client.Client) { c.Albums.RemoveAlbums(ctx, []string{"a2", "a1"}) }, request.DELETE, "/me/albums?ids=a2,a1", nil},
		{"AlbumIsSaved", func(c *client.Client) { c.Albums.AlbumIsSaved(ctx, "a1") }, request.GET, "/me/albums/contains?ids=a1", nil},
		{"AlbumsAreSaved", func(c *client.Client) { c.Albums.AlbumsAreSaved(ctx, []string{"a1", "a2"}) }, request.GET, "/me/albums/contains?ids=a1,a2", nil},
		{"NewReleases", func(c *client.Client) { c.Albums.NewReleases(ctx) }, request.GET, "/browse/new-releases", nil},

		// Artists
		{"Artist", func(c *client.Client) { c.Artists.Artist(ctx, "r1") }, request.GET, "/artists/r1", nil},
		{"Artists", func(c *client.Client) { c.Artists.Artists(ctx, []string{"r1", "r2"}) }, request.GET, "/artists?ids=r1,r2", nil},
		{"ArtistAlbums", func(c *client.Client) { c.Artists.ArtistAlbums(ctx, "r1") }, request.GET, "/artists/r1/albums", nil},
		{"ArtistTopTracks", func(c *client.Client) { c.Artists.TopTracks(ctx, "r1") }, request.GET, "/artists/r1/top-tracks", nil},
		{"RelatedArtists", func(c *client.Client) { c.Artists.RelatedArtists(ctx, "r1") }, request.GET, "/artists/r1/related-artists", nil},

		// Tracks
		{"Track", func(c *client.Client) { c.Tracks.Track(ctx, "t1") }, request.GET, "/tracks/t1", nil},
		{"Tracks", func(c *client.Client) { c.Tracks.Tracks(ctx, []string{"t1", "t2"}) }, request.GET, "/tracks?ids=t1,t2", nil},
		{"SavedTracks", func(c *client.Client) { c.Tracks.SavedTracks(ctx) }, request.GET, "/me/tracks", nil},
		{"SaveTrack", func(c *client.Client) { c.Tracks.SaveTrack(ctx, "t1") }, request.PUT, "/me/tracks?ids=t1", nil},
		{"SaveTracks", func(c *client.Client) { c.Tracks.SaveTracks(ctx, []string{"t1", "t2"}) }, request.PUT, "/me/tracks?ids=t1,t2", nil},
		{"RemoveSavedTrack", func(c *client.Client) { c.Tracks.RemoveTrack(ctx, "t1") }, request.DELETE, "/me/tracks?ids=t1", nil},
		{"RemoveSavedTracks", func(c *client.Client) { c.Tracks.RemoveTracks(ctx, []string{"t1", "t2"}) }, request.DELETE, "/me/tracks?ids=t1,t2", nil},
		{"TrackIsSaved", func(c *client.Client) { c.Tracks.TrackIsSaved(ctx, "t1") }, request.GET, "/me/tracks/contains?ids=t1", nil},
		{"TracksAreSaved", func(c *client.Client) { c.Tracks.TracksAreSaved(ctx, []string{"t1", "t2"}) }, request.GET, "/me/tracks/contains?ids=t1,t2", nil},

		// Users
		{"CurrentUser", func(c *client.Client) { c.Users.CurrentUser(ctx) }, request.GET, "/me", nil},
		{"UserTopTracks", func(c *client.Client) { c.Users.TopTracks(ctx) }, request.GET, "/me/top/tracks", nil},
		{"TopAlbums", func(c *client.Client) { c.Users.TopAlbums(ctx) }, request.GET, "/me/top/albums", nil},
		{"Profile", func(c *client.Client) { c.Users.Profile(ctx, "u1") }, request.GET, "/users/u1", nil},
		{"FollowedArtists", func(c *client.Client) { c.Users.FollowedArtists(ctx) }, request.GET, "/me/following", nil},
		{"FollowArtist", func(c *client.Client) { c.Users.FollowArtist(ctx, "r1") }, request.PUT, "/me/following?ids=r1&type=artist", nil},
		{"FollowArtists", func(c *client.Client) { c.Users.FollowArtists(ctx, []string{"r1", "r2"}) }, request.PUT, "/me/following?ids=r1,r2&type=artist", nil},
		{"UnfollowArtist", func(c *client.Client) { c.Users.UnfollowArtist(ctx, "r1") }, request.DELETE, "/me/following?ids=r1&type=artist", nil},
		{"UnfollowArtists", func(c *client.Client) { c.Users.UnfollowArtists(ctx, []string{"r1", "r2"}) }, request.DELETE, "/me/following?ids=r1,r2&type=artist", nil},
		{"FollowUser", func(c *client.Client) { c.Users.FollowUser(ctx, "u1") }, request.PUT, "/me/following?ids=u1&type=user", nil},
		{"FollowUsers", func(c *client.Client) { c.Users.FollowUsers(ctx, []string{"u1", "u2"}) }, request.PUT, "/me/following?ids=u1,u2&type=user", nil},
		{"UnfollowUser", func(c *client.Client) { c.Users.UnfollowUser(ctx, "u1") }, request.DELETE, "/me/following?ids=u1&type=user", nil},
		{"UnfollowUsers", func(c *client.Client) { c.Users.UnfollowUsers(ctx, []string{"u1", "u2"}) }, request.DELETE, "/me/following?ids=u1,u2&type=user", nil},
		{"FollowsArtist", func(c *client.Client) { c.Users.FollowsArtist(ctx, "r1") }, request.GET, "/me/following/contains?ids=r1&type=artist", nil},
		{"FollowsArtists", func(c *client.Client) { c.Users.FollowsArtists(ctx, []string{"r1", "r2"}) }, request.GET, "/me/following/contains?ids=r1,r2&type=artist", nil},
		{"FollowsUser", func(c *client.Client) { c.Users.FollowsUser(ctx, "u1") }, request.GET, "/me/following/contains?ids=u1&type=user", nil},
		{"FollowsUsers", func(c *client.Client) { c.Users.FollowsUsers(ctx, []string{"u1", "u2"}) }, request.GET, "/me/following/contains?ids=u1,u2&type=user", nil},

		// Playlists
		{"Playlist", func(c *client.Client) { c.Playlists.Playlist(ctx, "p1") }, request.GET, "/playlists/p1", nil},
		{"UpdateDetails", func(c *client.Client) { c.Playlists.UpdateDetails(ctx, "p1", details) }, request.PUT, "/playlists/p1", details},
		{"PlaylistTracks", func(c *client.Client) { c.Playlists.PlaylistTracks(ctx, "p1") }, request.GET, "/playlists/p1/tracks", nil},
		{"AddTrack", func(c *client.Client) { c.Playlists.AddTrack(ctx, "p1", "spotify:track:1") }, request.POST, "/playlists/p1/tracks?uris=spotify:track:1", nil},
		{"AddTracks", func(c *client.Client) { c.Playlists.AddTracks(ctx, "p1", []string{"spotify:track:1", "spotify:track:2"}) }, request.POST, "/playlists/p1/tracks?uris=spotify:track:1,spotify:track:2", nil},
		{"RemovePlaylistTrack", func(c *client.Client) { c.Playlists.RemoveTrack(ctx, "p1", "spotify:track:1") }, request.DELETE, "/playlists/p1/tracks",
			models.RemoveTracksBody{Tracks: []models.TrackURI{{URI: "spotify:track:1"}}}},
		{"RemovePlaylistTracks", func(c *client.Client) { c.Playlists.RemoveTracks(ctx, "p1", []string{"spotify:track:1", "spotify:track:2"}) }, request.DELETE, "/playlists/p1/tracks",
			models.RemoveTracksBody{Tracks: []models.TrackURI{{URI: "spotify:track:1"}, {URI: "spotify:track:2"}}}},
		{"CurrentUserPlaylists", func(c *client.Client) { c.Playlists.CurrentUserPlaylists(ctx) }, request.GET, "/me/playlists", nil},
		{"UserPlaylists", func(c *client.Client) { c.Playlists.UserPlaylists(ctx, "u1") }, request.GET, "/users/u1/playlists", nil},
		{"CreatePlaylist", func(c *client.Client) { c.Playlists.CreatePlaylist(ctx, "u1", details) }, request.POST, "/users/u1/playlists", details},
		{"FeaturedPlaylists", func(c *client.Client) { c.Playlists.FeaturedPlaylists(ctx) }, request.GET, "/browse/featured-playlists", nil},
		{"CategoryPlaylists", func(c *client.Client) { c.Playlists.CategoryPlaylists(ctx, "party") }, request.GET, "/browse/categories/party/playlists", nil},
		{"CoverImage", func(c *client.Client) { c.Playlists.CoverImage(ctx, "p1") }, request.GET, "/playlists/p1/images", nil},
		{"FollowersContain", func(c *client.Client) { c.Playlists.FollowersContain(ctx, "p1", []string{"u1", "u2"}) }, request.GET, "/playlists/p1/followers/contains?ids=u1,u2", nil},

		// Player
		{"PlaybackState", func(c *client.Client) { c.Player.PlaybackState(ctx) }, request.GET, "/me/player", nil},
		{"TransferPlayback", func(c *client.Client) { c.Player.TransferPlayback(ctx, []string{"d1"}) }, request.PUT, "/me/player",
			models.TransferPlaybackBody{DeviceIDs: []string{"d1"}}},
		{"Devices", func(c *client.Client) { c.Player.Devices(ctx) }, request.GET, "/me/player/devices", nil},
		{"CurrentlyPlaying", func(c *client.Client) { c.Player.CurrentlyPlaying(ctx) }, request.GET, "/me/player/currently-playing", nil},
		{"Play", func(c *client.Client) { c.Player.Play(ctx, "d1") }, request.PUT, "/me/player/play?device_id=d1", nil},
		{"Pause", func(c *client.Client) { c.Player.Pause(ctx, "d1") }, request.PUT, "/me/player/pause?device_id=d1", nil},
		{"Next", func(c *client.Client) { c.Player.Next(ctx, "d1") }, request.POST, "/me/player/next?device_id=d1", nil},
		{"Previous", func(c *client.Client) { c.Player.Previous(ctx, "d1") }, request.POST, "/me/player/previous?device_id=d1", nil},
		{"Seek", func(c *client.Client) { c.Player.Seek(ctx, 25000) }, request.PUT, "/me/player/seek?position_ms=25000", nil},
		{"RepeatTrack", func(c *client.Client) { c.Player.RepeatTrack(ctx) }, request.PUT, "/me/player/repeat?state=track", nil},
		{"RepeatContext", func(c *client.Client) { c.Player.RepeatContext(ctx) }, request.PUT, "/me/player/repeat?state=context", nil},
		{"RepeatOff", func(c *client.Client) { c.Player.RepeatOff(ctx) }, request.PUT, "/me/player/repeat?state=off", nil},
		{"SetVolume", func(c *client.Client) { c.Player.SetVolume(ctx, 40) }, request.PUT, "/me/player/volume?volume_percent=40", nil},
		{"ShuffleOn", func(c *client.Client) { c.Player.SetShuffle(ctx, true) }, request.PUT, "/me/player/shuffle?state=true", nil},
		{"ShuffleOff", func(c *client.Client) { c.Player.SetShuffle(ctx, false) }, request.PUT, "/me/player/shuffle?state=false", nil},
		{"RecentlyPlayed", func(c *client.Client) { c.Player.RecentlyPlayed(ctx) }, request.GET, "/me/player/recently-played", nil},
		{"Queue", func(c *client.Client) { c.Player.Queue(ctx) }, request.GET, "/me/player/queue", nil},
		{"AddToQueue", func(c *client.Client) { c.Player.AddToQueue(ctx, "spotify:track:1") }, request.POST, "/me/player/queue?uri=spotify:track:1", nil},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			doer := &tu.MockDoer{}
			tt.call(client.NewWithDoer(doer))

			if len(doer.Calls) != 1 {
				t.Fatalf("expected exactly 1 dispatch, got %d", len(doer.Calls))
			}
			call := doer.Calls[0]
			if call.Verb != tt.verb {
				t.Errorf("expected %s, got %s", tt.verb, call.Verb)
			}
			if call.Path != tt.path {
				t.Errorf("expected path %s, got %s", tt.path, call.Path)
			}
			if got, want := encode(t, call.Body), encode(t, tt.body); got != want {
				t.Errorf("expected body %s, got %s", want, got)
			}
		})
	}
}

func TestResults(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes normalized values", func(t *testing.T) {
		doer := &tu.MockDoer{Result: request.Ok[any](map[string]any{
			"id":          "a1",
			"name":        "Blue Train",
			"albumType":   "album",
			"releaseDate": "1958-01-01",
		})}
		album, err := client.NewWithDoer(doer).Albums.Album(ctx, "a1").Unwrap()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if album.Name != "Blue Train" || album.AlbumType != "album" || album.ReleaseDate != "1958-01-01" {
			t.Errorf("unexpected album %+v", album)
		}
	})

	t.Run("decodes boolean arrays", func(t *testing.T) {
		doer := &tu.MockDoer{Result: request.Ok[any]([]any{true, false})}
		saved, err := client.NewWithDoer(doer).Tracks.TracksAreSaved(ctx, []string{"t1", "t2"}).Unwrap()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(saved) != 2 || !saved[0] || saved[1] {
			t.Errorf("expected [true false], got %v", saved)
		}
	})

	t.Run("passes envelopes through", func(t *testing.T) {
		env := &request.ErrorEnvelope{Code: 404, Reason: "Not Found"}
		doer := &tu.MockDoer{Result: request.Fail[any](env)}
		result := client.NewWithDoer(doer).Artists.Artist(ctx, "missing")
		if result.OK() {
			t.Fatal("expected a failure")
		}
		if result.Err != env {
			t.Errorf("expected the same envelope, got %+v", result.Err)
		}
	})

	t.Run("UploadCoverImage always fails without dispatching", func(t *testing.T) {
		doer := &tu.MockDoer{}
		result := client.NewWithDoer(doer).Playlists.UploadCoverImage(ctx, "p1", []byte{0xff, 0xd8})
		if len(doer.Calls) != 0 {
			t.Errorf("expected no dispatch, got %d", len(doer.Calls))
		}
		if result.OK() {
			t.Fatal("expected a failure")
		}
		if result.Err.Code != http.StatusNotImplemented || result.Err.Reason != "Not Implemented" {
			t.Errorf("unexpected envelope %+v", result.Err)
		}
		if !errors.Is(result.Err, shared.ErrNotImplemented) {
			t.Errorf("expected ErrNotImplemented, got %v", result.Err.Extra)
		}
	})
}

func TestAgainstTransport(t *testing.T) {
	ctx := context.Background()

	newClient := func(t *testing.T, rt *tu.RecordingTransport) *client.Client {
		t.Helper()
		c, err := client.New("test_token", request.Options{
			BaseURL:    "https://api.test/v1",
			HTTPClient: rt.Client(),
			Logger:     log.New(io.Discard),
		})
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}
		return c
	}

	t.Run("playlist track removal sends no body", func(t *testing.T) {
		rt := tu.NewRecordingTransport(http.StatusOK, `{"snapshot_id":"s2"}`)
		snapshot, err := newClient(t, rt).Playlists.RemoveTrack(ctx, "p1", "spotify:track:1").Unwrap()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if snapshot.SnapshotID != "s2" {
			t.Errorf("expected snapshot s2, got %q", snapshot.SnapshotID)
		}

		reqs := rt.Requests()
		if len(reqs) != 1 {
			t.Fatalf("expected 1 request, got %d", len(reqs))
		}
		if reqs[0].Method != http.MethodDelete || reqs[0].HasBody {
			t.Errorf("expected bodiless DELETE, got %s with body %q", reqs[0].Method, reqs[0].Body)
		}
		if reqs[0].URL != "https://api.test/v1/playlists/p1/tracks" {
			t.Errorf("unexpected URL %s", reqs[0].URL)
		}
	})

	t.Run("create playlist sends the details", func(t *testing.T) {
		rt := tu.NewRecordingTransport(http.StatusCreated, `{"id":"p9","name":"Road trip","snapshot_id":"s1"}`)
		playlist, err := newClient(t, rt).Playlists.CreatePlaylist(ctx, "u1", models.PlaylistDetails{Name: "Road trip"}).Unwrap()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if playlist.ID != "p9" || playlist.SnapshotID != "s1" {
			t.Errorf("unexpected playlist %+v", playlist)
		}

		req := rt.Requests()[0]
		if req.Body != `{"name":"Road trip"}` {
			t.Errorf("unexpected body %s", req.Body)
		}
		if req.Header.Get("Content-Type") != "application/json" {
			t.Error("expected a JSON content type")
		}
	})

	t.Run("player commands accept 204", func(t *testing.T) {
		rt := tu.NewRecordingTransport(http.StatusNoContent, "")
		result := newClient(t, rt).Player.Pause(ctx, "d1")
		if !result.OK() || result.Value != nil {
			t.Errorf("expected a nil success, got %+v", result)
		}
	})
}
