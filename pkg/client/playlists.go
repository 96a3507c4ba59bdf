package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mia-z/spotty-api/internal/shared"
	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
)

// PlaylistService covers playlists, their tracks and the browse playlist listings.
type PlaylistService struct {
	d request.Doer
}

// Playlist gets a playlist with its first page of tracks.
func (s *PlaylistService) Playlist(ctx context.Context, id string) request.Result[models.Playlist] {
	return request.Do[models.Playlist](ctx, s.d, request.GET, "/playlists/"+id, nil)
}

// UpdateDetails changes a playlist's name, description or visibility.
func (s *PlaylistService) UpdateDetails(ctx context.Context, id string, details models.PlaylistDetails) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, "/playlists/"+id, details)
}

func (s *PlaylistService) PlaylistTracks(ctx context.Context, id string) request.Result[models.ResultSet[models.SavedTrack]] {
	return request.Do[models.ResultSet[models.SavedTrack]](ctx, s.d, request.GET, "/playlists/"+id+"/tracks", nil)
}

func (s *PlaylistService) AddTrack(ctx context.Context, id, uri string) request.Result[models.SnapshotResponse] {
	return s.AddTracks(ctx, id, []string{uri})
}

// AddTracks appends track URIs to a playlist. The URIs travel in the query, not the body.
func (s *PlaylistService) AddTracks(ctx context.Context, id string, uris []string) request.Result[models.SnapshotResponse] {
	return request.Do[models.SnapshotResponse](ctx, s.d, request.POST, "/playlists/"+id+"/tracks?uris="+ids(uris), nil)
}

func (s *PlaylistService) RemoveTrack(ctx context.Context, id, uri string) request.Result[models.SnapshotResponse] {
	return s.RemoveTracks(ctx, id, []string{uri})
}

// RemoveTracks removes every occurrence of the track URIs from a playlist.
//
// The URIs are wrapped in a {"tracks": [{"uri": ...}]} body, which the dispatcher does not send on DELETE.
func (s *PlaylistService) RemoveTracks(ctx context.Context, id string, uris []string) request.Result[models.SnapshotResponse] {
	body := models.RemoveTracksBody{Tracks: make([]models.TrackURI, 0, len(uris))}
	for _, uri := range uris {
		body.Tracks = append(body.Tracks, models.TrackURI{URI: uri})
	}
	return request.Do[models.SnapshotResponse](ctx, s.d, request.DELETE, "/playlists/"+id+"/tracks", body)
}

// CurrentUserPlaylists gets the playlists owned or followed by the current user.
func (s *PlaylistService) CurrentUserPlaylists(ctx context.Context) request.Result[models.ResultSet[models.Playlist]] {
	return request.Do[models.ResultSet[models.Playlist]](ctx, s.d, request.GET, "/me/playlists", nil)
}

func (s *PlaylistService) UserPlaylists(ctx context.Context, userID string) request.Result[models.ResultSet[models.Playlist]] {
	return request.Do[models.ResultSet[models.Playlist]](ctx, s.d, request.GET, "/users/"+userID+"/playlists", nil)
}

// CreatePlaylist creates an empty playlist owned by userID.
func (s *PlaylistService) CreatePlaylist(ctx context.Context, userID string, details models.PlaylistDetails) request.Result[models.Playlist] {
	return request.Do[models.Playlist](ctx, s.d, request.POST, "/users/"+userID+"/playlists", details)
}

func (s *PlaylistService) FeaturedPlaylists(ctx context.Context) request.Result[models.FeaturedPlaylists] {
	return request.Do[models.FeaturedPlaylists](ctx, s.d, request.GET, "/browse/featured-playlists", nil)
}

func (s *PlaylistService) CategoryPlaylists(ctx context.Context, categoryID string) request.Result[models.FeaturedPlaylists] {
	return request.Do[models.FeaturedPlaylists](ctx, s.d, request.GET, "/browse/categories/"+categoryID+"/playlists", nil)
}

func (s *PlaylistService) CoverImage(ctx context.Context, id string) request.Result[[]models.Image] {
	return request.Do[[]models.Image](ctx, s.d, request.GET, "/playlists/"+id+"/images", nil)
}

// UploadCoverImage is not supported and always fails with a 501 envelope wrapping [shared.ErrNotImplemented].
func (s *PlaylistService) UploadCoverImage(ctx context.Context, id string, image []byte) request.Result[any] {
	return request.Fail[any](&request.ErrorEnvelope{
		Code:   http.StatusNotImplemented,
		Reason: http.StatusText(http.StatusNotImplemented),
		Extra:  fmt.Errorf("%w: cover image upload for playlist %s", shared.ErrNotImplemented, id),
	})
}

// FollowersContain reports, in order, whether each user follows the playlist.
func (s *PlaylistService) FollowersContain(ctx context.Context, id string, userIDs []string) request.Result[[]bool] {
	return request.Do[[]bool](ctx, s.d, request.GET, "/playlists/"+id+"/followers/contains?ids="+ids(userIDs), nil)
}
