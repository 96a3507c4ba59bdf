package client

import (
	"context"

	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
)

// TrackService covers the track endpoints and the user's saved tracks.
type TrackService struct {
	d request.Doer
}

// Track gets a single track.
func (s *TrackService) Track(ctx context.Context, id string) request.Result[models.Track] {
	return request.Do[models.Track](ctx, s.d, request.GET, "/tracks/"+id, nil)
}

// Tracks gets several tracks.
func (s *TrackService) Tracks(ctx context.Context, trackIDs []string) request.Result[models.SeveralTracks] {
	return request.Do[models.SeveralTracks](ctx, s.d, request.GET, "/tracks?ids="+ids(trackIDs), nil)
}

// SavedTracks gets the first page of the current user's liked songs.
func (s *TrackService) SavedTracks(ctx context.Context) request.Result[models.ResultSet[models.SavedTrack]] {
	return request.Do[models.ResultSet[models.SavedTrack]](ctx, s.d, request.GET, "/me/tracks", nil)
}

func (s *TrackService) SaveTrack(ctx context.Context, id string) request.Result[any] {
	return s.SaveTracks(ctx, []string{id})
}

func (s *TrackService) SaveTracks(ctx context.Context, trackIDs []string) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, "/me/tracks?ids="+ids(trackIDs), nil)
}

func (s *TrackService) RemoveTrack(ctx context.Context, id string) request.Result[any] {
	return s.RemoveTracks(ctx, []string{id})
}

func (s *TrackService) RemoveTracks(ctx context.Context, trackIDs []string) request.Result[any] {
	return s.d.Dispatch(ctx, request.DELETE, "/me/tracks?ids="+ids(trackIDs), nil)
}

func (s *TrackService) TrackIsSaved(ctx context.Context, id string) request.Result[[]bool] {
	return s.TracksAreSaved(ctx, []string{id})
}

// TracksAreSaved reports, in order, whether each track is in the current user's library.
func (s *TrackService) TracksAreSaved(ctx context.Context, trackIDs []string) request.Result[[]bool] {
	return request.Do[[]bool](ctx, s.d, request.GET, "/me/tracks/contains?ids="+ids(trackIDs), nil)
}
