package client

import (
	"context"

	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
)

// ArtistService covers the read-only artist endpoints.
type ArtistService struct {
	d request.Doer
}

func (s *ArtistService) Artist(ctx context.Context, id string) request.Result[models.Artist] {
	return request.Do[models.Artist](ctx, s.d, request.GET, "/artists/"+id, nil)
}

func (s *ArtistService) Artists(ctx context.Context, artistIDs []string) request.Result[models.SeveralArtists] {
	return request.Do[models.SeveralArtists](ctx, s.d, request.GET, "/artists?ids="+ids(artistIDs), nil)
}

func (s *ArtistService) ArtistAlbums(ctx context.Context, id string) request.Result[models.ResultSet[models.Album]] {
	return request.Do[models.ResultSet[models.Album]](ctx, s.d, request.GET, "/artists/"+id+"/albums", nil)
}

// TopTracks gets an artist's most popular tracks.
func (s *ArtistService) TopTracks(ctx context.Context, id string) request.Result[models.TopTracks] {
	return request.Do[models.TopTracks](ctx, s.d, request.GET, "/artists/"+id+"/top-tracks", nil)
}

func (s *ArtistService) RelatedArtists(ctx context.Context, id string) request.Result[models.SeveralArtists] {
	return request.Do[models.SeveralArtists](ctx, s.d, request.GET, "/artists/"+id+"/related-artists", nil)
}
