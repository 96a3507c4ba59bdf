package client

import (
	"context"

	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
)

// AlbumService covers the album endpoints and the user's saved albums.
type AlbumService struct {
	d request.Doer
}

// Album gets a single album.
func (s *AlbumService) Album(ctx context.Context, id string) request.Result[models.Album] {
	return request.Do[models.Album](ctx, s.d, request.GET, "/albums/"+id, nil)
}

// Albums gets several albums.
func (s *AlbumService) Albums(ctx context.Context, albumIDs []string) request.Result[models.SeveralAlbums] {
	return request.Do[models.SeveralAlbums](ctx, s.d, request.GET, "/albums?ids="+ids(albumIDs), nil)
}

// AlbumTracks gets the first page of an album's tracks.
func (s *AlbumService) AlbumTracks(ctx context.Context, id string) request.Result[models.ResultSet[models.Track]] {
	return request.Do[models.ResultSet[models.Track]](ctx, s.d, request.GET, "/albums/"+id+"/tracks", nil)
}

// SavedAlbums gets the albums in the current user's library.
func (s *AlbumService) SavedAlbums(ctx context.Context) request.Result[models.ResultSet[models.SavedAlbum]] {
	return request.Do[models.ResultSet[models.SavedAlbum]](ctx, s.d, request.GET, "/me/albums", nil)
}

func (s *AlbumService) SaveAlbum(ctx context.Context, id string) request.Result[any] {
	return s.SaveAlbums(ctx, []string{id})
}

// SaveAlbums adds albums to the current user's library.
func (s *AlbumService) SaveAlbums(ctx context.Context, albumIDs []string) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, "/me/albums?ids="+ids(albumIDs), nil)
}

func (s *AlbumService) RemoveAlbum(ctx context.Context, id string) request.Result[any] {
	return s.RemoveAlbums(ctx, []string{id})
}

// RemoveAlbums removes albums from the current user's library.
func (s *AlbumService) RemoveAlbums(ctx context.Context, albumIDs []string) request.Result[any] {
	return s.d.Dispatch(ctx, request.DELETE, "/me/albums?ids="+ids(albumIDs), nil)
}

func (s *AlbumService) AlbumIsSaved(ctx context.Context, id string) request.Result[[]bool] {
	return s.AlbumsAreSaved(ctx, []string{id})
}

// AlbumsAreSaved reports, in order, whether each album is in the current user's library.
func (s *AlbumService) AlbumsAreSaved(ctx context.Context, albumIDs []string) request.Result[[]bool] {
	return request.Do[[]bool](ctx, s.d, request.GET, "/me/albums/contains?ids="+ids(albumIDs), nil)
}

// NewReleases gets the albums featured as new releases.
func (s *AlbumService) NewReleases(ctx context.Context) request.Result[models.NewReleases] {
	return request.Do[models.NewReleases](ctx, s.d, request.GET, "/browse/new-releases", nil)
}
