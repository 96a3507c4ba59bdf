package client

import (
	"context"

	"github.com/mia-z/spotty-api/pkg/models"
	"github.com/mia-z/spotty-api/pkg/request"
)

const (
	followArtist = "artist"
	followUser   = "user"
)

// UserService covers profiles, the current user's top items and follows.
type UserService struct {
	d request.Doer
}

// CurrentUser gets the profile of the token's owner.
func (s *UserService) CurrentUser(ctx context.Context) request.Result[models.User] {
	return request.Do[models.User](ctx, s.d, request.GET, "/me", nil)
}

func (s *UserService) TopTracks(ctx context.Context) request.Result[models.ResultSet[models.Track]] {
	return request.Do[models.ResultSet[models.Track]](ctx, s.d, request.GET, "/me/top/tracks", nil)
}

func (s *UserService) TopAlbums(ctx context.Context) request.Result[models.ResultSet[models.Album]] {
	return request.Do[models.ResultSet[models.Album]](ctx, s.d, request.GET, "/me/top/albums", nil)
}

// Profile gets a user's public profile.
func (s *UserService) Profile(ctx context.Context, id string) request.Result[models.User] {
	return request.Do[models.User](ctx, s.d, request.GET, "/users/"+id, nil)
}

func (s *UserService) FollowedArtists(ctx context.Context) request.Result[models.FollowedArtists] {
	return request.Do[models.FollowedArtists](ctx, s.d, request.GET, "/me/following", nil)
}

func (s *UserService) FollowArtist(ctx context.Context, id string) request.Result[any] {
	return s.FollowArtists(ctx, []string{id})
}

func (s *UserService) FollowArtists(ctx context.Context, artistIDs []string) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, followingPath(artistIDs, followArtist), nil)
}

func (s *UserService) UnfollowArtist(ctx context.Context, id string) request.Result[any] {
	return s.UnfollowArtists(ctx, []string{id})
}

func (s *UserService) UnfollowArtists(ctx context.Context, artistIDs []string) request.Result[any] {
	return s.d.Dispatch(ctx, request.DELETE, followingPath(artistIDs, followArtist), nil)
}

func (s *UserService) FollowUser(ctx context.Context, id string) request.Result[any] {
	return s.FollowUsers(ctx, []string{id})
}

func (s *UserService) FollowUsers(ctx context.Context, userIDs []string) request.Result[any] {
	return s.d.Dispatch(ctx, request.PUT, followingPath(userIDs, followUser), nil)
}

func (s *UserService) UnfollowUser(ctx context.Context, id string) request.Result[any] {
	return s.UnfollowUsers(ctx, []string{id})
}

func (s *UserService) UnfollowUsers(ctx context.Context, userIDs []string) request.Result[any] {
	return s.d.Dispatch(ctx, request.DELETE, followingPath(userIDs, followUser), nil)
}

func (s *UserService) FollowsArtist(ctx context.Context, id string) request.Result[[]bool] {
	return s.FollowsArtists(ctx, []string{id})
}

// FollowsArtists reports, in order, whether the current user follows each artist.
func (s *UserService) FollowsArtists(ctx context.Context, artistIDs []string) request.Result[[]bool] {
	return request.Do[[]bool](ctx, s.d, request.GET, "/me/following/contains?ids="+ids(artistIDs)+"&type="+followArtist, nil)
}

func (s *UserService) FollowsUser(ctx context.Context, id string) request.Result[[]bool] {
	return s.FollowsUsers(ctx, []string{id})
}

// FollowsUsers reports, in order, whether the current user follows each user.
func (s *UserService) FollowsUsers(ctx context.Context, userIDs []string) request.Result[[]bool] {
	return request.Do[[]bool](ctx, s.d, request.GET, "/me/following/contains?ids="+ids(userIDs)+"&type="+followUser, nil)
}

func followingPath(list []string, kind string) string {
	return "/me/following?ids=" + ids(list) + "&type=" + kind
}
