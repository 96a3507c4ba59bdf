package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mia-z/spotty-api/internal/shared"
	"github.com/mia-z/spotty-api/pkg/request"
)

// Client groups every endpoint of the Web API around one [request.Dispatcher].
type Client struct {
	dispatcher *request.Dispatcher

	Albums    *AlbumService
	Artists   *ArtistService
	Tracks    *TrackService
	Playlists *PlaylistService
	Users     *UserService
	Player    *PlayerService
}

// New creates a [Client] authenticated with token. An empty token is rejected with [shared.ErrNoToken].
func New(token string, opts request.Options) (*Client, error) {
	d, err := request.NewDispatcher(token, opts)
	if err != nil {
		return nil, err
	}

	c := NewWithDoer(d)
	c.dispatcher = d
	return c, nil
}

// NewWithDoer creates a [Client] whose endpoints dispatch through d.
//
// Credential methods ([Client.Token], [Client.SetToken], [Client.GetNewToken]) need a [*request.Dispatcher];
// with any other [request.Doer] they report [shared.ErrNotImplemented] or an empty token.
func NewWithDoer(d request.Doer) *Client {
	c := &Client{
		Albums:    &AlbumService{d: d},
		Artists:   &ArtistService{d: d},
		Tracks:    &TrackService{d: d},
		Playlists: &PlaylistService{d: d},
		Users:     &UserService{d: d},
		Player:    &PlayerService{d: d},
	}
	if dispatcher, ok := d.(*request.Dispatcher); ok {
		c.dispatcher = dispatcher
	}
	return c
}

// Token returns the access token currently in use.
func (c *Client) Token() string {
	if c.dispatcher == nil {
		return ""
	}
	return c.dispatcher.Token()
}

// SetToken replaces the access token.
func (c *Client) SetToken(token string) {
	if c.dispatcher != nil {
		c.dispatcher.SetToken(token)
	}
}

// SetRefreshToken replaces the refresh token, see [request.Dispatcher.SetRefreshToken].
func (c *Client) SetRefreshToken(token string) error {
	if c.dispatcher == nil {
		return fmt.Errorf("%w: client has no dispatcher", shared.ErrNotImplemented)
	}
	return c.dispatcher.SetRefreshToken(token)
}

// GetNewToken refreshes the access token, see [request.Dispatcher.GetNewToken].
func (c *Client) GetNewToken(ctx context.Context) error {
	if c.dispatcher == nil {
		return fmt.Errorf("%w: client has no dispatcher", shared.ErrNotImplemented)
	}
	return c.dispatcher.GetNewToken(ctx)
}

// ids renders an id list for an ids= query parameter: joined with commas, in order, unescaped.
func ids(list []string) string {
	return shared.JoinIDs(list)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
