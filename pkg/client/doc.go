// Package client is a typed client for the Spotify Web API.
//
// # Quick Start
//
//	c, err := client.New(token, request.Options{
//		RefreshToken:    refreshToken,
//		RefreshEndpoint: "https://example.com/refresh?refresh_token=",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	album, err := c.Albums.Album(ctx, "4aawyAB9vmqN3uQ7FjRGTy").Unwrap()
//
// # Resource Groups
//
// [Client] exposes six groups: Albums, Artists, Tracks, Playlists, Users and Player. Every method maps to exactly
// one verb and path and does nothing but build that path (and a body for the few writes that need one) before
// handing it to the dispatcher.
//
// Methods that take several ids join them with "," in the order given, producing the same path as their
// single-id counterpart: SaveAlbum("a") and SaveAlbums([]string{"a"}) both call PUT /me/albums?ids=a.
//
// # Results
//
// Methods return a [request.Result]. Check [request.Result.OK] or call [request.Result.Unwrap]; failures are
// [request.ErrorEnvelope] values rather than returned errors.
//
// # Credentials
//
// [Client.Token], [Client.SetToken] and [Client.GetNewToken] forward to the dispatcher, which owns the token.
package client
