// Package server runs the refresh endpoint behind `spotty serve`.
//
// # Refresh Endpoint
//
// Refreshing an access token needs the application's client secret, which a distributed client must not carry.
// [RefreshHandler] holds the secret instead: it answers
//
//	GET /refresh?refresh_token=<token>
//
// by exchanging the refresh token at the accounts service and replying with {"access_token": ...}.
// Point a client's RefreshEndpoint at "http://<host>:<port>/refresh?refresh_token=" and
// [request.Dispatcher.GetNewToken] appends the refresh token to it.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
