// Package server provides HTTP routing, middleware, and handlers for the
// playlist aggregation service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse registration order (first added
// runs outermost), following the standard Go pattern. The [BasicRouter]
// implementation uses [http.ServeMux] internally.
//
// # Request Pipeline
//
// A serving router stacks three middlewares: request logging (tagged with a
// generated request id), CORS (headers on every response plus OPTIONS
// preflight short-circuiting), and a token-bucket rate limiter.
//
// # Handlers
//
// [PlaylistHandler] serves GET /playlist: it validates the playlist URL,
// resolves an access token (caller-supplied bearer or a fresh client
// credentials exchange), fetches the full paginated track list, and maps
// classified failures to status codes and short user-facing messages.
//
// [AuthHandler] serves the authorization code flow (/auth and /callback)
// for callers who want a user token to access private playlists. The
// exchanged token is handed back in a URL fragment; nothing is stored.
//
// # Error Handling
//
// Handlers respond with {"error": message} payloads. Upstream error bodies
// are logged server-side and never forwarded. Status-dependent messages
// come from the single classification switch in the spotify package.
package server
