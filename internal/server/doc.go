// Package server provides HTTP routing, middleware, and the Google sign-in
// callback used by the CLI auth flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Google Callback Handler
//
// [CallbackHandler] terminates the catalog's Google sign-in redirect. The
// catalog sends the browser back to the local callback with auth=success and
// a URL-encoded JSON user payload; the handler validates the state parameter
// (CSRF protection), decodes the payload into a session, and sends the
// result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Current Usage
//
// When the user runs `movitv auth google`, a temporary HTTP server starts on
// localhost, the browser is opened at the catalog's /api/auth/google entry
// point, and the server shuts down after the callback lands.
package server
