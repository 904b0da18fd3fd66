// Package middleware stores global and route-specific HTTP middleware.
//
// These intercept requests to handle cross-cutting concerns: session
// parsing (Clerk), request correlation, context-scoped logging, CORS, rate
// limiting, tracing, panic recovery, and the global error funnel.
//
// Procedure-level guards (auth, board scoping, caching) live in the
// procedure package; this package only prepares the request environment
// those steps read from.
package middleware
