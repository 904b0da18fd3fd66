// Package errs defines the application's typed failure signals.
//
// Every error a procedure or handler surfaces to a client is an *HTTPError
// carrying a machine-readable code, a human-readable message, and an HTTP
// status. Procedure steps short-circuit by returning one of these; the
// global error handler serializes them to JSON.
package errs
