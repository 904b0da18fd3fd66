// Package handler is the HTTP entry point after the router.
//
// Handlers declare their endpoints as procedures (variant + metadata),
// provide the terminal function the chain ends in, and call the service
// layer. Binding, validation, and context construction happen in the
// procedure adapter.
package handler
