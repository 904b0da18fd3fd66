// Package validation binds and validates request payloads.
//
// Request types carry `validate` struct tags enforced by the validator
// library; failures are translated into field-level errors the client can
// render next to form inputs.
package validation
