package errs

import "strings"

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the field name the error relates to (e.g. "title").
	Field string `json:"field"`

	// Error is the human-readable message for that field.
	Error string `json:"error"`
}

// ActionType is a string enum describing what the client should do next.
type ActionType string

const (
	// ActionTypeRedirect tells the client to redirect; Value holds the target.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional client instruction attached to an error response,
// typically used by auth flows ("redirect to sign-in").
type Action struct {
	// Type is the kind of action (e.g. "redirect").
	Type ActionType `json:"type"`

	// Message is human-readable guidance for the UI.
	Message string `json:"message"`

	// Value is the payload for the action (e.g. the redirect URL).
	Value string `json:"value"`
}

// HTTPError is the application's failure signal.
//
// It satisfies the error interface and is designed to be serialized
// directly to JSON by the global error handler.
type HTTPError struct {
	// Code is a machine-friendly error code (e.g. "UNAUTHORIZED").
	Code string `json:"code"`

	// Message is the human-friendly message.
	Message string `json:"message"`

	// Status is the HTTP status code.
	Status int `json:"status"`

	// Override tells the client it may display Message verbatim.
	Override bool `json:"override"`

	// Errors holds field-level validation errors, typically for form inputs.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction.
	Action *Action `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is makes errors.Is treat any two *HTTPError values as matching, so callers
// can test for the category ("is this an application failure signal?")
// without comparing codes.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
// Used to derive stable machine codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
