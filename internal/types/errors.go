package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a generation did not produce a result.
// The string value is what clients see in the "type" field of error responses.
type ErrorKind string

const (
	KindInvalidRequest   ErrorKind = "INVALID_REQUEST"
	KindProvider         ErrorKind = "PROVIDER_ERROR"
	KindNoJSONFound      ErrorKind = "NO_JSON_FOUND"
	KindMalformedJSON    ErrorKind = "INVALID_JSON"
	KindIncompleteResult ErrorKind = "INCOMPLETE_RESULT"
	KindUpstreamReported ErrorKind = "UPSTREAM_REPORTED_ERROR"
)

// maxRawFragment bounds how much of the provider's text is kept on an error.
const maxRawFragment = 512

// Kind sentinels for use with errors.Is.
var (
	ErrInvalidRequest   = &GenerationError{Kind: KindInvalidRequest}
	ErrProvider         = &GenerationError{Kind: KindProvider}
	ErrNoJSONFound      = &GenerationError{Kind: KindNoJSONFound}
	ErrMalformedJSON    = &GenerationError{Kind: KindMalformedJSON}
	ErrIncompleteResult = &GenerationError{Kind: KindIncompleteResult}
	ErrUpstreamReported = &GenerationError{Kind: KindUpstreamReported}
)

// GenerationError is the failure outcome of a generation call.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	// Raw holds a bounded fragment of the provider response, for logs only.
	Raw string
	Err error
}

// NewError builds a GenerationError of the given kind wrapping err (which may be nil).
func NewError(kind ErrorKind, message string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Message: message, Err: err}
}

// WithRaw attaches a fragment of the raw provider text and returns e.
func (e *GenerationError) WithRaw(raw string) *GenerationError {
	if len(raw) > maxRawFragment {
		raw = raw[:maxRawFragment]
	}
	e.Raw = raw
	return e
}

func (e *GenerationError) Error() string {
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *GenerationError) Is(target error) bool {
	t, ok := target.(*GenerationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// AsGenerationError extracts a *GenerationError from err's chain.
func AsGenerationError(err error) (*GenerationError, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}
