package remote

import "errors"

// Transport-level error sentinels. Callers treat all of them as
// "remote unavailable" and fall back to local classification.
var (
	ErrUnexpectedStatus  = errors.New("unexpected status from classification service")
	ErrMalformedResponse = errors.New("malformed response from classification service")
	ErrInvalidBaseURL    = errors.New("invalid classification service url")
)
