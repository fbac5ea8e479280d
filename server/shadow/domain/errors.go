package domain

import "errors"

// Error taxonomy. Validation failures reject before any external call is
// made; upstream and malformed-output failures surface as a generic 5xx
// unless the flow degrades to a fallback instead.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUpstream        = errors.New("upstream call failed")
	ErrMalformedOutput = errors.New("model output failed to parse")
)
