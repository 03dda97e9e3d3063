package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrNoItems is returned when a narrative is requested for an empty selection.
	ErrNoItems = errors.New("cannot describe an empty outfit")
)
