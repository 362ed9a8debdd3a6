package morpholm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingOrder is returned when the n-gram order is unset or zero.
	ErrMissingOrder = errors.New("must set order")

	// ErrMissingPath is returned when a strategy that needs a model has no path.
	ErrMissingPath = errors.New("must set path")

	// ErrEmptyMarker is returned when the join marker is configured empty.
	ErrEmptyMarker = errors.New("marker must not be empty")

	// ErrUnknownStrategy is returned for a strategy name that is not recognised.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrBinaryUnsupported is returned when a binary trie backend is requested.
	ErrBinaryUnsupported = errors.New("binary language models are not supported")

	// ErrUnknownParameter is returned for a configuration key that is not recognised.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// ConfigError reports an invalid configuration parameter.
//
// The underlying sentinel can be matched with errors.Is.
type ConfigError struct {
	Key   string
	Value string
	cause error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Key, e.cause)
	}
	return fmt.Sprintf("%s=%q: %v", e.Key, e.Value, e.cause)
}

func (e *ConfigError) Unwrap() error { return e.cause }
