package swiperefresh

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by operations that need a content view before
	// one is attached. Callers can retry once SetContent has been called.
	ErrNotReady = errors.New("swiperefresh: content not attached")

	// ErrNoIndicator means the layout was built without a progress indicator.
	ErrNoIndicator = errors.New("swiperefresh: no progress indicator")

	// ErrInvalidConfig marks a configuration value out of range.
	ErrInvalidConfig = errors.New("swiperefresh: invalid configuration")
)

// ConfigurationError reports a layout that cannot be built.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("swiperefresh: configuration: %v", e.Err)
	}
	return fmt.Sprintf("swiperefresh: configuration %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErr(field string, format string, args ...any) error {
	return &ConfigurationError{
		Field: field,
		Err:   fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...),
	}
}
