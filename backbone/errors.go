package backbone

import (
	"errors"
	"fmt"
)

// Sentinel errors for GroupBlock construction failures (spec.md §4.3,
// §7 InvalidGroup).
var (
	ErrEmptyHeaders    = errors.New("backbone: group has no headers")
	ErrLengthMismatch  = errors.New("backbone: headers and weights have different lengths")
	ErrZeroTotalWeight = errors.New("backbone: raw header weights sum to zero or less")
	ErrEmptyGroupName  = errors.New("backbone: group name must not be empty")
)

// ErrInvalidGroup wraps a GroupBlock construction failure with the
// offending group name.
type ErrInvalidGroup struct {
	Group string
	cause error
}

func (e *ErrInvalidGroup) Error() string {
	return fmt.Sprintf("backbone: invalid group %q: %v", e.Group, e.cause)
}

func (e *ErrInvalidGroup) Unwrap() error { return e.cause }

// ErrConfig reports a malformed configuration (spec.md §7 ConfigError):
// a missing section, a malformed weight literal, an empty group, or a
// zero total weight.
type ErrConfig struct {
	Section string
	cause   error
}

func (e *ErrConfig) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("backbone: invalid configuration section %q", e.Section)
	}

	return fmt.Sprintf("backbone: invalid configuration section %q: %v", e.Section, e.cause)
}

func (e *ErrConfig) Unwrap() error { return e.cause }

// ErrMalformedWeight is returned when a "Header(weight)" entry does not
// match the weight grammar (\S+)\((\d+(\.\d+)?)\).
var ErrMalformedWeight = errors.New("backbone: malformed weight literal")
