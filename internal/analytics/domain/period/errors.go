package period

import "errors"

var (
	// ErrUnsupportedOperation is returned when a granularity has no fixed interval.
	ErrUnsupportedOperation = errors.New("period: unsupported operation")
	// ErrUnrecognizedGranularity is returned for values outside the catalog.
	ErrUnrecognizedGranularity = errors.New("period: unrecognized granularity")
	// ErrInvalidRange is returned when a calendar range ends before it starts.
	ErrInvalidRange = errors.New("period: invalid range")
	// ErrTooManyWindows guards calendar enumeration.
	ErrTooManyWindows = errors.New("period: too many windows")
	// ErrInvalidPeriodKey is returned when a period key cannot be parsed.
	ErrInvalidPeriodKey = errors.New("period: invalid period key")
)
