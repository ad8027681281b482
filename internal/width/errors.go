package width

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when two columns share a key.
	ErrDuplicateKey = errors.New("duplicate column key")
	// ErrEmptyKey is returned when a column is declared without a key.
	ErrEmptyKey = errors.New("empty column key")
	// ErrInvalidSize is returned for a non-positive or non-finite weight or
	// fixed size.
	ErrInvalidSize = errors.New("invalid column size")
	// ErrDividerOutOfRange is returned when a drag targets a divider that
	// does not sit between two columns.
	ErrDividerOutOfRange = errors.New("divider out of range")
	// ErrInvalidDelta is returned for a non-finite drag delta.
	ErrInvalidDelta = errors.New("invalid drag delta")
)

// ConfigError reports a column declaration that cannot be built.
type ConfigError struct {
	Index int
	Key   string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("column %d (%q): %s", e.Index, e.Key, e.Err.Error())
}

func (e *ConfigError) Unwrap() error { return e.Err }
