package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an ID is not present in the requested partition.
var ErrNotFound = errors.New("shortcut not found")

// IOError reports a filesystem failure while reading or writing a store file or sheet.
type IOError struct {
	Op   string // "read", "write", "stat", ...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// FormatError reports content that could not be decoded.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
