package core

import (
	"errors"
	"fmt"
)

// Extraction failure kinds. Source variants wrap these so callers can
// tell them apart with errors.Is.
var (
	ErrNotFound             = errors.New("source location not found")
	ErrParse                = errors.New("malformed source data")
	ErrEncoding             = errors.New("unreadable source encoding")
	ErrNetwork              = errors.New("source transport failure")
	ErrInvalidResponseShape = errors.New("source payload is not a record list")
)

// SourceError is returned from consolidation when a source fails to extract.
type SourceError struct {
	ID   SourceID
	Name string
	Err  error
}

func (e *SourceError) Error() string {
	name := e.Name
	if name == "" {
		name = string(e.ID)
	}
	return fmt.Sprintf("source %q: %s", name, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
