// Package resume provides construction, normalization, editing and decoding of resume documents.
package resume

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by edits addressing a missing entry.
var ErrIndexOutOfRange = errors.New("entry index out of range")

// LoadError represents an error during JSON decoding or schema validation
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// EditError reports an edit that could not be applied
type EditError struct {
	Section string
	Index   int
	Cause   error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("edit %s[%d]: %v", e.Section, e.Index, e.Cause)
}

func (e *EditError) Unwrap() error {
	return e.Cause
}
