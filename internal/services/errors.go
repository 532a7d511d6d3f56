package services

import (
	"errors"
	"fmt"
)

var (
	// ErrRasterization marks a PDF that could not be rendered to page
	// images (corrupt, encrypted, zero pages). Document-level failure.
	ErrRasterization = errors.New("pdf rasterization failed")

	// ErrUnsupportedFormat marks an input that is not a PDF.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyTranscript marks a document whose every page failed
	// extraction. Distinct from a readable document with no text.
	ErrEmptyTranscript = errors.New("empty transcript: all pages failed extraction")
)

// ModelInvocationError is any failure of a Model Gateway call. The vendor
// error is preserved; retry policy is the caller's concern.
type ModelInvocationError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Err
}

// IsModelInvocation reports whether err is (or wraps) a gateway failure.
func IsModelInvocation(err error) bool {
	var target *ModelInvocationError
	return errors.As(err, &target)
}
