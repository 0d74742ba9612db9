package raqm

import "errors"

// Error taxonomy (spec §7): four sentinel conditions an Engine operation
// can fail with, checked with errors.Is.
var (
	// ErrInvalidArgument covers null/empty text, a mis-ordered setter call,
	// or an out-of-range start/len on a per-range setter.
	ErrInvalidArgument = errors.New("raqm: invalid argument")

	// ErrAllocationFailure is kept for parity with the source system's
	// error taxonomy; Go's allocator panics rather than returning an
	// error, so this is never actually produced by this implementation,
	// but the sentinel is exported so callers porting code written
	// against the original taxonomy compile unchanged.
	ErrAllocationFailure = errors.New("raqm: allocation failure")

	// ErrConfigurationIncomplete is returned by Layout when called
	// without text, or without any face assigned via SetFontRange.
	ErrConfigurationIncomplete = errors.New("raqm: configuration incomplete")

	// ErrShapingFailed is kept for parity with the source taxonomy; this
	// implementation treats a failed shape of one run as zero glyphs for
	// that run (spec §7) rather than failing Layout, so it is never
	// returned either, only exported for the same reason as
	// ErrAllocationFailure.
	ErrShapingFailed = errors.New("raqm: shaping failed")
)
