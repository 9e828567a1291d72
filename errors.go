package dynbitset

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when an index addresses a bit or word beyond the current capacity.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrInvalidResize is returned when Resize is asked to shrink the bitset.
	ErrInvalidResize = errors.New("invalid resize")

	// ErrInvalidOperation is returned for operations that are not valid in the current state,
	// such as removing a word from an empty bitset.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrTruncated is returned when encoded input ends before all words were read.
	ErrTruncated = errors.New("truncated bitset encoding")

	// ErrCorrupt is returned when encoded input is malformed.
	ErrCorrupt = errors.New("corrupt bitset encoding")
)

// OutOfBoundsError describes a rejected bit or word access.
//
// It matches ErrOutOfBounds via errors.Is.
type OutOfBoundsError struct {
	Index      int
	ArrayIndex int
	BitOffset  int
	WordCount  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("index out of bounds: index %d (word %d, bit %d) with %d words",
		e.Index, e.ArrayIndex, e.BitOffset, e.WordCount)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// InvalidResizeError describes a Resize call that would shrink the bitset.
//
// It matches ErrInvalidResize via errors.Is.
type InvalidResizeError struct {
	Requested int
	Current   int
}

func (e *InvalidResizeError) Error() string {
	return fmt.Sprintf("invalid resize: requested %d words, have %d (shrink with RemoveLastWord)",
		e.Requested, e.Current)
}

func (e *InvalidResizeError) Unwrap() error { return ErrInvalidResize }
