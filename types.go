package wordsearchx

import "github.com/cockroachdb/errors"

// ErrorCode represents specific error codes for solve operations.
type ErrorCode int

const (
	// ErrCodeInvalidGrid is returned when grid extents do not describe the cell buffer.
	ErrCodeInvalidGrid ErrorCode = iota + 1000

	// ErrCodeShapeMismatch is returned when words and result buffers are not index-aligned
	// or a result buffer is not sized to its word.
	ErrCodeShapeMismatch

	// ErrCodeInvalidThreadCount is returned when fewer than one worker is requested.
	ErrCodeInvalidThreadCount

	// ErrCodeCanceled is returned when a solve operation is canceled.
	ErrCodeCanceled

	// ErrCodePuzzleNotFound is returned when a puzzle ID is not known to a solver.
	ErrCodePuzzleNotFound

	// ErrCodeInvalidPuzzle is returned when a puzzle cannot be decoded into a grid and word list.
	ErrCodeInvalidPuzzle
)

// String returns the human-readable string representation of the error code.
// This implements the fmt.Stringer interface.
func (e ErrorCode) String() string {
	switch e {
	case ErrCodeInvalidGrid:
		return "invalid grid"
	case ErrCodeShapeMismatch:
		return "shape mismatch"
	case ErrCodeInvalidThreadCount:
		return "invalid thread count"
	case ErrCodeCanceled:
		return "operation canceled"
	case ErrCodePuzzleNotFound:
		return "puzzle not found"
	case ErrCodeInvalidPuzzle:
		return "invalid puzzle"
	default:
		return "unknown error"
	}
}

// newErrorWithCode creates a new error with a code and message.
func newErrorWithCode(code ErrorCode, msg string) error {
	err := errors.New(msg)
	return errors.WithSecondaryError(err, errors.Newf("code: %d", int(code)))
}

// Common errors that can be returned by solve operations.
var (
	// ErrInvalidGrid is returned when rows*cols does not match the cell buffer or an extent is negative.
	ErrInvalidGrid = newErrorWithCode(ErrCodeInvalidGrid, "wordsearchx: invalid grid")

	// ErrShapeMismatch is returned when words and results disagree in length.
	ErrShapeMismatch = newErrorWithCode(ErrCodeShapeMismatch, "wordsearchx: shape mismatch")

	// ErrInvalidThreadCount is returned when the thread count is below one.
	ErrInvalidThreadCount = newErrorWithCode(ErrCodeInvalidThreadCount, "wordsearchx: invalid thread count")

	// ErrCanceled is returned when a solve operation is canceled.
	ErrCanceled = newErrorWithCode(ErrCodeCanceled, "wordsearchx: operation canceled")

	// ErrPuzzleNotFound is returned when a puzzle ID is unknown.
	ErrPuzzleNotFound = newErrorWithCode(ErrCodePuzzleNotFound, "wordsearchx: puzzle not found")

	// ErrInvalidPuzzle is returned when puzzle input cannot be turned into a grid.
	ErrInvalidPuzzle = newErrorWithCode(ErrCodeInvalidPuzzle, "wordsearchx: invalid puzzle")
)

// markf builds a detailed error that still satisfies errors.Is against the given sentinel.
func markf(sentinel error, format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), sentinel)
}
