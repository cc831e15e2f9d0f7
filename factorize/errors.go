package factorize

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidClusterCount is returned when k is not strictly between 1 and the number of points.
	ErrInvalidClusterCount = errors.New("invalid number of clusters")

	// ErrInput matches failures of the similarity primitives.
	ErrInput = errors.New("factorization input error")

	// ErrFactorization matches failures of the factorize primitive.
	ErrFactorization = errors.New("factorization error")

	// ErrUnknownGoal is returned by ParseGoal for an unsupported goal name.
	ErrUnknownGoal = errors.New("unknown goal")
)

// PrimitiveError wraps a failure reported by a Primitives implementation.
//
// Its message is the primitive's message, unchanged. errors.Is reports
// ErrFactorization for the factorize primitive and ErrInput for the others.
type PrimitiveError struct {
	Op  Op
	Err error
}

func (e *PrimitiveError) Error() string { return e.Err.Error() }

func (e *PrimitiveError) Unwrap() error { return e.Err }

// Is reports the error kind of the failed primitive.
func (e *PrimitiveError) Is(target error) bool {
	switch target {
	case ErrFactorization:
		return e.Op == OpFactorize
	case ErrInput:
		return e.Op != OpFactorize
	default:
		return false
	}
}

// Op names a primitive.
type Op string

const (
	OpSimilarity     Op = "sym"
	OpDegreeDiagonal Op = "ddg"
	OpNormalize      Op = "norm"
	OpFactorize      Op = "symnmf"
)

// ErrInvalidResult is returned when a primitive returns a matrix of the wrong shape
// or with negative entries.
type ErrInvalidResult struct {
	Op                 Op
	Rows, Cols         int
	WantRows, WantCols int
	Negative           bool
}

func (e *ErrInvalidResult) Error() string {
	if e.Negative {
		return fmt.Sprintf("%s returned a negative entry", e.Op)
	}
	return fmt.Sprintf("%s returned a %dx%d matrix, expected %dx%d", e.Op, e.Rows, e.Cols, e.WantRows, e.WantCols)
}
