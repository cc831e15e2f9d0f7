package clusteval

import (
	"errors"
	"fmt"

	"github.com/hupe1980/clusteval/dataset"
	"github.com/hupe1980/clusteval/distance"
	"github.com/hupe1980/clusteval/evaluate"
	"github.com/hupe1980/clusteval/factorize"
	"github.com/hupe1980/clusteval/kmeans"
)

var (
	// ErrInvalidClusterCount is returned when k is not strictly between 1 and the number of points.
	ErrInvalidClusterCount = errors.New("invalid number of clusters")

	// ErrInvalidIterationBound is returned when the iteration cap is not strictly between 1 and 1000.
	ErrInvalidIterationBound = errors.New("invalid maximum iteration")

	// ErrFactorizationInput is returned when the similarity primitives fail.
	ErrFactorizationInput = errors.New("factorization input error")

	// ErrFactorization is returned when the factorize primitive fails.
	ErrFactorization = errors.New("factorization error")

	// ErrMalformedInput is returned for unparsable datasets.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidArguments is returned for unusable arguments.
	ErrInvalidArguments = errors.New("invalid arguments")
)

// ErrDimensionMismatch indicates points of different dimensionality.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// kindError tags err with a package error kind and keeps its message.
// Collaborator messages reach the caller unchanged.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }

func (e *kindError) Unwrap() []error { return []error{e.kind, e.err} }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var perr *factorize.PrimitiveError
	if errors.As(err, &perr) {
		if errors.Is(err, factorize.ErrFactorization) {
			return &kindError{kind: ErrFactorization, err: err}
		}
		return &kindError{kind: ErrFactorizationInput, err: err}
	}

	var dm *distance.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}

	for _, m := range kindMappings {
		for _, src := range m.from {
			if errors.Is(err, src) {
				return &kindError{kind: m.kind, err: err}
			}
		}
	}
	return err
}

var kindMappings = []struct {
	kind error
	from []error
}{
	{ErrInvalidClusterCount, []error{kmeans.ErrInvalidClusterCount, factorize.ErrInvalidClusterCount}},
	{ErrInvalidIterationBound, []error{kmeans.ErrInvalidIterationBound}},
	{ErrMalformedInput, []error{dataset.ErrMalformedInput}},
	{ErrInvalidArguments, []error{factorize.ErrUnknownGoal, evaluate.ErrLabelCount}},
}
