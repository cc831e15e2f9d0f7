package evaluate

import (
	"context"
	"errors"
)

// Evaluate scores an assignment with scorer. An ErrUndefined result becomes
// the undefined Score and a nil error.
func Evaluate(ctx context.Context, scorer Scorer, points [][]float64, labels []int) (Score, error) {
	v, err := scorer.Score(ctx, points, labels)
	if err != nil {
		if errors.Is(err, ErrUndefined) {
			return Undefined(), nil
		}
		return Score{}, err
	}
	return NewScore(v), nil
}
