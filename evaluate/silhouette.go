package evaluate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/clusteval/distance"
)

var (
	// ErrUndefined is returned when the score is not defined for the assignment.
	ErrUndefined = errors.New("score is undefined")

	// ErrLabelCount is returned when the number of labels differs from the number of points.
	ErrLabelCount = errors.New("label count does not match point count")
)

// Scorer computes a quality score for a cluster assignment.
type Scorer interface {
	Score(ctx context.Context, points [][]float64, labels []int) (float64, error)
}

// Silhouette computes the mean silhouette coefficient.
//
// For sample i with mean intra-cluster distance a and lowest mean distance b
// to any other cluster, s(i) = (b - a) / max(a, b). A sample alone in its
// cluster scores 0. The score is defined for 2 <= distinct labels <= n-1 and
// at least two distinct points.
type Silhouette struct {
	// Workers is the number of goroutines scoring samples. Values <= 1 score sequentially.
	Workers int
}

// Score implements Scorer.
func (s Silhouette) Score(ctx context.Context, points [][]float64, labels []int) (float64, error) {
	samples, err := s.Samples(ctx, points, labels)
	if err != nil {
		return 0, err
	}
	return stat.Mean(samples, nil), nil
}

// Samples returns the silhouette coefficient of every sample.
func (s Silhouette) Samples(ctx context.Context, points [][]float64, labels []int) ([]float64, error) {
	n := len(points)
	if n != len(labels) {
		return nil, fmt.Errorf("%w: %d points, %d labels", ErrLabelCount, n, len(labels))
	}
	if n == 0 {
		return nil, ErrUndefined
	}

	dim := len(points[0])
	for _, p := range points {
		if len(p) != dim {
			return nil, &distance.ErrDimensionMismatch{Expected: dim, Actual: len(p)}
		}
	}

	part := NewPartition(labels)
	if part.Len() < 2 || part.Len() > n-1 {
		return nil, fmt.Errorf("%w: %d distinct labels for %d points", ErrUndefined, part.Len(), n)
	}
	if coincident(points) {
		return nil, fmt.Errorf("%w: all points coincide", ErrUndefined)
	}

	distFunc, err := distance.Provider(distance.MetricEuclidean)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, n)
	score := func(i int) {
		scores[i] = sample(i, points, labels[i], part, distFunc)
	}

	workers := s.Workers
	if workers <= 1 || n < 2*workers {
		for i := range points {
			if i%256 == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			score(i)
		}
		return scores, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				score(i)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func sample(i int, points [][]float64, own int, part *Partition, distFunc distance.Func) float64 {
	size := part.Size(own)
	if size <= 1 {
		return 0
	}

	a := sumDistance(i, points, part.Members(own), distFunc) / float64(size-1)

	b := math.Inf(1)
	for _, l := range part.labels {
		if l == own {
			continue
		}
		members := part.Members(l)
		b = min(b, sumDistance(i, points, members, distFunc)/float64(members.GetCardinality()))
	}

	den := max(a, b)
	if den == 0 {
		return 0
	}
	return (b - a) / den
}

// sumDistance returns the summed distance from points[i] to the members.
func sumDistance(i int, points [][]float64, members *roaring.Bitmap, distFunc distance.Func) float64 {
	var sum float64
	it := members.Iterator()
	for it.HasNext() {
		sum += distFunc(points[i], points[it.Next()])
	}
	return sum
}

func coincident(points [][]float64) bool {
	for _, p := range points[1:] {
		if !slices.Equal(p, points[0]) {
			return false
		}
	}
	return true
}
