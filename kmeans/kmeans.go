package kmeans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/clusteval/distance"
)

// MaxIterationsLimit is the exclusive upper bound for the iteration cap.
const MaxIterationsLimit = 1000

var (
	// ErrInvalidClusterCount is returned when k is not strictly between 1 and the number of points.
	ErrInvalidClusterCount = errors.New("invalid number of clusters")

	// ErrInvalidIterationBound is returned when the iteration cap is not strictly between 1 and MaxIterationsLimit.
	ErrInvalidIterationBound = errors.New("invalid maximum iteration")
)

// Options configures a training run.
type Options struct {
	// Workers is the number of goroutines used for the assignment step.
	// Values <= 1 assign sequentially.
	Workers int

	// Logger receives per-iteration progress at debug level.
	Logger *slog.Logger

	// ProgressInterval throttles the per-iteration debug log.
	ProgressInterval time.Duration
}

// Result holds the outcome of a training run.
type Result struct {
	// Centroids has one entry per cluster, index-aligned to the cluster id.
	Centroids [][]float64

	// Iterations is the number of completed assignment+update passes.
	Iterations int

	// Converged reports whether the run stopped because every centroid moved
	// less than epsilon.
	Converged bool
}

// Train clusters points into k groups and returns the final centroids.
//
// It requires 1 < k < len(points) and 1 < maxIter < MaxIterationsLimit.
// The input is not modified.
func Train(ctx context.Context, points [][]float64, k, maxIter int, epsilon float64, optFns ...func(*Options)) (*Result, error) {
	opts := Options{
		Workers:          1,
		ProgressInterval: time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	n := len(points)
	if k <= 1 || k >= n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidClusterCount, k, n)
	}
	if maxIter <= 1 || maxIter >= MaxIterationsLimit {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterationBound, maxIter)
	}

	dim := len(points[0])
	for _, p := range points {
		if len(p) != dim {
			return nil, &distance.ErrDimensionMismatch{Expected: dim, Actual: len(p)}
		}
	}

	distFunc, err := distance.Provider(distance.MetricEuclidean)
	if err != nil {
		return nil, err
	}

	centroids := make([][]float64, k)
	for i := range k {
		centroids[i] = append([]float64(nil), points[i]...)
	}

	labels := make([]int, n)
	progress := rate.Sometimes{First: 1, Interval: opts.ProgressInterval}
	res := &Result{}

	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Assignment step
		if err := assign(ctx, points, centroids, labels, distFunc, opts.Workers); err != nil {
			return nil, err
		}

		// Update step
		next, err := update(points, labels, centroids)
		if err != nil {
			return nil, err
		}

		shift := 0.0
		for j := range k {
			shift = math.Max(shift, distFunc(centroids[j], next[j]))
		}
		centroids = next
		res.Iterations = iter + 1

		progress.Do(func() {
			logger.DebugContext(ctx, "kmeans iteration",
				"iteration", res.Iterations,
				"max_shift", shift,
			)
		})

		if shift < epsilon {
			res.Converged = true
			break
		}
	}

	res.Centroids = centroids
	return res, nil
}

// assign writes the nearest centroid of every point into labels.
func assign(ctx context.Context, points, centroids [][]float64, labels []int, distFunc distance.Func, workers int) error {
	n := len(points)
	if workers <= 1 || n < 2*workers {
		for i, p := range points {
			labels[i] = nearest(p, centroids, distFunc)
		}
		return nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				labels[i] = nearest(points[i], centroids, distFunc)
			}
			return nil
		})
	}

	return g.Wait()
}

// update recomputes the centroid of every non-empty cluster.
// Empty clusters keep their previous centroid.
func update(points [][]float64, labels []int, prev [][]float64) ([][]float64, error) {
	members := make([][][]float64, len(prev))
	for i, p := range points {
		members[labels[i]] = append(members[labels[i]], p)
	}

	next := make([][]float64, len(prev))
	for j := range prev {
		if len(members[j]) == 0 {
			next[j] = prev[j]
			continue
		}
		c, err := distance.Centroid(members[j])
		if err != nil {
			return nil, err
		}
		next[j] = c
	}
	return next, nil
}

// nearest returns the index of the closest centroid.
// The first minimum wins, so ties resolve to the lowest index.
func nearest(p []float64, centroids [][]float64, distFunc distance.Func) int {
	best := 0
	minDist := distFunc(p, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := distFunc(p, centroids[j]); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}

// Nearest finds the closest centroid for a point.
func Nearest(point []float64, centroids [][]float64) (int, error) {
	if len(centroids) == 0 {
		return -1, fmt.Errorf("%w: no centroids", ErrInvalidClusterCount)
	}
	for _, c := range centroids {
		if len(c) != len(point) {
			return -1, &distance.ErrDimensionMismatch{Expected: len(c), Actual: len(point)}
		}
	}

	distFunc, err := distance.Provider(distance.MetricEuclidean)
	if err != nil {
		return -1, err
	}
	return nearest(point, centroids, distFunc), nil
}

// Assign labels every point with the index of its closest centroid.
func Assign(points [][]float64, centroids [][]float64) ([]int, error) {
	labels := make([]int, len(points))
	for i, p := range points {
		label, err := Nearest(p, centroids)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}
