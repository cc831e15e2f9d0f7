package clusteval

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/clusteval/codec"
	"github.com/hupe1980/clusteval/dataset"
	"github.com/hupe1980/clusteval/evaluate"
	"github.com/hupe1980/clusteval/factorize"
	"github.com/hupe1980/clusteval/kmeans"
)

// Evaluator runs and scores both clustering methods.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	opts options
}

// New returns an Evaluator configured by opts.
func New(opts ...Option) *Evaluator {
	return &Evaluator{opts: applyOptions(opts)}
}

// Codec returns the configured report codec.
func (e *Evaluator) Codec() codec.Codec { return e.opts.codec }

// Run clusters data into k groups with SymNMF and with K-means and scores
// both assignments.
func (e *Evaluator) Run(ctx context.Context, data *dataset.Dataset, k int) (*Report, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrInvalidArguments)
	}

	e = e.scoped(data, k)
	points := data.Points()
	report := &Report{
		K:         k,
		Points:    data.Len(),
		Dimension: data.Dim(),
	}

	nmfLabels, err := e.labels(ctx, data, k)
	if err != nil {
		return nil, err
	}
	if report.NMF, err = e.score(ctx, "nmf", points, nmfLabels); err != nil {
		return nil, err
	}

	var kmLabels []int
	err = e.stage(ctx, StageKMeans, func() error {
		res, err := e.train(ctx, data, k, e.opts.maxIterations)
		if err != nil {
			return err
		}
		report.KMeansIterations = res.Iterations
		report.KMeansConverged = res.Converged

		kmLabels, err = kmeans.Assign(points, res.Centroids)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	if report.KMeans, err = e.score(ctx, "kmeans", points, kmLabels); err != nil {
		return nil, err
	}

	return report, nil
}

// Cluster runs K-means alone and returns its centroids.
func (e *Evaluator) Cluster(ctx context.Context, data *dataset.Dataset, k, maxIter int) (*kmeans.Result, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrInvalidArguments)
	}

	e = e.scoped(data, k)
	var res *kmeans.Result
	err := e.stage(ctx, StageKMeans, func() error {
		var err error
		res, err = e.train(ctx, data, k, maxIter)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return res, nil
}

// Labels returns the SymNMF cluster label of every point.
func (e *Evaluator) Labels(ctx context.Context, data *dataset.Dataset, k int) ([]int, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrInvalidArguments)
	}

	return e.scoped(data, k).labels(ctx, data, k)
}

func (e *Evaluator) labels(ctx context.Context, data *dataset.Dataset, k int) ([]int, error) {
	var labels []int
	err := e.stage(ctx, StageFactorize, func() error {
		var err error
		labels, err = e.orchestrator().Labels(ctx, data.Matrix(), k)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return labels, nil
}

// Matrix returns the matrix selected by goal.
func (e *Evaluator) Matrix(ctx context.Context, data *dataset.Dataset, goal factorize.Goal, k int) (*mat.Dense, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrInvalidArguments)
	}

	var m *mat.Dense
	err := e.stage(ctx, StageFactorize, func() error {
		var err error
		m, err = e.orchestrator().Run(ctx, goal, data.Matrix(), k)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return m, nil
}

// scoped returns a copy of e whose logger carries the run parameters.
func (e *Evaluator) scoped(data *dataset.Dataset, k int) *Evaluator {
	c := *e
	c.opts.logger = e.opts.logger.WithK(k).WithDataset(data.Len(), data.Dim())
	return &c
}

// orchestrator returns a factorization orchestrator with a freshly seeded
// generator, so every call draws the same initial factor.
func (e *Evaluator) orchestrator() *factorize.Orchestrator {
	return factorize.New(e.opts.primitives, rand.New(rand.NewSource(e.opts.seed)), func(o *factorize.Options) {
		o.Logger = e.opts.logger.Logger
	})
}

func (e *Evaluator) train(ctx context.Context, data *dataset.Dataset, k, maxIter int) (*kmeans.Result, error) {
	res, err := kmeans.Train(ctx, data.Points(), k, maxIter, e.opts.epsilon, func(o *kmeans.Options) {
		o.Workers = e.opts.workers
		o.Logger = e.opts.logger.Logger
		o.ProgressInterval = e.opts.progressInterval
	})
	if err != nil {
		return nil, err
	}

	e.opts.metricsCollector.RecordKMeans(res.Iterations, res.Converged)
	e.opts.logger.LogKMeans(ctx, res.Iterations, res.Converged)
	return res, nil
}

func (e *Evaluator) score(ctx context.Context, method string, points [][]float64, labels []int) (evaluate.Score, error) {
	var s evaluate.Score
	err := e.stage(ctx, StageScore, func() error {
		var err error
		s, err = evaluate.Evaluate(ctx, e.opts.scorer, points, labels)
		return err
	})
	if err != nil {
		return evaluate.Score{}, translateError(err)
	}
	e.opts.logger.LogScore(ctx, method, s)
	return s, nil
}

func (e *Evaluator) stage(ctx context.Context, stage Stage, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)

	e.opts.metricsCollector.RecordStage(stage, d, err)
	e.opts.logger.LogStage(ctx, stage, d, err)
	return err
}
