package factorize

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Primitives is the numeric collaborator behind the orchestrator.
//
// Each primitive returns either a matrix or an error, never both. x holds one
// point per row.
type Primitives interface {
	// Similarity returns the n×n similarity matrix of x.
	Similarity(ctx context.Context, x mat.Matrix) (*mat.Dense, error)
	// DegreeDiagonal returns the n×n diagonal degree matrix of x.
	DegreeDiagonal(ctx context.Context, x mat.Matrix) (*mat.Dense, error)
	// Normalize returns the n×n normalized similarity matrix of x.
	Normalize(ctx context.Context, x mat.Matrix) (*mat.Dense, error)
	// Factorize refines the n×k factor h against the n×n matrix w.
	Factorize(ctx context.Context, h, w mat.Matrix) (*mat.Dense, error)
}

// Options configures an Orchestrator.
type Options struct {
	Logger *slog.Logger
}

// Orchestrator runs the factorization and derives hard labels from it.
type Orchestrator struct {
	prims  Primitives
	rng    *rand.Rand
	logger *slog.Logger
}

// New returns an Orchestrator drawing initial factors from rng.
func New(prims Primitives, rng *rand.Rand, optFns ...func(*Options)) *Orchestrator {
	opts := Options{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Orchestrator{
		prims:  prims,
		rng:    rng,
		logger: opts.Logger,
	}
}

// Factor returns the refined n×k factor matrix for the rows of x.
func (o *Orchestrator) Factor(ctx context.Context, x mat.Matrix, k int) (*mat.Dense, error) {
	n, _ := x.Dims()
	if k <= 1 || k >= n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidClusterCount, k, n)
	}

	w, err := o.prims.Normalize(ctx, x)
	if err != nil {
		return nil, &PrimitiveError{Op: OpNormalize, Err: err}
	}
	if err := checkResult(OpNormalize, w, n, n); err != nil {
		return nil, err
	}

	m := mean(w)
	h0 := InitialFactor(o.rng, n, k, m)

	o.logger.DebugContext(ctx, "factorization initialized", "points", n, "k", k, "mean", m)

	h, err := o.prims.Factorize(ctx, h0, w)
	if err != nil {
		return nil, &PrimitiveError{Op: OpFactorize, Err: err}
	}
	if err := checkResult(OpFactorize, h, n, k); err != nil {
		return nil, err
	}
	return h, nil
}

// Labels returns one label in [0, k) per row of x.
func (o *Orchestrator) Labels(ctx context.Context, x mat.Matrix, k int) ([]int, error) {
	h, err := o.Factor(ctx, x, k)
	if err != nil {
		return nil, err
	}
	return ArgMax(h), nil
}

// Run returns the matrix produced for goal. k is only used by GoalSymNMF.
func (o *Orchestrator) Run(ctx context.Context, goal Goal, x mat.Matrix, k int) (*mat.Dense, error) {
	var (
		m   *mat.Dense
		err error
	)

	switch goal {
	case GoalSymNMF:
		return o.Factor(ctx, x, k)
	case GoalSimilarity:
		m, err = o.prims.Similarity(ctx, x)
	case GoalDegreeDiagonal:
		m, err = o.prims.DegreeDiagonal(ctx, x)
	case GoalNormalize:
		m, err = o.prims.Normalize(ctx, x)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGoal, string(goal))
	}

	if err != nil {
		return nil, &PrimitiveError{Op: Op(goal), Err: err}
	}
	n, _ := x.Dims()
	if err := checkResult(Op(goal), m, n, n); err != nil {
		return nil, err
	}
	return m, nil
}

// InitialFactor returns an n×k matrix with entries drawn uniformly from
// [0, 2·sqrt(mean/k)).
func InitialFactor(rng *rand.Rand, n, k int, mean float64) *mat.Dense {
	upper := 2 * math.Sqrt(mean/float64(k))
	data := make([]float64, n*k)
	for i := range data {
		data[i] = rng.Float64() * upper
	}
	return mat.NewDense(n, k, data)
}

// ArgMax returns the column index of the largest entry of every row of h.
// The lowest column wins ties.
func ArgMax(h mat.Matrix) []int {
	r, c := h.Dims()
	labels := make([]int, r)
	for i := 0; i < r; i++ {
		best := h.At(i, 0)
		for j := 1; j < c; j++ {
			if v := h.At(i, j); v > best {
				best = v
				labels[i] = j
			}
		}
	}
	return labels
}

func mean(m *mat.Dense) float64 {
	r, c := m.Dims()
	return mat.Sum(m) / float64(r*c)
}

func checkResult(op Op, m *mat.Dense, rows, cols int) error {
	if m == nil {
		return &PrimitiveError{Op: op, Err: fmt.Errorf("%s returned no matrix", op)}
	}
	r, c := m.Dims()
	if r != rows || c != cols {
		return &PrimitiveError{Op: op, Err: &ErrInvalidResult{Op: op, Rows: r, Cols: c, WantRows: rows, WantCols: cols}}
	}
	if op == OpFactorize && mat.Min(m) < 0 {
		return &PrimitiveError{Op: op, Err: &ErrInvalidResult{Op: op, Rows: r, Cols: c, WantRows: rows, WantCols: cols, Negative: true}}
	}
	return nil
}
