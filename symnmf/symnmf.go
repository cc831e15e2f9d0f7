package symnmf

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/clusteval/distance"
)

const (
	// DefaultBeta is the damping factor of the multiplicative update.
	DefaultBeta = 0.5
	// DefaultEpsilon bounds the squared Frobenius norm of the last update.
	DefaultEpsilon = 1e-4
	// DefaultMaxIterations caps the number of update rounds.
	DefaultMaxIterations = 300
)

var (
	// ErrEmpty is returned for a data matrix without rows or columns.
	ErrEmpty = errors.New("symnmf: empty input")
	// ErrZeroDegree is returned when a point has no similarity mass, so D^(-1/2) is undefined.
	ErrZeroDegree = errors.New("symnmf: zero degree")
	// ErrShape is returned when H and W do not have compatible shapes.
	ErrShape = errors.New("symnmf: incompatible matrix shapes")
	// ErrNegative is returned when the initial factor holds a negative entry.
	ErrNegative = errors.New("symnmf: negative entry in factor matrix")
)

// Options configures the factorization.
type Options struct {
	Beta          float64
	Epsilon       float64
	MaxIterations int
}

// Kernel computes the similarity matrices and the SymNMF factorization.
// A Kernel is stateless and safe for concurrent use.
type Kernel struct {
	opts Options
}

// New returns a Kernel with the default parameters.
func New(optFns ...func(*Options)) *Kernel {
	opts := Options{
		Beta:          DefaultBeta,
		Epsilon:       DefaultEpsilon,
		MaxIterations: DefaultMaxIterations,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Kernel{opts: opts}
}

// Similarity returns the n×n Gaussian similarity matrix of the rows of x.
func (k *Kernel) Similarity(ctx context.Context, x mat.Matrix) (*mat.Dense, error) {
	n, dim := x.Dims()
	if n == 0 || dim == 0 {
		return nil, ErrEmpty
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, x)
	}

	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			v := math.Exp(-0.5 * distance.SquaredL2(rows[i], rows[j]))
			a.Set(i, j, v)
			a.Set(j, i, v)
		}
	}
	return a, nil
}

// DegreeDiagonal returns the diagonal degree matrix of the similarity matrix of x.
func (k *Kernel) DegreeDiagonal(ctx context.Context, x mat.Matrix) (*mat.Dense, error) {
	a, err := k.Similarity(ctx, x)
	if err != nil {
		return nil, err
	}
	return degree(a), nil
}

// Normalize returns the normalized similarity matrix D^(-1/2) A D^(-1/2) of x.
func (k *Kernel) Normalize(ctx context.Context, x mat.Matrix) (*mat.Dense, error) {
	a, err := k.Similarity(ctx, x)
	if err != nil {
		return nil, err
	}

	n, _ := a.Dims()
	inv := make([]float64, n)
	for i := range inv {
		d := mat.Sum(a.RowView(i))
		if d <= 0 {
			return nil, fmt.Errorf("%w: row %d", ErrZeroDegree, i)
		}
		inv[i] = 1 / math.Sqrt(d)
	}
	dInv := mat.NewDiagDense(n, inv)

	var mid, w mat.Dense
	mid.Mul(dInv, a)
	w.Mul(&mid, dInv)
	return &w, nil
}

// Factorize refines the initial n×k factor h against the n×n matrix w and
// returns the result. h is not modified.
func (k *Kernel) Factorize(ctx context.Context, h, w mat.Matrix) (*mat.Dense, error) {
	n, c := h.Dims()
	wr, wc := w.Dims()
	if n == 0 || c == 0 {
		return nil, ErrEmpty
	}
	if wr != wc || wr != n {
		return nil, fmt.Errorf("%w: H is %dx%d, W is %dx%d", ErrShape, n, c, wr, wc)
	}
	if mat.Min(h) < 0 {
		return nil, ErrNegative
	}

	cur := mat.DenseCopyOf(h)
	next := mat.NewDense(n, c, nil)
	var wh, hht, hhth mat.Dense

	for iter := 0; iter < k.opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		wh.Mul(w, cur)
		hht.Mul(cur, cur.T())
		hhth.Mul(&hht, cur)

		beta := k.opts.Beta
		next.Apply(func(i, j int, v float64) float64 {
			den := hhth.At(i, j)
			if den == 0 {
				// An all-zero row stays zero.
				return v * (1 - beta)
			}
			return v * (1 - beta + beta*(wh.At(i, j)/den))
		}, cur)

		delta := frobeniusSquared(next, cur)
		cur, next = next, cur

		if delta < k.opts.Epsilon {
			break
		}
	}

	return cur, nil
}

// frobeniusSquared returns ||a - b||_F².
func frobeniusSquared(a, b *mat.Dense) float64 {
	r, c := a.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d := a.At(i, j) - b.At(i, j)
			sum += d * d
		}
	}
	return sum
}

func degree(a *mat.Dense) *mat.Dense {
	n, _ := a.Dims()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, mat.Sum(a.RowView(i)))
	}
	return d
}
