package symnmf

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/clusteval/testutil"
)

func pointsMatrix(points [][]float64) *mat.Dense {
	m := mat.NewDense(len(points), len(points[0]), nil)
	for i, p := range points {
		m.SetRow(i, p)
	}
	return m
}

func TestSimilarity(t *testing.T) {
	ctx := context.Background()
	x := pointsMatrix([][]float64{{0, 0}, {1, 0}, {0, 2}})

	a, err := New().Similarity(ctx, x)
	require.NoError(t, err)

	r, c := a.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)

	for i := 0; i < 3; i++ {
		assert.Zero(t, a.At(i, i))
		for j := 0; j < 3; j++ {
			assert.Equal(t, a.At(i, j), a.At(j, i))
		}
	}
	assert.InDelta(t, math.Exp(-0.5), a.At(0, 1), 1e-12)
	assert.InDelta(t, math.Exp(-2), a.At(0, 2), 1e-12)
	assert.InDelta(t, math.Exp(-2.5), a.At(1, 2), 1e-12)
}

func TestDegreeDiagonal(t *testing.T) {
	ctx := context.Background()
	x := pointsMatrix([][]float64{{0, 0}, {1, 0}, {0, 2}})

	k := New()
	a, err := k.Similarity(ctx, x)
	require.NoError(t, err)
	d, err := k.DegreeDiagonal(ctx, x)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.InDelta(t, mat.Sum(a.RowView(i)), d.At(i, i), 1e-12)
		for j := 0; j < 3; j++ {
			if i != j {
				assert.Zero(t, d.At(i, j))
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	ctx := context.Background()
	x := pointsMatrix([][]float64{{0, 0}, {1, 0}, {0, 2}, {3, 3}})

	k := New()
	a, err := k.Similarity(ctx, x)
	require.NoError(t, err)
	w, err := k.Normalize(ctx, x)
	require.NoError(t, err)

	deg := make([]float64, 4)
	for i := range deg {
		deg[i] = mat.Sum(a.RowView(i))
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := a.At(i, j) / math.Sqrt(deg[i]*deg[j])
			assert.InDelta(t, expected, w.At(i, j), 1e-12)
			assert.InDelta(t, w.At(i, j), w.At(j, i), 1e-12)
		}
	}
}

func TestNormalize_ZeroDegree(t *testing.T) {
	ctx := context.Background()
	_, err := New().Normalize(ctx, pointsMatrix([][]float64{{1, 2}}))
	assert.ErrorIs(t, err, ErrZeroDegree)

	// Far enough apart for exp to underflow to zero.
	_, err = New().Normalize(ctx, pointsMatrix([][]float64{{0}, {1e6}}))
	assert.ErrorIs(t, err, ErrZeroDegree)
}

func TestFactorize(t *testing.T) {
	ctx := context.Background()
	points, _ := testutil.NewRNG(4711).Blobs(30, 2, 2, 0.5)
	x := pointsMatrix(points)

	k := New()
	w, err := k.Normalize(ctx, x)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1234))
	h0 := mat.NewDense(30, 2, nil)
	upper := 2 * math.Sqrt(mat.Sum(w)/(30*30)/2)
	for i := 0; i < 30; i++ {
		for j := 0; j < 2; j++ {
			h0.Set(i, j, rng.Float64()*upper)
		}
	}
	before := mat.DenseCopyOf(h0)

	h, err := k.Factorize(ctx, h0, w)
	require.NoError(t, err)
	assert.True(t, mat.Equal(before, h0), "input factor must not be modified")

	r, c := h.Dims()
	require.Equal(t, 30, r)
	require.Equal(t, 2, c)
	assert.GreaterOrEqual(t, mat.Min(h), 0.0)

	// The factorization must improve the fit of H Hᵀ to W.
	assert.Less(t, objective(w, h), objective(w, h0))
}

// objective returns ||W - H Hᵀ||_F².
func objective(w, h *mat.Dense) float64 {
	var hht mat.Dense
	hht.Mul(h, h.T())
	return frobeniusSquared(w, &hht)
}

func TestFactorize_Errors(t *testing.T) {
	ctx := context.Background()
	k := New()

	_, err := k.Factorize(ctx, mat.NewDense(3, 2, nil), mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, ErrShape)

	_, err = k.Factorize(ctx, mat.NewDense(2, 2, []float64{1, -1, 1, 1}), mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, ErrNegative)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = k.Factorize(cctx, mat.NewDense(2, 1, []float64{1, 1}), mat.NewDense(2, 2, []float64{0, 1, 1, 0}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFactorize_Options(t *testing.T) {
	ctx := context.Background()
	w := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
	h0 := mat.NewDense(2, 1, []float64{0.2, 0.4})

	// Zero rounds return the initial factor unchanged.
	h, err := New(func(o *Options) { o.MaxIterations = 0 }).Factorize(ctx, h0, w)
	require.NoError(t, err)
	assert.True(t, mat.Equal(h0, h))

	// One undamped round (β = 1) applies the plain multiplicative rule.
	h, err = New(func(o *Options) {
		o.MaxIterations = 1
		o.Beta = 1
	}).Factorize(ctx, h0, w)
	require.NoError(t, err)

	// W H = (0.4, 0.2) and H Hᵀ H = H ||h||².
	norm := 0.2*0.2 + 0.4*0.4
	assert.InDelta(t, 0.2*0.4/(0.2*norm), h.At(0, 0), 1e-12)
	assert.InDelta(t, 0.4*0.2/(0.4*norm), h.At(1, 0), 1e-12)
}

func TestSimilarity_Empty(t *testing.T) {
	_, err := New().Similarity(context.Background(), &mat.Dense{})
	assert.ErrorIs(t, err, ErrEmpty)
}
