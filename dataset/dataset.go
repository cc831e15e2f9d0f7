package dataset

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrMalformedInput is returned for empty, ragged or non-numeric input.
var ErrMalformedInput = errors.New("malformed input")

// Dataset is an immutable, rectangular set of points.
type Dataset struct {
	rows [][]float64
	dim  int
}

// New copies rows into a Dataset.
func New(rows [][]float64) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrMalformedInput)
	}

	dim := len(rows[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: point 0 has no coordinates", ErrMalformedInput)
	}

	data := make([]float64, len(rows)*dim)
	out := make([][]float64, len(rows))
	for i, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("%w: point %d has %d coordinates, expected %d", ErrMalformedInput, i, len(r), dim)
		}
		for j, v := range r {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: point %d coordinate %d is not finite", ErrMalformedInput, i, j)
			}
		}
		row := data[i*dim : (i+1)*dim : (i+1)*dim]
		copy(row, r)
		out[i] = row
	}

	return &Dataset{rows: out, dim: dim}, nil
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.rows) }

// Dim returns the number of coordinates per point.
func (d *Dataset) Dim() int { return d.dim }

// Row returns point i. The slice must not be modified.
func (d *Dataset) Row(i int) []float64 { return d.rows[i] }

// Points returns all points. The slices must not be modified.
func (d *Dataset) Points() [][]float64 { return d.rows }

// Matrix returns a copy of the points as an n×dim matrix.
func (d *Dataset) Matrix() *mat.Dense {
	m := mat.NewDense(len(d.rows), d.dim, nil)
	for i, r := range d.rows {
		m.SetRow(i, r)
	}
	return m
}
