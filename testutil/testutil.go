package testutil

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates points with coordinates in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)

	for i := range num {
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}

	return points
}

// Blobs generates num points around cluster centers spaced 10 apart on the
// first axis, adding Gaussian noise scaled by spread.
// Point i belongs to cluster i % clusters; the true labels are returned too.
func (r *RNG) Blobs(num, dim, clusters int, spread float64) ([][]float64, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	labels := make([]int, num)

	for i := range num {
		c := i % clusters
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range p {
			center := 0.0
			if j == 0 {
				center = float64(c) * 10
			}
			p[j] = center + r.rand.NormFloat64()*spread
		}
		points[i] = p
		labels[i] = c
	}

	return points, labels
}

// Constant returns num copies of the same point.
func Constant(num int, point []float64) [][]float64 {
	points := make([][]float64, num)
	for i := range points {
		points[i] = append([]float64(nil), point...)
	}
	return points
}

// FormatPoints renders points in the dataset text format: one point per line,
// coordinates separated by commas.
func FormatPoints(points [][]float64) string {
	var sb strings.Builder
	for _, p := range points {
		for j, v := range p {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
