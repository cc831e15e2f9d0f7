package dataset

import (
	"bytes"
	"context"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/clusteval/blobstore"
	"github.com/hupe1980/clusteval/testutil"
)

func TestParse(t *testing.T) {
	d, err := Parse(strings.NewReader("0,0\n0, 1\r\n\n  10,0  \n10,1e0\n"))
	require.NoError(t, err)

	assert.Equal(t, 4, d.Len())
	assert.Equal(t, 2, d.Dim())
	assert.Equal(t, [][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}}, d.Points())
	assert.Equal(t, []float64{10, 0}, d.Row(2))
}

func TestParse_Malformed(t *testing.T) {
	for name, input := range map[string]string{
		"empty":       "",
		"only blanks": "\n \n\t\n",
		"ragged":      "1,2\n3\n",
		"not numeric": "1,2\n3,abc\n",
		"empty field": "1,,2\n",
		"not finite":  "1,NaN\n",
		"infinite":    "Inf,1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}

	_, err := Parse(strings.NewReader("1,2\n3,x\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestNew(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	d, err := New(rows)
	require.NoError(t, err)

	rows[0][0] = 99
	assert.Equal(t, 1.0, d.Row(0)[0], "New must copy its input")

	m := d.Matrix()
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), m))

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrMalformedInput)
	_, err = New([][]float64{{}})
	assert.ErrorIs(t, err, ErrMalformedInput)
	_, err = New([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestFormatRow(t *testing.T) {
	assert.Equal(t, "0.0000,1.5000,-2.1235", FormatRow([]float64{0, 1.5, -2.123456}))
	assert.Equal(t, "10.0000", FormatRow([]float64{10}))
	assert.Equal(t, "", FormatRow(nil))
}

func TestWriteMatrix(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, mat.NewDense(2, 2, []float64{1, 0.5, 0.25, 0})))
	assert.Equal(t, "1.0000,0.5000\n0.2500,0.0000\n", buf.String())
}

func TestFormatRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(11)
	rows := make([][]float64, 50)
	for i := range rows {
		rows[i] = []float64{rng.Float64()*200 - 100, rng.Float64(), -rng.Float64() * 1e3}
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, rows))

	back, err := Parse(&buf)
	require.NoError(t, err)
	require.Equal(t, len(rows), back.Len())

	for i, r := range rows {
		for j, v := range r {
			assert.LessOrEqual(t, math.Abs(v-back.Row(i)[j]), 1e-4)
		}
	}
}

func TestCompression(t *testing.T) {
	rows := [][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}}

	for _, name := range []string{"points.txt", "points.txt.gz", "points.txt.zst", "points.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			data, err := Encode(name, rows)
			require.NoError(t, err)

			rc, err := Decompress(name, bytes.NewReader(data))
			require.NoError(t, err)
			defer rc.Close()

			d, err := Parse(rc)
			require.NoError(t, err)
			assert.Equal(t, rows, d.Points())
		})
	}

	assert.Equal(t, CompressionGzip, DetectCompression("a/b.GZ"))
	assert.Equal(t, CompressionZstd, DetectCompression("x.zstd"))
	assert.Equal(t, CompressionLZ4, DetectCompression("x.lz4"))
	assert.Equal(t, CompressionNone, DetectCompression("x.csv"))
	assert.Equal(t, "zstd", CompressionZstd.String())
}

func TestDecompress_Corrupt(t *testing.T) {
	_, err := Decompress("x.gz", strings.NewReader("not gzip"))
	assert.ErrorIs(t, err, ErrMalformedInput)

	rc, err := Decompress("x.zst", strings.NewReader("not zstd"))
	require.NoError(t, err)
	defer rc.Close()
	_, err = io.ReadAll(rc)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	data, err := Encode("sets/points.txt.gz", [][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "sets/points.txt.gz", data))

	d, err := Load(ctx, store, "sets/points.txt.gz")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []float64{5, 6}, d.Row(2))

	_, err = Load(ctx, store, "missing.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "bad.txt", []byte("1,2\n3\n")))
	_, err = Load(ctx, store, "bad.txt")
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.ErrorContains(t, err, "bad.txt")
}

func TestLoad_LocalStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "p.txt", []byte(testutil.FormatPoints([][]float64{{1.5, 2}, {3, 4}}))))

	d, err := Load(ctx, store, "p.txt")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1.5, 2}, {3, 4}}, d.Points())
}
