package dataset

import (
	"bufio"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// FormatRow renders values with four decimals, separated by commas.
func FormatRow(values []float64) string {
	return string(appendRow(nil, values))
}

// WriteRows writes one formatted line per row.
func WriteRows(w io.Writer, rows [][]float64) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, r := range rows {
		buf = appendRow(buf[:0], r)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteMatrix writes one formatted line per matrix row.
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	r, _ := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, m)
	}
	return WriteRows(w, rows)
}

func appendRow(dst []byte, values []float64) []byte {
	for i, v := range values {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendFloat(dst, v, 'f', 4, 64)
	}
	return dst
}
