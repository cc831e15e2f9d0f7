package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineSize = 16 << 20

// Parse reads points from r. Blank lines are skipped.
func Parse(r io.Reader) (*Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		rows   [][]float64
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		row, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, lineNo, err)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d: expected %d values, got %d", ErrMalformedInput, lineNo, len(rows[0]), len(row))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, lineNo+1, err)
	}

	return New(rows)
}

func parseLine(line string) ([]float64, error) {
	fields := strings.Split(line, ",")
	row := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %q is not a number", i+1, f)
		}
		row[i] = v
	}
	return row, nil
}
