package evaluate

import (
	"bytes"
	"fmt"
	"strconv"
)

// Score is a quality score that may be undefined.
type Score struct {
	Value   float64
	Defined bool
}

// NewScore returns a defined score.
func NewScore(v float64) Score { return Score{Value: v, Defined: true} }

// Undefined returns the undefined score.
func Undefined() Score { return Score{} }

// String renders the score with four decimals, or "N/A" when undefined.
func (s Score) String() string {
	if !s.Defined {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", s.Value)
}

// MarshalJSON encodes a defined score as a number and an undefined one as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Defined {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, s.Value, 'f', -1, 64), nil
}

// UnmarshalJSON decodes the output of MarshalJSON.
func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Undefined()
		return nil
	}
	v, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return fmt.Errorf("invalid score %q: %w", data, err)
	}
	*s = NewScore(v)
	return nil
}
