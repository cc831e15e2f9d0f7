package clusteval

import (
	"fmt"
	"io"

	"github.com/hupe1980/clusteval/codec"
	"github.com/hupe1980/clusteval/evaluate"
)

// Report holds the scores of one evaluation run.
type Report struct {
	K         int `json:"k"`
	Points    int `json:"points"`
	Dimension int `json:"dimension"`

	NMF    evaluate.Score `json:"nmf"`
	KMeans evaluate.Score `json:"kmeans"`

	KMeansIterations int  `json:"kmeans_iterations"`
	KMeansConverged  bool `json:"kmeans_converged"`
}

// WriteText writes the two score lines:
//
//	nmf: 0.1234
//	kmeans: N/A
func (r *Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "nmf: %s\nkmeans: %s\n", r.NMF, r.KMeans)
	return err
}

// Encode serializes the report with c, or codec.Default if c is nil.
func (r *Report) Encode(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(r)
}
