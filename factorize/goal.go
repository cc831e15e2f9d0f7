package factorize

import (
	"fmt"
	"strings"
)

// Goal selects the matrix produced by Orchestrator.Run.
type Goal string

const (
	// GoalSymNMF produces the refined factor matrix H.
	GoalSymNMF Goal = "symnmf"
	// GoalSimilarity produces the similarity matrix A.
	GoalSimilarity Goal = "sym"
	// GoalDegreeDiagonal produces the degree matrix D.
	GoalDegreeDiagonal Goal = "ddg"
	// GoalNormalize produces the normalized similarity matrix W.
	GoalNormalize Goal = "norm"
)

// Goals lists the supported goals.
func Goals() []Goal {
	return []Goal{GoalSymNMF, GoalSimilarity, GoalDegreeDiagonal, GoalNormalize}
}

// ParseGoal parses a goal name. Matching is case-insensitive.
func ParseGoal(s string) (Goal, error) {
	g := Goal(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Goals() {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGoal, s)
}

func (g Goal) String() string { return string(g) }
