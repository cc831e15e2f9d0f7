package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hupe1980/clusteval"
	"github.com/hupe1980/clusteval/dataset"
	"github.com/hupe1980/clusteval/factorize"
)

func (a *app) clusterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cluster <k> [max_iterations] <input>",
		Short: "Print the K-means centroids of a dataset",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			k, err := parseK(args[0])
			if err != nil {
				return err
			}
			maxIter := a.cfg.KMeans.ClusterMaxIterations
			input := args[1]
			if len(args) == 3 {
				if maxIter, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("%w: %q", clusteval.ErrInvalidIterationBound, args[1])
				}
				input = args[2]
			}

			data, err := a.load(ctx, input)
			if err != nil {
				return err
			}
			res, err := a.evaluator().Cluster(ctx, data, k, maxIter)
			if err != nil {
				return err
			}
			return a.emit(ctx, func(w io.Writer) error {
				return dataset.WriteRows(w, res.Centroids)
			})
		},
	}
}

func (a *app) evaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <k> <input>",
		Short: "Print the silhouette scores of SymNMF and K-means",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			k, err := parseK(args[0])
			if err != nil {
				return err
			}
			data, err := a.load(ctx, args[1])
			if err != nil {
				return err
			}
			report, err := a.evaluator().Run(ctx, data, k)
			if err != nil {
				return err
			}

			return a.emit(ctx, func(w io.Writer) error {
				if a.cfg.Output.Format != "json" {
					return report.WriteText(w)
				}
				b, err := report.Encode(a.codec)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(w, "%s\n", b)
				return err
			})
		},
	}
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <k> <goal> <input>",
		Short: "Print the symnmf, sym, ddg or norm matrix of a dataset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			k, err := parseK(args[0])
			if err != nil {
				return err
			}
			goal, err := factorize.ParseGoal(args[1])
			if err != nil {
				return fmt.Errorf("%w: %v", clusteval.ErrInvalidArguments, err)
			}
			data, err := a.load(ctx, args[2])
			if err != nil {
				return err
			}
			if data.Len() <= k {
				return fmt.Errorf("%w: k=%d, n=%d", clusteval.ErrInvalidClusterCount, k, data.Len())
			}

			m, err := a.evaluator().Matrix(ctx, data, goal, k)
			if err != nil {
				return err
			}
			return a.emit(ctx, func(w io.Writer) error {
				return dataset.WriteMatrix(w, m)
			})
		},
	}
}

func parseK(s string) (int, error) {
	k, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", clusteval.ErrInvalidClusterCount, s)
	}
	return k, nil
}
