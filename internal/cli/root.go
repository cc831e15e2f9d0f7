package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/clusteval"
	"github.com/hupe1980/clusteval/codec"
	"github.com/hupe1980/clusteval/dataset"
	"github.com/hupe1980/clusteval/internal/config"
)

// errorMessage is the only failure output on stdout.
const errorMessage = "An Error Has Occurred"

type app struct {
	stdout io.Writer
	stderr io.Writer

	loader *config.Loader
	cfg    *config.Config
	logger *clusteval.Logger
	codec  codec.Codec

	metrics *clusteval.BasicMetricsCollector
	stores  map[string]storeFactory

	configFile string
	output     string
}

// Execute runs the command line with args and returns the exit status.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return newApp(stdout, stderr).execute(ctx, args)
}

func newApp(stdout, stderr io.Writer, loaderOpts ...func(*config.Loader)) *app {
	a := &app{
		stdout:  stdout,
		stderr:  stderr,
		loader:  config.NewLoader(loaderOpts...),
		logger:  clusteval.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		codec:   codec.Default,
		metrics: &clusteval.BasicMetricsCollector{},
	}
	a.stores = a.defaultStores()
	return a
}

func (a *app) execute(ctx context.Context, args []string) int {
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(a.stderr)
	cmd.SetErr(a.stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		a.logger.ErrorContext(ctx, "command failed", "error", err)
		fmt.Fprintln(a.stdout, errorMessage)
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clusteval",
		Short:         "Compare SymNMF and K-means clusterings with the silhouette score",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fmt.Errorf("%w: missing command", clusteval.ErrInvalidArguments)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			a.logMetrics(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default is ./.clusteval.yaml or $HOME/.clusteval.yaml)")
	pf.StringVarP(&a.output, "output", "o", "", "write the result to this location instead of stdout")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	pf.Int64("seed", clusteval.DefaultSeed, "seed of the factor initialization")
	pf.Int("workers", 1, "goroutines for assignment and scoring")
	pf.String("format", "text", "evaluate output format (text, json)")
	pf.String("codec", "go-json", "json codec (go-json, json)")

	v := a.loader.Viper()
	for key, flag := range map[string]string{
		"log.level":     "log-level",
		"log.format":    "log-format",
		"seed":          "seed",
		"workers":       "workers",
		"output.format": "format",
		"output.codec":  "codec",
	} {
		// Lookup cannot fail for the flags registered above.
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(a.clusterCmd(), a.evaluateCmd(), a.runCmd())
	return root
}

func (a *app) init() error {
	cfg, err := a.loader.Load(a.configFile)
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	c, err := codec.ByName(cfg.Output.Codec)
	if err != nil {
		return fmt.Errorf("%w: %v", clusteval.ErrInvalidArguments, err)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		a.logger = clusteval.NewLogger(slog.NewJSONHandler(a.stderr, handlerOpts))
	} else {
		a.logger = clusteval.NewLogger(slog.NewTextHandler(a.stderr, handlerOpts))
	}
	if cfg.ConfigFile != "" {
		a.logger.Debug("using config file", "path", cfg.ConfigFile)
	}

	a.cfg = cfg
	a.codec = c
	return nil
}

func (a *app) evaluator() *clusteval.Evaluator {
	return clusteval.New(
		clusteval.WithSeed(a.cfg.Seed),
		clusteval.WithWorkers(a.cfg.Workers),
		clusteval.WithMaxIterations(a.cfg.KMeans.MaxIterations),
		clusteval.WithEpsilon(a.cfg.KMeans.Epsilon),
		clusteval.WithLogger(a.logger),
		clusteval.WithMetricsCollector(a.metrics),
		clusteval.WithCodec(a.codec),
	)
}

func (a *app) load(ctx context.Context, uri string) (*dataset.Dataset, error) {
	store, name, err := a.resolve(ctx, uri)
	if err != nil {
		return nil, err
	}
	return dataset.Load(ctx, store, name)
}

// emit writes the rendered result to stdout or to --output.
func (a *app) emit(ctx context.Context, render func(w io.Writer) error) error {
	if a.output == "" {
		return render(a.stdout)
	}

	store, name, err := a.resolve(ctx, a.output)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w, err := dataset.Compress(name, &buf)
	if err != nil {
		return err
	}
	if err := render(w); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", a.output, err)
	}
	a.logger.InfoContext(ctx, "result written", "location", a.output, "bytes", buf.Len())
	return nil
}

func (a *app) logMetrics(ctx context.Context) {
	for _, stage := range []clusteval.Stage{clusteval.StageFactorize, clusteval.StageKMeans, clusteval.StageScore} {
		s := a.metrics.Stats(stage)
		if s.Count == 0 {
			continue
		}
		a.logger.DebugContext(ctx, "stage stats",
			"stage", stage.String(),
			"count", s.Count,
			"errors", s.Errors,
			"total", s.Total,
		)
	}
}
