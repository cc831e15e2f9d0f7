package clusteval

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Stage identifies a step of the evaluation pipeline.
type Stage int

const (
	// StageFactorize covers the SymNMF factorization and labeling.
	StageFactorize Stage = iota
	// StageKMeans covers K-means training and nearest-centroid labeling.
	StageKMeans
	// StageScore covers one silhouette evaluation.
	StageScore
	numStages
)

func (s Stage) String() string {
	switch s {
	case StageFactorize:
		return "factorize"
	case StageKMeans:
		return "kmeans"
	case StageScore:
		return "score"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// MetricsCollector receives per-stage timings.
// Implement it to forward metrics to a monitoring system.
type MetricsCollector interface {
	// RecordStage is called after each stage. err is nil on success.
	RecordStage(stage Stage, duration time.Duration, err error)

	// RecordKMeans is called after each K-means run.
	RecordKMeans(iterations int, converged bool)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordStage(Stage, time.Duration, error) {}
func (NoopMetricsCollector) RecordKMeans(int, bool)                  {}

// StageStats is a snapshot of the counters of one stage.
type StageStats struct {
	Count    int64
	Errors   int64
	Total    time.Duration
	AvgNanos int64
}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	counts     [numStages]atomic.Int64
	errors     [numStages]atomic.Int64
	totalNanos [numStages]atomic.Int64

	KMeansRuns       atomic.Int64
	KMeansConverged  atomic.Int64
	KMeansIterations atomic.Int64
}

// RecordStage implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStage(stage Stage, duration time.Duration, err error) {
	if stage < 0 || stage >= numStages {
		return
	}
	b.counts[stage].Add(1)
	b.totalNanos[stage].Add(duration.Nanoseconds())
	if err != nil {
		b.errors[stage].Add(1)
	}
}

// RecordKMeans implements MetricsCollector.
func (b *BasicMetricsCollector) RecordKMeans(iterations int, converged bool) {
	b.KMeansRuns.Add(1)
	b.KMeansIterations.Add(int64(iterations))
	if converged {
		b.KMeansConverged.Add(1)
	}
}

// Stats returns the counters of stage.
func (b *BasicMetricsCollector) Stats(stage Stage) StageStats {
	if stage < 0 || stage >= numStages {
		return StageStats{}
	}
	s := StageStats{
		Count:  b.counts[stage].Load(),
		Errors: b.errors[stage].Load(),
		Total:  time.Duration(b.totalNanos[stage].Load()),
	}
	if s.Count > 0 {
		s.AvgNanos = s.Total.Nanoseconds() / s.Count
	}
	return s
}
