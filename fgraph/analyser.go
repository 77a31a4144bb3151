package fgraph

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/mzfeat/feature"
)

// Stage names the graph-analysis pipeline state (spec §4.6):
// Idle -> CGDeg -> CGClust -> VGDeg -> VGDiam -> Done. A timeout or any
// other failure during a stage transitions directly to Done, leaving
// every feature not yet computed at its -1 sentinel.
type Stage int

const (
	StageIdle Stage = iota
	StageCGDeg
	StageCGClust
	StageVGDeg
	StageVGDiam
	StageDone
)

// DefaultTimeout is the per-metric wall-clock budget (spec §4.6: "2s
// default").
const DefaultTimeout = 2 * time.Second

// Analyser runs the four graph metrics in §4.6's fixed order, each under
// its own fresh per-metric deadline (spec §5: "cancellation is
// per-metric, not per-instance" — a CG timer expiring never shortens a
// later VG timer's own budget). Once any stage times out or fails, the
// pipeline stops attempting further stages and goes straight to Done, so
// the features of every later stage stay at their -1 sentinel.
type Analyser struct {
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// NewAnalyser returns an Analyser configured with DefaultTimeout and
// logrus.StandardLogger().
func NewAnalyser() *Analyser {
	return &Analyser{Timeout: DefaultTimeout, Logger: logrus.StandardLogger()}
}

// Result reports how the pipeline ended.
type Result struct {
	FinalStage Stage
	TimedOut   bool
}

// Run executes CG-degree, CG-clustering, VG-degree, VG-diameter in order
// over acc, an Accumulator already populated with variable/constraint
// features (the graph metrics are appended, never overwrite, anything
// else). Returns the stage the pipeline stopped at and whether it
// stopped early due to a timeout (the CLI maps this to exit code 8).
func (an *Analyser) Run(parent context.Context, vg, cg *Graph, acc *feature.Accumulator) Result {
	timeout := an.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := an.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	stage := StageCGDeg
	for stage != StageDone {
		ctx, cancel := context.WithTimeout(parent, timeout)
		ok := an.runStage(ctx, stage, vg, cg, acc, logger)
		timedOut := ctx.Err() != nil
		cancel()
		if !ok {
			return Result{FinalStage: StageDone, TimedOut: timedOut}
		}
		stage = nextStage(stage)
	}
	return Result{FinalStage: StageDone, TimedOut: false}
}

func nextStage(s Stage) Stage {
	switch s {
	case StageCGDeg:
		return StageCGClust
	case StageCGClust:
		return StageVGDeg
	case StageVGDeg:
		return StageVGDiam
	default:
		return StageDone
	}
}

func (an *Analyser) runStage(ctx context.Context, stage Stage, vg, cg *Graph, acc *feature.Accumulator, logger logrus.FieldLogger) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("stage", stage).WithField("panic", r).
				Error("graph analysis stage failed, leaving remaining features at sentinel")
			ok = false
		}
	}()

	switch stage {
	case StageCGDeg:
		degrees, computed := DegreeStats(ctx, cg)
		if !computed {
			logger.WithField("stage", "cg_degree").Warn("graph analysis timed out")
			return false
		}
		writeStats(acc, "gr_cg", "deg", degrees)
		return true
	case StageCGClust:
		coeffs, computed := ClusteringCoefficients(ctx, cg)
		if !computed {
			logger.WithField("stage", "cg_clustering").Warn("graph analysis timed out")
			return false
		}
		writeStats(acc, "gr_cg", "clust", coeffs)
		return true
	case StageVGDeg:
		degrees, computed := DegreeStats(ctx, vg)
		if !computed {
			logger.WithField("stage", "vg_degree").Warn("graph analysis timed out")
			return false
		}
		writeStats(acc, "gr_vg", "deg", degrees)
		return true
	case StageVGDiam:
		ecc, computed := Diameter(ctx, vg)
		if !computed {
			logger.WithField("stage", "vg_diameter").Warn("graph analysis timed out")
			return false
		}
		writeStats(acc, "gr_vg", "diam", ecc)
		return true
	default:
		return true
	}
}

// writeStats closes a per-vertex metric map into min/max/avg/cv/entropy
// features named "<prefix>_min_<suffix>" etc, matching the finaliser's
// moment algebra (spec §4.5/§4.6 share the same formulas).
func writeStats(acc *feature.Accumulator, prefix, suffix string, values map[int]float64) {
	minKey := prefix + "_min_" + suffix
	maxKey := prefix + "_max_" + suffix
	avgKey := prefix + "_avg_" + suffix
	cvKey := prefix + "_cv_" + suffix
	entKey := prefix + "_entropy_" + suffix
	histMetric := prefix + "_" + suffix

	var sum, sumSq, n float64
	seenMin := false
	for _, v := range values {
		// gr_* keys start at the -1 "could not compute" sentinel, not
		// +Inf, so the first sample must replace it outright; UpdateMin's
		// v < current comparison would otherwise never fire against -1.
		if !seenMin {
			acc.Set(minKey, v)
			seenMin = true
		} else {
			acc.UpdateMin(minKey, v)
		}
		acc.UpdateMax(maxKey, v)
		sum += v
		sumSq += v * v
		n++
		acc.Observe(histMetric, v)
	}
	acc.Set(avgKey, feature.Mean(sum, n))
	acc.Set(cvKey, feature.CV(sum, sumSq, n))
	acc.Set(entKey, acc.Entropy(histMetric))
}
