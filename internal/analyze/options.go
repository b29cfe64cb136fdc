package analyze

import (
	"fmt"
	"time"
)

// Mode selects the scoring strategy for case similarity.
type Mode string

const (
	// ModeBasic aligns steps directly between two cases.
	ModeBasic Mode = "basic"
	// ModeSemantic compares step-cluster fingerprints built in phase 1.
	ModeSemantic Mode = "semantic"
	// ModeHybrid averages the basic and semantic scores.
	ModeHybrid Mode = "hybrid"
)

// Linkage selects the clustering policy at both the step and case level.
type Linkage int

const (
	// LinkageSingle connects transitively: A~B and B~C merge even when A and C
	// fall below the threshold. Trades precision for recall.
	LinkageSingle Linkage = iota
	// LinkageComplete admits a member only when it clears the threshold
	// against every existing member of the cluster.
	LinkageComplete
)

// Thresholds are expressed as percentages and accepted within this range.
const (
	MinThreshold = 50.0
	MaxThreshold = 100.0
)

// Weights controls the step-similarity blend between action text and
// expected-result text. Heuristic defaults; tune per suite if needed.
type Weights struct {
	Action   float64
	Expected float64
}

// Options carries every knob the engine honors. The engine itself holds no
// ambient state; all thresholds arrive here explicitly.
type Options struct {
	// ProjectKey and SuiteID are echoed into the result for the caller.
	ProjectKey string
	SuiteID    int

	// SimilarityThreshold is the case-level clustering cutoff in [50,100].
	SimilarityThreshold float64
	// StepClusteringThreshold is the phase-1 step cutoff in [50,100].
	StepClusteringThreshold float64

	Mode                    Mode
	Linkage                 Linkage
	UseStepClustering       bool
	UseMedoidSelection      bool
	IncludeSemanticPatterns bool

	// MaxCases bounds the quadratic pairwise comparison.
	MaxCases int

	// StepWeights blends action vs expected-result token overlap.
	StepWeights Weights
	// MatchFloor is the per-step minimum for a basic-mode step pairing.
	MatchFloor float64
	// ReportingFloor filters the emitted matrix; pairs below it still feed
	// clustering.
	ReportingFloor float64
	// SharedSummaryLimit caps the shared-logic summary per cluster.
	SharedSummaryLimit int

	// Augmenter, when set in semantic or hybrid mode, contributes the
	// natural-language insight layer. Its absence or failure never aborts
	// a run.
	Augmenter      Augmenter
	AugmentTimeout time.Duration
}

// DefaultOptions returns the tuned defaults. Thresholds follow common
// near-duplicate practice: 80 for case clustering, a stricter 85 for the
// finer-grained step clustering.
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold:     80,
		StepClusteringThreshold: 85,
		Mode:                    ModeBasic,
		Linkage:                 LinkageSingle,
		UseStepClustering:       true,
		IncludeSemanticPatterns: true,
		MaxCases:                250,
		StepWeights:             Weights{Action: 0.6, Expected: 0.4},
		MatchFloor:              0.6,
		ReportingFloor:          30,
		SharedSummaryLimit:      5,
		AugmentTimeout:          30 * time.Second,
	}
}

// validate rejects out-of-range thresholds and unknown modes at entry.
func (o *Options) validate() error {
	if o.SimilarityThreshold < MinThreshold || o.SimilarityThreshold > MaxThreshold {
		return &ThresholdError{Name: "similarityThreshold", Value: o.SimilarityThreshold}
	}
	if o.StepClusteringThreshold < MinThreshold || o.StepClusteringThreshold > MaxThreshold {
		return &ThresholdError{Name: "stepClusteringThreshold", Value: o.StepClusteringThreshold}
	}
	switch o.Mode {
	case ModeBasic, ModeSemantic, ModeHybrid:
	case "":
		o.Mode = ModeBasic
	default:
		return fmt.Errorf("analyze: unknown analysis mode %q", o.Mode)
	}
	if o.MaxCases <= 0 {
		o.MaxCases = DefaultOptions().MaxCases
	}
	if o.StepWeights.Action <= 0 && o.StepWeights.Expected <= 0 {
		o.StepWeights = DefaultOptions().StepWeights
	}
	if o.MatchFloor <= 0 {
		o.MatchFloor = DefaultOptions().MatchFloor
	}
	if o.SharedSummaryLimit <= 0 {
		o.SharedSummaryLimit = DefaultOptions().SharedSummaryLimit
	}
	return nil
}

// semanticScoring reports whether fingerprint-based scoring is in effect.
func (o *Options) semanticScoring() bool {
	return o.Mode != ModeBasic && o.UseStepClustering
}
