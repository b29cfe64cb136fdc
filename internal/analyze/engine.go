// Package analyze implements the duplicate test-case detection engine: given
// a suite of structured test cases it scores pairwise procedural similarity,
// clusters near-duplicates in two phases (step-level, then case-level),
// selects a representative per cluster, classifies what distinguishes the
// members, and assembles a structured report.
//
// The engine is a single synchronous pass over an in-memory list. It performs
// no I/O, holds no state across invocations, and takes every threshold as an
// explicit parameter. The only external seam is the optional Augmenter hook.
package analyze

import (
	"context"
	"strings"

	"dupscope/internal/logging"
)

// Run executes the full analysis pipeline over the given cases. It returns
// ErrInsufficientInput for fewer than two cases, a ThresholdError for
// out-of-range thresholds, and a TooManyCasesError above the size ceiling.
// Cases without any usable step are counted in TotalTestCases but excluded
// from comparison rather than failing the batch.
func Run(ctx context.Context, cases []TestCase, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(cases) < 2 {
		return nil, ErrInsufficientInput
	}
	if len(cases) > opts.MaxCases {
		return nil, &TooManyCasesError{Count: len(cases), Limit: opts.MaxCases}
	}

	logger := logging.New("analyze")

	eligible := make([]*TestCase, 0, len(cases))
	for i := range cases {
		if hasUsableSteps(&cases[i]) {
			eligible = append(eligible, &cases[i])
		}
	}
	if skipped := len(cases) - len(eligible); skipped > 0 {
		logger.Warn("excluding cases without usable steps", "skipped", skipped)
	}

	res := &Result{
		ProjectKey:     opts.ProjectKey,
		SuiteID:        opts.SuiteID,
		TotalTestCases: len(cases),
		AnalysisMode:   string(opts.Mode),
		Clusters:       []Cluster{},
	}

	sc := &scorer{opts: &opts}
	if opts.semanticScoring() {
		phase1 := clusterSteps(eligible, opts.StepClusteringThreshold/100, opts.StepWeights, opts.Linkage)
		sc.fingerprint = phase1.fingerprints
		sc.clusterText = make(map[int]string, len(phase1.clusters))
		for _, c := range phase1.clusters {
			sc.clusterText[c.ID] = c.Representative
		}
		if opts.IncludeSemanticPatterns {
			res.StepClusters = phase1.clusters
		}
		logger.Info("step clustering complete", "steps_clusters", len(phase1.clusters))
	}

	// Full pairwise pass. Every pair feeds clustering; only pairs at or above
	// the reporting floor make it into the emitted matrix.
	pairs := make(map[[2]string]*SimilarityPair)
	for i := 0; i < len(eligible); i++ {
		for j := i + 1; j < len(eligible); j++ {
			p := sc.caseSimilarity(eligible[i], eligible[j])
			pairs[[2]string{p.CaseA, p.CaseB}] = &p
			if p.Percentage >= opts.ReportingFloor {
				res.SimilarityMatrix = append(res.SimilarityMatrix, p)
			}
		}
	}

	pct := func(a, b string) float64 {
		if p := lookupPair(pairs, a, b); p != nil {
			return p.Percentage
		}
		return 0
	}

	for _, comp := range buildClusters(eligible, pct, opts.SimilarityThreshold, opts.Linkage) {
		res.Clusters = append(res.Clusters, buildCluster(comp, pairs, pct, &opts))
	}
	res.ClustersFound = len(res.Clusters)
	res.PotentialSavings = buildSavings(res.Clusters, len(cases))

	if opts.Mode != ModeBasic && opts.Augmenter != nil {
		insights, err := augment(ctx, res, &opts)
		if err != nil {
			// Deterministic results stand; the mode records the fallback.
			logger.Warn("semantic augmentation failed, continuing without it", "err", err)
			res.AnalysisMode = string(opts.Mode) + "-degraded"
		} else {
			res.SemanticInsights = insights
		}
	}

	logger.Info("analysis complete",
		"cases", len(cases), "compared", len(eligible),
		"clusters", res.ClustersFound, "mode", res.AnalysisMode)
	return res, nil
}

// hasUsableSteps reports whether a case carries at least one step with text.
// Malformed records (nil or all-blank steps) are excluded, never fatal.
func hasUsableSteps(tc *TestCase) bool {
	for _, s := range tc.Steps {
		if strings.TrimSpace(s.Action) != "" || strings.TrimSpace(s.ExpectedResult) != "" {
			return true
		}
	}
	return false
}
