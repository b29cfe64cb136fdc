package format

import (
	"strings"
	"testing"

	"dupscope/internal/analyze"
)

func sampleResult() *analyze.Result {
	return &analyze.Result{
		ProjectKey:     "DEMO",
		SuiteID:        7,
		TotalTestCases: 12,
		ClustersFound:  1,
		Clusters: []analyze.Cluster{{
			TestCases:         []string{"DEMO-T1", "DEMO-T2"},
			AverageSimilarity: 92.5,
			Mix:               analyze.AutomationMix{Manual: 1, Automated: 1},
			RecommendedBase:   "DEMO-T1",
			SelectionReason:   "automated",
			Pattern:           analyze.PatternUserType,
			MergingStrategy:   "parameterize by role",
		}},
		SimilarityMatrix: []analyze.SimilarityPair{{
			CaseA: "DEMO-T1", CaseB: "DEMO-T2", Percentage: 92.5,
			SharedSteps: 5, TotalStepsA: 5, TotalStepsB: 6,
			Pattern: analyze.PatternUserType,
		}},
		PotentialSavings: analyze.Savings{DuplicateTestCases: 1, EstimatedTimeReduction: "minimal: 1 redundant case(s), under a tenth of the suite"},
		AnalysisMode:     "basic",
	}
}

func TestRenderResult(t *testing.T) {
	out := RenderResult(sampleResult(), ASCII)
	for _, want := range []string{
		"Duplicate analysis for DEMO (suite 7)",
		"12 cases, 1 clusters, mode basic",
		"DEMO-T1, DEMO-T2",
		"92.5",
		"user_type",
		"Potential savings: 1 duplicate case(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResult_NoClusters(t *testing.T) {
	res := &analyze.Result{TotalTestCases: 3, AnalysisMode: "basic",
		PotentialSavings: analyze.Savings{EstimatedTimeReduction: "none"}}
	out := RenderResult(res, ASCII)
	if !strings.Contains(out, "No duplicate clusters") {
		t.Errorf("missing empty-state line:\n%s", out)
	}
}

func TestRenderResult_IncludesInsights(t *testing.T) {
	res := sampleResult()
	res.SemanticInsights = "the cases differ only in actor"
	out := RenderResult(res, ASCII)
	if !strings.Contains(out, "Semantic insights:") || !strings.Contains(out, "differ only in actor") {
		t.Errorf("insights not rendered:\n%s", out)
	}
}

func TestClustersTable_Markdown(t *testing.T) {
	out := ClustersTable(sampleResult().Clusters, Markdown)
	if !strings.Contains(out, "|") {
		t.Errorf("markdown table should use pipes:\n%s", out)
	}
	if !strings.Contains(out, "DEMO-T1") {
		t.Errorf("missing cluster members:\n%s", out)
	}
}

func TestMatrixTable(t *testing.T) {
	out := MatrixTable(sampleResult().SimilarityMatrix, ASCII)
	for _, want := range []string{"Case A", "DEMO-T2", "92.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("matrix missing %q:\n%s", want, out)
		}
	}
}
