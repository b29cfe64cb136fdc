package analyze

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pairMap(entries ...*SimilarityPair) map[[2]string]*SimilarityPair {
	m := map[[2]string]*SimilarityPair{}
	for _, p := range entries {
		m[[2]string{p.CaseA, p.CaseB}] = p
	}
	return m
}

func TestBuildCluster(t *testing.T) {
	comp := component{
		members: []*TestCase{
			{Key: "T1", Automation: AutomationAutomated, Steps: make([]Step, 4)},
			{Key: "T2", Automation: AutomationManual, Steps: make([]Step, 4)},
			{Key: "T3", Automation: AutomationMixed, Steps: make([]Step, 4)},
		},
		avg: 84.449,
	}
	pairs := pairMap(
		&SimilarityPair{CaseA: "T1", CaseB: "T2", Pattern: PatternUserType, SharedStepsSummary: []string{"open login page", "submit credentials"}},
		&SimilarityPair{CaseA: "T1", CaseB: "T3", Pattern: PatternUserType, SharedStepsSummary: []string{"open login page"}},
		&SimilarityPair{CaseA: "T2", CaseB: "T3", Pattern: PatternOther, SharedStepsSummary: []string{"verify dashboard"}},
	)
	pct := pctTable(map[[2]string]float64{
		{"T1", "T2"}: 85, {"T1", "T3"}: 86, {"T2", "T3"}: 82,
	})
	opts := DefaultOptions()
	opts.UseMedoidSelection = false

	got := buildCluster(comp, pairs, pct, &opts)

	if diff := cmp.Diff([]string{"T1", "T2", "T3"}, got.TestCases); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
	if got.AverageSimilarity != 84.4 {
		t.Errorf("average: got %v, want 84.4", got.AverageSimilarity)
	}
	if want := (AutomationMix{Automated: 1, Manual: 1, Mixed: 1}); got.Mix != want {
		t.Errorf("mix: got %+v, want %+v", got.Mix, want)
	}
	if got.Pattern != PatternUserType {
		t.Errorf("pattern: got %s, want %s", got.Pattern, PatternUserType)
	}
	if got.RecommendedBase != "T1" || got.SelectionReason != "automated" {
		t.Errorf("base: got (%s, %s), want (T1, automated)", got.RecommendedBase, got.SelectionReason)
	}
	// "open login page" appears in two pairs and sorts first.
	if len(got.SharedLogicSummary) == 0 || got.SharedLogicSummary[0] != "open login page" {
		t.Errorf("shared logic: got %v", got.SharedLogicSummary)
	}
	if !strings.Contains(got.MergingStrategy, "user role") {
		t.Errorf("strategy does not mention the user role: %q", got.MergingStrategy)
	}
}

func TestDominantPattern_TieBreaksByRuleOrder(t *testing.T) {
	// One user_type pair and one theme pair: user_type outranks theme.
	pairs := pairMap(
		&SimilarityPair{CaseA: "A", CaseB: "B", Pattern: PatternTheme},
		&SimilarityPair{CaseA: "B", CaseB: "C", Pattern: PatternUserType},
	)
	if got := dominantPattern([]string{"A", "B", "C"}, pairs); got != PatternUserType {
		t.Errorf("got %s, want %s", got, PatternUserType)
	}
}

func TestSharedLogic_CappedAndOrdered(t *testing.T) {
	pairs := pairMap(
		&SimilarityPair{CaseA: "A", CaseB: "B", SharedStepsSummary: []string{"s1", "s2", "s3"}},
		&SimilarityPair{CaseA: "B", CaseB: "C", SharedStepsSummary: []string{"s2", "s4"}},
	)
	got := sharedLogic([]string{"A", "B", "C"}, pairs, 2)
	want := []string{"s2", "s1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("shared logic (-want +got):\n%s", diff)
	}
}

func TestMergingStrategy_AutomationAware(t *testing.T) {
	auto := mergingStrategy(PatternUserType, AutomationMix{Automated: 1, Manual: 2})
	manual := mergingStrategy(PatternUserType, AutomationMix{Manual: 3})
	if auto == manual {
		t.Error("automated and manual mixes should produce different strategies")
	}
	if !strings.Contains(auto, "automated") {
		t.Errorf("strategy for an automated mix should reference automation: %q", auto)
	}
}

func TestBuildSavings(t *testing.T) {
	clusters := []Cluster{
		{TestCases: []string{"A", "B", "C"}},
		{TestCases: []string{"D", "E"}},
	}
	got := buildSavings(clusters, 20)
	if got.DuplicateTestCases != 3 {
		t.Errorf("duplicates: got %d, want 3", got.DuplicateTestCases)
	}
	if !strings.HasPrefix(got.EstimatedTimeReduction, "moderate") {
		t.Errorf("label: got %q, want moderate bucket", got.EstimatedTimeReduction)
	}
}

func TestTimeReductionLabel(t *testing.T) {
	tests := []struct {
		dups, total int
		wantPrefix  string
	}{
		{0, 50, "none"},
		{2, 50, "minimal"},
		{10, 50, "moderate"},
		{15, 50, "substantial"},
		{30, 50, "major"},
	}
	for _, tt := range tests {
		got := timeReductionLabel(tt.dups, tt.total)
		if !strings.HasPrefix(got, tt.wantPrefix) {
			t.Errorf("label(%d, %d): got %q, want prefix %q", tt.dups, tt.total, got, tt.wantPrefix)
		}
	}
}
