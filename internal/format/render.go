package format

import (
	"fmt"
	"strings"

	"dupscope/internal/analyze"
)

// RenderResult renders the full analysis report: header, cluster table,
// matrix table, and the savings summary.
func RenderResult(res *analyze.Result, mode Mode) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Duplicate analysis")
	if res.ProjectKey != "" {
		fmt.Fprintf(&b, " for %s", res.ProjectKey)
	}
	if res.SuiteID != 0 {
		fmt.Fprintf(&b, " (suite %d)", res.SuiteID)
	}
	fmt.Fprintf(&b, ": %d cases, %d clusters, mode %s\n\n",
		res.TotalTestCases, res.ClustersFound, res.AnalysisMode)

	if res.ClustersFound == 0 {
		b.WriteString("No duplicate clusters at the configured threshold.\n")
	} else {
		b.WriteString(ClustersTable(res.Clusters, mode))
		b.WriteString("\n\n")
	}

	if len(res.SimilarityMatrix) > 0 {
		b.WriteString(MatrixTable(res.SimilarityMatrix, mode))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Potential savings: %d duplicate case(s); time reduction %s\n",
		res.PotentialSavings.DuplicateTestCases, res.PotentialSavings.EstimatedTimeReduction)

	if res.SemanticInsights != "" {
		fmt.Fprintf(&b, "\nSemantic insights:\n%s\n", res.SemanticInsights)
	}
	return b.String()
}

// ClustersTable renders one row per cluster.
func ClustersTable(clusters []analyze.Cluster, mode Mode) string {
	t := NewTable(mode)
	t.Header("#", "Cases", "Avg %", "Pattern", "Base", "Mix (M/A/X)", "Strategy")
	for i, c := range clusters {
		t.Row(
			i+1,
			strings.Join(c.TestCases, ", "),
			fmt.Sprintf("%.1f", c.AverageSimilarity),
			string(c.Pattern),
			c.RecommendedBase,
			fmt.Sprintf("%d/%d/%d", c.Mix.Manual, c.Mix.Automated, c.Mix.Mixed),
			c.MergingStrategy,
		)
	}
	t.Columns(
		ColumnConfig{Number: 1, Right: true},
		ColumnConfig{Number: 2, MaxWidth: 40},
		ColumnConfig{Number: 3, Right: true},
		ColumnConfig{Number: 7, MaxWidth: 50},
	)
	return t.String()
}

// MatrixTable renders the reported similarity pairs.
func MatrixTable(matrix []analyze.SimilarityPair, mode Mode) string {
	t := NewTable(mode)
	t.Header("Case A", "Case B", "%", "Shared", "Steps A", "Steps B", "Pattern")
	for _, p := range matrix {
		t.Row(p.CaseA, p.CaseB, fmt.Sprintf("%.1f", p.Percentage),
			p.SharedSteps, p.TotalStepsA, p.TotalStepsB, string(p.Pattern))
	}
	t.Columns(
		ColumnConfig{Number: 3, Right: true},
		ColumnConfig{Number: 4, Right: true},
		ColumnConfig{Number: 5, Right: true},
		ColumnConfig{Number: 6, Right: true},
	)
	return t.String()
}
