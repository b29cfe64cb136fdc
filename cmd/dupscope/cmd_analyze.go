package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dupscope/internal/analyze"
	"dupscope/internal/config"
	"dupscope/internal/format"
	"dupscope/internal/tcm"
)

var analyzeFlags struct {
	project     string
	suiteID     int
	inputPath   string
	outputPath  string
	mode        string
	threshold   float64
	stepThr     float64
	medoid      bool
	maxCases    int
	report      bool
	markdownRpt bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Detect duplicate test cases in a project or suite",
	Long: `Fetch test cases from the TCM instance (or read a local JSON dump) and
detect groups of near-duplicates by procedural similarity.

Usage:
  dupscope analyze --project MOB                 # whole project
  dupscope analyze --project MOB --suite 42      # one suite
  dupscope analyze --input cases.json            # local JSON dump, no TCM access

The TCM base URL comes from dupscope.yaml or DUPSCOPE_TCM_URL; the API token
is read from .tcm-api-key (first line).`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.project, "project", "", "Project key (default: configured project_key)")
	f.IntVar(&analyzeFlags.suiteID, "suite", 0, "Suite ID to analyze (0 = whole project)")
	f.StringVar(&analyzeFlags.inputPath, "input", "", "Path to a local JSON array of test cases (skips the TCM fetch)")
	f.StringVarP(&analyzeFlags.outputPath, "output", "o", "", "Output artifact path (default: dupscope-<project>.json)")
	f.StringVar(&analyzeFlags.mode, "mode", "", "Analysis mode: basic, semantic, hybrid (default: configured)")
	f.Float64Var(&analyzeFlags.threshold, "threshold", 0, "Similarity threshold in [50,100] (default: configured, 80)")
	f.Float64Var(&analyzeFlags.stepThr, "step-threshold", 0, "Step clustering threshold in [50,100] (default: configured, 85)")
	f.BoolVar(&analyzeFlags.medoid, "medoid", false, "Select cluster representatives by medoid")
	f.IntVar(&analyzeFlags.maxCases, "max-cases", 0, "Cap on cases analyzed (default: configured, 250)")
	f.BoolVar(&analyzeFlags.report, "report", false, "Print a human-readable table report to stdout")
	f.BoolVar(&analyzeFlags.markdownRpt, "markdown", false, "Write a Markdown report (.md) alongside the JSON artifact")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := cfg.EngineOptions()
	if analyzeFlags.project != "" {
		opts.ProjectKey = analyzeFlags.project
	}
	opts.SuiteID = analyzeFlags.suiteID
	if analyzeFlags.mode != "" {
		opts.Mode = analyze.Mode(analyzeFlags.mode)
	}
	if analyzeFlags.threshold != 0 {
		opts.SimilarityThreshold = analyzeFlags.threshold
	}
	if analyzeFlags.stepThr != 0 {
		opts.StepClusteringThreshold = analyzeFlags.stepThr
	}
	if analyzeFlags.medoid {
		opts.UseMedoidSelection = true
	}
	if analyzeFlags.maxCases > 0 {
		opts.MaxCases = analyzeFlags.maxCases
	}
	if opts.Mode != analyze.ModeBasic {
		opts.Augmenter = newAugmenter(cfg)
	}

	cases, err := loadCases(cmd, cfg, opts)
	if err != nil {
		return err
	}

	res, err := analyze.Run(cmd.Context(), cases, opts)
	if err != nil {
		return err
	}

	outPath := analyzeFlags.outputPath
	if outPath == "" {
		name := opts.ProjectKey
		if name == "" {
			name = "local"
		}
		outPath = fmt.Sprintf("dupscope-%s.json", strings.ToLower(name))
	}
	if err := writeArtifact(outPath, res); err != nil {
		return err
	}
	fmt.Printf("Wrote %s: %d cases, %d clusters, %d duplicate(s)\n",
		outPath, res.TotalTestCases, res.ClustersFound, res.PotentialSavings.DuplicateTestCases)

	if analyzeFlags.markdownRpt {
		mdPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".md"
		if err := os.WriteFile(mdPath, []byte(format.RenderResult(res, format.Markdown)), 0o644); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
		fmt.Printf("Wrote %s\n", mdPath)
	}

	if analyzeFlags.report {
		fmt.Println()
		fmt.Println(format.RenderResult(res, format.ASCII))
	}
	return nil
}

// loadCases reads the local dump when --input is set, otherwise fetches from
// the TCM instance with bounded fan-out.
func loadCases(cmd *cobra.Command, cfg *config.Config, opts analyze.Options) ([]analyze.TestCase, error) {
	if analyzeFlags.inputPath != "" {
		data, err := os.ReadFile(analyzeFlags.inputPath)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		var cases []analyze.TestCase
		if err := json.Unmarshal(data, &cases); err != nil {
			return nil, fmt.Errorf("parse input: %w", err)
		}
		return cases, nil
	}

	if opts.ProjectKey == "" {
		return nil, fmt.Errorf("a project key is required\n\nUsage: dupscope analyze --project <KEY>")
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	fetcher := tcm.NewFetcher(client, opts.ProjectKey)
	return fetcher.FetchSuite(cmd.Context(), analyzeFlags.suiteID, opts.MaxCases)
}

func writeArtifact(path string, res *analyze.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}
