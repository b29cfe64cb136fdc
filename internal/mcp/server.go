// Package mcp exposes the duplicate analysis as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"dupscope/internal/analyze"
	"dupscope/internal/format"
	"dupscope/internal/logging"
)

// FetchFunc retrieves the test cases to analyze. Injected so server tests
// run without a live TCM instance.
type FetchFunc func(ctx context.Context, projectKey string, suiteID, limit int) ([]analyze.TestCase, error)

// Server wraps the MCP SDK server around the analysis engine. It keeps the
// last result so render_report can format it without re-fetching.
type Server struct {
	MCPServer *sdkmcp.Server

	fetch     FetchFunc
	baseOpts  analyze.Options
	augmenter analyze.Augmenter

	mu   sync.Mutex
	last *analyze.Result
}

// NewServer creates an MCP server with the analysis tools registered.
// baseOpts seeds each run; tool inputs override individual knobs per call.
func NewServer(fetch FetchFunc, baseOpts analyze.Options, augmenter analyze.Augmenter) *Server {
	s := &Server{fetch: fetch, baseOpts: baseOpts, augmenter: augmenter}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "dupscope", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "analyze_duplicates",
		Description: "Fetch a project's test cases and detect duplicate/near-duplicate clusters. Returns the structured analysis result.",
	}, s.handleAnalyze)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "render_report",
		Description: "Render the most recent analysis result as an ASCII or Markdown report.",
	}, s.handleRender)
}

// --- Tool input/output types ---

type analyzeInput struct {
	ProjectKey          string  `json:"project_key,omitempty" jsonschema:"project key; defaults to the configured project"`
	SuiteID             int     `json:"suite_id,omitempty" jsonschema:"restrict the analysis to one suite (0 = whole project)"`
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty" jsonschema:"case clustering threshold in [50,100] (default 80)"`
	StepThreshold       float64 `json:"step_threshold,omitempty" jsonschema:"step clustering threshold in [50,100] (default 85)"`
	Mode                string  `json:"mode,omitempty" jsonschema:"analysis mode (basic, semantic, hybrid)"`
	UseMedoid           bool    `json:"use_medoid,omitempty" jsonschema:"select cluster representatives by medoid instead of heuristic"`
	MaxCases            int     `json:"max_cases,omitempty" jsonschema:"cap on cases fetched for the quadratic comparison"`
}

type renderInput struct {
	Format string `json:"format,omitempty" jsonschema:"output format (ascii, markdown); default markdown"`
}

type renderOutput struct {
	Report string `json:"report"`
}

// --- Tool handlers ---

func (s *Server) handleAnalyze(ctx context.Context, _ *sdkmcp.CallToolRequest, input analyzeInput) (*sdkmcp.CallToolResult, *analyze.Result, error) {
	logger := logging.New("mcp")

	opts := s.baseOpts
	if input.ProjectKey != "" {
		opts.ProjectKey = input.ProjectKey
	}
	if opts.ProjectKey == "" {
		return nil, nil, fmt.Errorf("project_key is required (no configured default)")
	}
	opts.SuiteID = input.SuiteID
	if input.SimilarityThreshold != 0 {
		opts.SimilarityThreshold = input.SimilarityThreshold
	}
	if input.StepThreshold != 0 {
		opts.StepClusteringThreshold = input.StepThreshold
	}
	if input.Mode != "" {
		opts.Mode = analyze.Mode(input.Mode)
	}
	if input.UseMedoid {
		opts.UseMedoidSelection = true
	}
	if input.MaxCases > 0 {
		opts.MaxCases = input.MaxCases
	}
	if opts.Mode != analyze.ModeBasic {
		opts.Augmenter = s.augmenter
	}

	cases, err := s.fetch(ctx, opts.ProjectKey, input.SuiteID, opts.MaxCases)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze_duplicates: fetch: %w", err)
	}

	res, err := analyze.Run(ctx, cases, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze_duplicates: %w", err)
	}

	s.mu.Lock()
	s.last = res
	s.mu.Unlock()

	logger.Info("analysis served",
		"project", opts.ProjectKey, "suite", input.SuiteID,
		"cases", res.TotalTestCases, "clusters", res.ClustersFound)
	return nil, res, nil
}

func (s *Server) handleRender(_ context.Context, _ *sdkmcp.CallToolRequest, input renderInput) (*sdkmcp.CallToolResult, renderOutput, error) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == nil {
		return nil, renderOutput{}, fmt.Errorf("no analysis result yet (call analyze_duplicates first)")
	}

	mode := format.Markdown
	if input.Format == "ascii" {
		mode = format.ASCII
	}
	return nil, renderOutput{Report: format.RenderResult(last, mode)}, nil
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// LastResult returns the most recent analysis result, or nil.
func (s *Server) LastResult() *analyze.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
