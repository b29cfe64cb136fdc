package tcm

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"dupscope/internal/analyze"
)

// DefaultFetchWorkers bounds the concurrent step-detail requests.
const DefaultFetchWorkers = 8

// Fetcher pulls a suite's test cases with their step scripts and maps them
// into the engine's input shape. Detail fetches fan out concurrently but
// bounded; the case count is capped before the engine ever sees the list.
type Fetcher struct {
	client  *Client
	project string
	workers int
}

// NewFetcher returns a Fetcher for the given client and project key.
func NewFetcher(client *Client, project string) *Fetcher {
	return &Fetcher{client: client, project: project, workers: DefaultFetchWorkers}
}

// SetWorkers overrides the fan-out bound. Values below 1 are ignored.
func (f *Fetcher) SetWorkers(n int) {
	if n >= 1 {
		f.workers = n
	}
}

// FetchSuite lists the suite's cases (the whole project when suiteID is 0),
// caps them at limit, fetches step detail concurrently, and returns engine
// input. Pairwise analysis is quadratic, so the cap is applied here rather
// than letting an unbounded suite through.
func (f *Fetcher) FetchSuite(ctx context.Context, suiteID, limit int) ([]analyze.TestCase, error) {
	scope := f.client.Project(f.project).Cases()

	var opts []ListOption
	if suiteID > 0 {
		opts = append(opts, WithSuiteID(suiteID))
	}
	summaries, err := scope.ListAll(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("fetch suite: %w", err)
	}
	if limit > 0 && len(summaries) > limit {
		f.client.logger.Warn("capping suite for analysis",
			"total", len(summaries), "limit", limit)
		summaries = summaries[:limit]
	}

	cases := make([]analyze.TestCase, len(summaries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, summary := range summaries {
		g.Go(func() error {
			steps, err := scope.Steps(gctx, summary.Key)
			if err != nil {
				return fmt.Errorf("fetch steps for %s: %w", summary.Key, err)
			}
			cases[i] = mapCase(summary, steps)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cases, nil
}

// mapCase converts API resources into the engine's input type.
func mapCase(tc TestCaseResource, steps []StepResource) analyze.TestCase {
	out := analyze.TestCase{
		Key:        tc.Key,
		ID:         tc.ID,
		Title:      tc.Name,
		Automation: mapAutomation(tc.AutomationStatus),
		Steps:      make([]analyze.Step, 0, len(steps)),
	}
	if tc.ModifiedOn != nil {
		out.ModifiedOn = tc.ModifiedOn.Time()
	}
	for i, s := range steps {
		idx := s.Index
		if idx == 0 {
			idx = i
		}
		out.Steps = append(out.Steps, analyze.Step{
			Index:          idx,
			Action:         s.Description,
			ExpectedResult: s.ExpectedResult,
		})
	}
	return out
}

func mapAutomation(status string) analyze.AutomationState {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "automated":
		return analyze.AutomationAutomated
	case "manual":
		return analyze.AutomationManual
	case "mixed", "partial":
		return analyze.AutomationMixed
	default:
		return analyze.AutomationUnspecified
	}
}
