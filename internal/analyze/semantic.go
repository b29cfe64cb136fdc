package analyze

import (
	"context"
	"fmt"
	"strings"
)

// Augmenter is the injected natural-language capability for semantic and
// hybrid runs. Implementations may call out to an LLM; they may fail or time
// out, and the engine treats both as a degraded-but-successful run. A stub
// closure substitutes trivially in tests.
type Augmenter interface {
	Augment(ctx context.Context, prompt string) (string, error)
}

// AugmenterFunc adapts a plain function to the Augmenter interface.
type AugmenterFunc func(ctx context.Context, prompt string) (string, error)

func (f AugmenterFunc) Augment(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// augment invokes the hook once per run with a bounded summary of the
// deterministic results, under the configured timeout. Any error degrades the
// run instead of aborting it; the caller records the fallback in the result.
func augment(ctx context.Context, res *Result, opts *Options) (string, error) {
	timeout := opts.AugmentTimeout
	if timeout <= 0 {
		timeout = DefaultOptions().AugmentTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := opts.Augmenter.Augment(ctx, insightPrompt(res))
	if err != nil {
		return "", fmt.Errorf("semantic augmentation: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// insightPrompt summarizes the deterministic analysis for the hook. Kept
// small: cluster shapes and shared workflows, never the full suite text.
func insightPrompt(res *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A test suite of %d cases produced %d near-duplicate clusters.\n", res.TotalTestCases, res.ClustersFound)
	for i, c := range res.Clusters {
		fmt.Fprintf(&b, "Cluster %d (%.0f%% avg, pattern %s): %s\n",
			i+1, c.AverageSimilarity, c.Pattern, strings.Join(c.TestCases, ", "))
		for _, s := range c.SharedLogicSummary {
			fmt.Fprintf(&b, "  shared: %s\n", s)
		}
	}
	if len(res.StepClusters) > 0 {
		fmt.Fprintf(&b, "Recurring step workflows:\n")
		for _, sc := range res.StepClusters {
			if sc.Frequency > 1 {
				fmt.Fprintf(&b, "  [%d cases] %s\n", sc.Frequency, truncate(sc.Representative, 100))
			}
		}
	}
	b.WriteString("Describe the dominant duplicated workflows and any consolidation risks, in a short paragraph.")
	return b.String()
}
