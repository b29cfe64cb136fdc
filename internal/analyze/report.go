package analyze

import (
	"fmt"
	"sort"
)

// buildCluster assembles the report entry for one component: automation mix,
// shared-logic summary, dominant pattern, representative, and the templated
// merging recommendation.
func buildCluster(comp component, pairs map[[2]string]*SimilarityPair, pct func(a, b string) float64, opts *Options) Cluster {
	keys := make([]string, len(comp.members))
	for i, m := range comp.members {
		keys[i] = m.Key
	}

	var mix AutomationMix
	for _, m := range comp.members {
		switch m.Automation {
		case AutomationAutomated:
			mix.Automated++
		case AutomationMixed:
			mix.Mixed++
		default:
			mix.Manual++
		}
	}

	pattern := dominantPattern(keys, pairs)

	var sel selection
	if opts.UseMedoidSelection {
		sel = selectMedoid(comp.members, pct)
	} else {
		sel = selectHeuristic(comp.members)
	}

	return Cluster{
		TestCases:          keys,
		AverageSimilarity:  round1(comp.avg),
		Mix:                mix,
		SharedLogicSummary: sharedLogic(keys, pairs, opts.SharedSummaryLimit),
		RecommendedBase:    sel.key,
		SelectionReason:    sel.reason,
		Pattern:            pattern,
		MergingStrategy:    mergingStrategy(pattern, mix),
	}
}

// dominantPattern tallies the pattern labels of all intra-cluster pairs and
// returns the most frequent, breaking ties by rule order.
func dominantPattern(keys []string, pairs map[[2]string]*SimilarityPair) PatternType {
	counts := map[PatternType]int{}
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if p := lookupPair(pairs, keys[i], keys[j]); p != nil {
				counts[p.Pattern]++
			}
		}
	}
	best := PatternOther
	bestCount := counts[PatternOther]
	for _, rule := range patternRules {
		if counts[rule.pattern] > bestCount {
			best, bestCount = rule.pattern, counts[rule.pattern]
		}
	}
	return best
}

// sharedLogic collects the most common shared step texts across the
// cluster's pairs, deduplicated, capped at limit.
func sharedLogic(keys []string, pairs map[[2]string]*SimilarityPair, limit int) []string {
	counts := map[string]int{}
	var order []string
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			p := lookupPair(pairs, keys[i], keys[j])
			if p == nil {
				continue
			}
			for _, text := range p.SharedStepsSummary {
				if counts[text] == 0 {
					order = append(order, text)
				}
				counts[text]++
			}
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// mergingStrategy templates a consolidation recommendation from the cluster's
// dominant pattern and automation mix.
func mergingStrategy(p PatternType, mix AutomationMix) string {
	hasAutomated := mix.Automated > 0 || mix.Mixed > 0
	switch p {
	case PatternUserType:
		if hasAutomated {
			return "parameterize the automated case using the user role as test data and retire the manual variants"
		}
		return "merge into one data-driven case parameterized by user role"
	case PatternTheme:
		if hasAutomated {
			return "parameterize the automated case using theme as test data"
		}
		return "merge into one case that iterates over theme variants"
	case PatternEntryPoint:
		return "keep a single flow and drive the entry point from a test parameter"
	case PatternComponent:
		return "fold the component variants into one shared procedure with per-component verification steps"
	case PatternPermission:
		return "merge into a single case covering the permission grant and deny states"
	default:
		if hasAutomated {
			return "keep the recommended base and fold any unique steps from the other cases into it"
		}
		return "review the cluster and merge into the recommended base, preserving unique verification steps"
	}
}

// buildSavings sums the per-cluster consolidation headroom (members - 1,
// keeping exactly one case per cluster) and buckets the time reduction.
func buildSavings(clusters []Cluster, total int) Savings {
	dups := 0
	for _, c := range clusters {
		dups += len(c.TestCases) - 1
	}
	return Savings{
		DuplicateTestCases:     dups,
		EstimatedTimeReduction: timeReductionLabel(dups, total),
	}
}

// timeReductionLabel buckets savings into a descriptive label rather than a
// false-precision estimate.
func timeReductionLabel(dups, total int) string {
	if dups == 0 || total == 0 {
		return "none"
	}
	switch ratio := float64(dups) / float64(total); {
	case ratio < 0.1:
		return fmt.Sprintf("minimal: %d redundant case(s), under a tenth of the suite", dups)
	case ratio < 0.25:
		return fmt.Sprintf("moderate: %d redundant cases, up to a quarter of the suite", dups)
	case ratio < 0.5:
		return fmt.Sprintf("substantial: %d redundant cases, up to half the suite", dups)
	default:
		return fmt.Sprintf("major: %d redundant cases, half the suite or more", dups)
	}
}

func lookupPair(pairs map[[2]string]*SimilarityPair, a, b string) *SimilarityPair {
	if p, ok := pairs[[2]string{a, b}]; ok {
		return p
	}
	return pairs[[2]string{b, a}]
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
