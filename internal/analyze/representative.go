package analyze

import "sort"

// selection names the chosen base case and the criterion that decided it.
type selection struct {
	key    string
	reason string
}

// heuristicRank orders candidates: automated first, then more steps, then
// most recently modified, then key for determinism. Shared by both selection
// strategies as the common tie-break.
func heuristicRank(cases []*TestCase) []*TestCase {
	ranked := make([]*TestCase, len(cases))
	copy(ranked, cases)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if (a.Automation == AutomationAutomated) != (b.Automation == AutomationAutomated) {
			return a.Automation == AutomationAutomated
		}
		if len(a.Steps) != len(b.Steps) {
			return len(a.Steps) > len(b.Steps)
		}
		if !a.ModifiedOn.Equal(b.ModifiedOn) {
			return a.ModifiedOn.After(b.ModifiedOn)
		}
		return a.Key < b.Key
	})
	return ranked
}

// selectHeuristic picks the top of the heuristic ranking and names the
// criterion that separated the winner from the runner-up.
func selectHeuristic(cases []*TestCase) selection {
	ranked := heuristicRank(cases)
	top := ranked[0]
	if len(ranked) == 1 {
		return selection{key: top.Key, reason: "only member"}
	}
	next := ranked[1]
	switch {
	case top.Automation == AutomationAutomated && next.Automation != AutomationAutomated:
		return selection{key: top.Key, reason: "automated"}
	case len(top.Steps) != len(next.Steps):
		return selection{key: top.Key, reason: "most steps"}
	case !top.ModifiedOn.Equal(next.ModifiedOn):
		return selection{key: top.Key, reason: "most recently modified"}
	default:
		return selection{key: top.Key, reason: "first by key"}
	}
}

// selectMedoid picks the member minimizing total distance (100 - similarity)
// to all other members: the case with maximal average similarity to its
// peers. Ties fall back to the heuristic ordering.
func selectMedoid(cases []*TestCase, pct func(a, b string) float64) selection {
	ranked := heuristicRank(cases)
	best := ranked[0]
	bestCost := -1.0
	for _, cand := range ranked {
		cost := 0.0
		for _, other := range cases {
			if other.Key == cand.Key {
				continue
			}
			cost += 100 - pct(cand.Key, other.Key)
		}
		if bestCost < 0 || cost < bestCost {
			best, bestCost = cand, cost
		}
	}
	return selection{key: best.Key, reason: "medoid"}
}
