package analyze

import "sort"

// indexedStep is a step plus its owning case, flattened for phase-1 clustering.
type indexedStep struct {
	ref  StepRef
	step Step
}

// stepClusters is the phase-1 output: the clusters themselves plus each
// case's fingerprint (the multiset of cluster ids its steps map to).
type stepClusters struct {
	clusters     []StepCluster
	fingerprints map[string][]int
}

// clusterSteps groups similar steps across all cases at the given threshold
// (a fraction in [0,1]). Single linkage merges transitively: X~Y and Y~Z land
// in one cluster even when X and Z fall below the threshold, a deliberate
// recall-over-precision choice. Complete linkage admits a step only when it
// clears the threshold against every current member.
func clusterSteps(cases []*TestCase, threshold float64, w Weights, linkage Linkage) stepClusters {
	var steps []indexedStep
	for _, tc := range cases {
		for _, s := range tc.Steps {
			if stepText(s) == "" {
				continue
			}
			steps = append(steps, indexedStep{ref: StepRef{CaseKey: tc.Key, StepIndex: s.Index}, step: s})
		}
	}

	n := len(steps)
	assign := make([]int, n)

	switch linkage {
	case LinkageComplete:
		assignComplete(steps, threshold, w, assign)
	default:
		assignSingle(steps, threshold, w, assign)
	}

	// Collect members per cluster id, renumbering densely in first-seen order.
	idOf := make(map[int]int)
	var clusters []StepCluster
	for i, a := range assign {
		id, ok := idOf[a]
		if !ok {
			id = len(clusters)
			idOf[a] = id
			clusters = append(clusters, StepCluster{ID: id})
		}
		clusters[id].Members = append(clusters[id].Members, steps[i].ref)
	}

	// Representative text and per-cluster case frequency.
	memberSteps := make([][]indexedStep, len(clusters))
	for i, a := range assign {
		memberSteps[idOf[a]] = append(memberSteps[idOf[a]], steps[i])
	}
	for id := range clusters {
		clusters[id].Representative = representativeText(memberSteps[id], w)
		seen := map[string]bool{}
		for _, m := range clusters[id].Members {
			seen[m.CaseKey] = true
		}
		clusters[id].Frequency = len(seen)
	}

	// Fingerprint per case: cluster ids of its steps, sorted for stable output.
	fp := make(map[string][]int, len(cases))
	for i, a := range assign {
		key := steps[i].ref.CaseKey
		fp[key] = append(fp[key], idOf[a])
	}
	for key := range fp {
		sort.Ints(fp[key])
	}

	return stepClusters{clusters: clusters, fingerprints: fp}
}

// assignSingle is union-find over every step pair at or above the threshold.
func assignSingle(steps []indexedStep, threshold float64, w Weights, assign []int) {
	parent := make([]int, len(steps))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			if rb < ra {
				ra, rb = rb, ra
			}
			parent[rb] = ra
		}
	}

	for i := 0; i < len(steps); i++ {
		for j := i + 1; j < len(steps); j++ {
			if StepSimilarity(steps[i].step, steps[j].step, w) >= threshold {
				union(i, j)
			}
		}
	}
	for i := range steps {
		assign[i] = find(i)
	}
}

// assignComplete greedily places each step into the first cluster where it
// clears the threshold against all existing members, else opens a new one.
func assignComplete(steps []indexedStep, threshold float64, w Weights, assign []int) {
	var clusters [][]int
	for i := range steps {
		placed := false
		for ci, members := range clusters {
			ok := true
			for _, m := range members {
				if StepSimilarity(steps[i].step, steps[m].step, w) < threshold {
					ok = false
					break
				}
			}
			if ok {
				clusters[ci] = append(clusters[ci], i)
				assign[i] = clusters[ci][0]
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []int{i})
			assign[i] = i
		}
	}
}

// representativeText picks the member text nearest the cluster centroid: the
// one with minimal total distance to its peers. Ties keep the earlier member,
// which also makes a singleton cluster trivially stable.
func representativeText(members []indexedStep, w Weights) string {
	if len(members) == 0 {
		return ""
	}
	best := 0
	bestCost := -1.0
	for i := range members {
		cost := 0.0
		for j := range members {
			if i == j {
				continue
			}
			cost += 1.0 - StepSimilarity(members[i].step, members[j].step, w)
		}
		if bestCost < 0 || cost < bestCost {
			best, bestCost = i, cost
		}
	}
	return stepText(members[best].step)
}
