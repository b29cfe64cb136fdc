package analyze

import "sort"

// component is a connected group of cases above the similarity threshold,
// before report assembly.
type component struct {
	members []*TestCase
	avg     float64
}

// buildClusters connects cases whose pairwise percentage meets the threshold
// and returns the groups of size >= 2. Singletons never become clusters. The
// default single linkage uses connected components, the same transitive
// recall-favoring policy as step clustering; complete linkage requires every
// cross-pair to clear the threshold.
func buildClusters(cases []*TestCase, pct func(a, b string) float64, threshold float64, linkage Linkage) []component {
	n := len(cases)
	if n < 2 {
		return nil
	}

	assign := make([]int, n)
	switch linkage {
	case LinkageComplete:
		var groups [][]int
		for i := 0; i < n; i++ {
			placed := false
			for gi, members := range groups {
				ok := true
				for _, m := range members {
					if pct(cases[i].Key, cases[m].Key) < threshold {
						ok = false
						break
					}
				}
				if ok {
					groups[gi] = append(groups[gi], i)
					assign[i] = groups[gi][0]
					placed = true
					break
				}
			}
			if !placed {
				groups = append(groups, []int{i})
				assign[i] = i
			}
		}
	default:
		parent := make([]int, n)
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
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if pct(cases[i].Key, cases[j].Key) >= threshold {
					ri, rj := find(i), find(j)
					if ri != rj {
						if rj < ri {
							ri, rj = rj, ri
						}
						parent[rj] = ri
					}
				}
			}
		}
		for i := range assign {
			assign[i] = find(i)
		}
	}

	grouped := map[int][]*TestCase{}
	var order []int
	for i, a := range assign {
		if _, ok := grouped[a]; !ok {
			order = append(order, a)
		}
		grouped[a] = append(grouped[a], cases[i])
	}

	var comps []component
	for _, a := range order {
		members := grouped[a]
		if len(members) < 2 {
			continue
		}
		comps = append(comps, component{members: members, avg: meanPairwise(members, pct)})
	}

	// Stable report ordering: strongest clusters first, larger wins ties.
	sort.SliceStable(comps, func(i, j int) bool {
		if comps[i].avg != comps[j].avg {
			return comps[i].avg > comps[j].avg
		}
		return len(comps[i].members) > len(comps[j].members)
	})
	return comps
}

// meanPairwise averages the similarity percentage over every pair in the
// group. With single linkage this can sit below the threshold; that is the
// documented recall trade-off, not a bug.
func meanPairwise(members []*TestCase, pct func(a, b string) float64) float64 {
	if len(members) < 2 {
		return 0
	}
	var sum float64
	var count int
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			sum += pct(members[i].Key, members[j].Key)
			count++
		}
	}
	return sum / float64(count)
}
