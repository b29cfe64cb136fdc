package analyze

// scorer computes pairwise case similarity within a single run. It carries
// the run's options plus, in semantic scoring, the phase-1 fingerprints and
// cluster texts.
type scorer struct {
	opts        *Options
	fingerprint map[string][]int
	clusterText map[int]string
}

// caseSimilarity scores two cases and classifies what distinguishes them.
// The percentage is symmetric and lives in [0,100].
func (s *scorer) caseSimilarity(a, b *TestCase) SimilarityPair {
	pair := SimilarityPair{
		CaseA:       a.Key,
		CaseB:       b.Key,
		TotalStepsA: len(a.Steps),
		TotalStepsB: len(b.Steps),
	}

	basicPct, shared, summary := s.basicScore(a, b)

	switch {
	case s.opts.semanticScoring() && s.opts.Mode == ModeSemantic:
		pct, sharedIDs := s.semanticScore(a, b)
		pair.Percentage = pct
		pair.SharedSteps = len(sharedIDs)
		pair.SharedStepsSummary = s.clusterSummaries(sharedIDs)
	case s.opts.semanticScoring() && s.opts.Mode == ModeHybrid:
		pct, _ := s.semanticScore(a, b)
		pair.Percentage = (min(basicPct, 100) + min(pct, 100)) / 2
		pair.SharedSteps = shared
		pair.SharedStepsSummary = summary
	default:
		pair.Percentage = basicPct
		pair.SharedSteps = shared
		pair.SharedStepsSummary = summary
	}

	pair.Pattern = classifyPattern(distinguishingTokens(a, b))
	return pair
}

// basicScore greedily pairs each of A's steps with its highest-similarity
// unused counterpart in B above the match floor, then takes the Dice
// coefficient over steps: 2*matched / (|A|+|B|) * 100.
func (s *scorer) basicScore(a, b *TestCase) (pct float64, matched int, summary []string) {
	if len(a.Steps) == 0 || len(b.Steps) == 0 {
		return 0, 0, nil
	}
	// Canonical argument order keeps the greedy pairing, and therefore the
	// percentage, symmetric in its inputs.
	if len(a.Steps) > len(b.Steps) || (len(a.Steps) == len(b.Steps) && a.Key > b.Key) {
		a, b = b, a
	}
	used := make([]bool, len(b.Steps))
	for _, sa := range a.Steps {
		bestIdx, bestSim := -1, 0.0
		for j, sb := range b.Steps {
			if used[j] {
				continue
			}
			if sim := StepSimilarity(sa, sb, s.opts.StepWeights); sim >= s.opts.MatchFloor && sim > bestSim {
				bestIdx, bestSim = j, sim
			}
		}
		if bestIdx >= 0 {
			used[bestIdx] = true
			matched++
			if len(summary) < s.opts.SharedSummaryLimit {
				summary = append(summary, truncate(stepText(sa), 80))
			}
		}
	}
	pct = 2 * float64(matched) / float64(len(a.Steps)+len(b.Steps)) * 100
	return pct, matched, summary
}

// semanticScore is the Jaccard coefficient over the two cases' step-cluster
// id sets, scaled to [0,100].
func (s *scorer) semanticScore(a, b *TestCase) (float64, []int) {
	fpA, fpB := s.fingerprint[a.Key], s.fingerprint[b.Key]
	if len(fpA) == 0 || len(fpB) == 0 {
		return 0, nil
	}
	setA := make(map[int]bool, len(fpA))
	for _, id := range fpA {
		setA[id] = true
	}
	setB := make(map[int]bool, len(fpB))
	for _, id := range fpB {
		setB[id] = true
	}
	var shared []int
	union := len(setA)
	for id := range setB {
		if setA[id] {
			shared = append(shared, id)
		} else {
			union++
		}
	}
	if union == 0 {
		return 0, nil
	}
	return float64(len(shared)) / float64(union) * 100, shared
}

// clusterSummaries maps shared step-cluster ids to their representative texts.
func (s *scorer) clusterSummaries(ids []int) []string {
	out := make([]string, 0, min(len(ids), s.opts.SharedSummaryLimit))
	for _, id := range ids {
		if len(out) >= s.opts.SharedSummaryLimit {
			break
		}
		if t := s.clusterText[id]; t != "" {
			out = append(out, truncate(t, 80))
		}
	}
	return out
}

// distinguishingTokens returns the symmetric difference of the two cases'
// normalized token sets across all step text. These are the words that make
// the cases different, fed to the pattern classifier.
func distinguishingTokens(a, b *TestCase) []string {
	setA := caseTokens(a)
	setB := caseTokens(b)
	var diff []string
	for _, t := range setA.order {
		if !setB.has[t] {
			diff = append(diff, t)
		}
	}
	for _, t := range setB.order {
		if !setA.has[t] {
			diff = append(diff, t)
		}
	}
	return diff
}

type tokenSet struct {
	has   map[string]bool
	order []string
}

func caseTokens(tc *TestCase) tokenSet {
	ts := tokenSet{has: map[string]bool{}}
	for _, s := range tc.Steps {
		for _, t := range normalize(s.Action + " " + s.ExpectedResult) {
			if !ts.has[t] {
				ts.has[t] = true
				ts.order = append(ts.order, t)
			}
		}
	}
	return ts
}

// patternRules is the ordered classification table; the first rule whose
// keyword appears among the distinguishing tokens wins.
var patternRules = []struct {
	pattern  PatternType
	keywords []string
}{
	{PatternUserType, []string{"admin", "administrator", "guest", "anonymous", "superuser", "role", "registered", "unregistered", "operator", "viewer"}},
	{PatternTheme, []string{"dark", "light", "theme", "contrast", "appearance", "skin"}},
	{PatternEntryPoint, []string{"deeplink", "deep-link", "deep", "notification", "widget", "shortcut", "url", "push"}},
	{PatternComponent, []string{"button", "menu", "field", "dropdown", "checkbox", "toggle", "icon", "tab", "dialog", "modal", "slider"}},
	{PatternPermission, []string{"camera", "location", "microphone", "contacts", "storage", "grant", "deny", "permission", "allow"}},
}

// classifyPattern labels the dominant difference between two near-duplicates.
func classifyPattern(diff []string) PatternType {
	if len(diff) == 0 {
		return PatternOther
	}
	set := make(map[string]bool, len(diff))
	for _, t := range diff {
		set[t] = true
	}
	for _, rule := range patternRules {
		for _, kw := range rule.keywords {
			if set[kw] {
				return rule.pattern
			}
		}
	}
	return PatternOther
}
