package analyze

import "strings"

// stopWords are dropped during normalization. The list is deliberately short:
// it strips procedural filler ("click the button" vs "click a button") without
// erasing domain vocabulary.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"be": true, "to": true, "of": true, "in": true, "on": true, "at": true,
	"and": true, "or": true, "that": true, "this": true, "it": true,
	"should": true, "will": true, "with": true, "from": true, "for": true,
	"then": true, "when": true, "user": false, // "user" stays: it carries role meaning
}

// normalize lower-cases text, strips punctuation, removes stop words, and
// de-duplicates tokens preserving first-seen order.
func normalize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]{}\"'`<>")
		if f == "" || stopWords[f] || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// jaccard computes the Jaccard coefficient between two token slices treated
// as sets. Two empty sets score 1 so that identical degenerate fields do not
// drag a step comparison down.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	setA := make(map[string]bool, len(a))
	for _, s := range a {
		setA[s] = true
	}
	inter := 0
	union := len(setA)
	seenB := make(map[string]bool, len(b))
	for _, s := range b {
		if seenB[s] {
			continue
		}
		seenB[s] = true
		if setA[s] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 1.0
	}
	return float64(inter) / float64(union)
}

// levenshtein returns the edit distance between two strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// editRatio maps edit distance into [0,1], 1 meaning identical.
func editRatio(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

// editFallbackFloor is the token-overlap score below which the edit-distance
// fallback is consulted; editFallbackMin is how close the raw strings must be
// for the fallback to take over. Catches light rewordings that tokenization
// tears apart.
const (
	editFallbackFloor = 0.5
	editFallbackMin   = 0.85
)

// StepSimilarity scores two steps in [0,1]: a weighted blend of token-set
// overlap over the action and expected-result texts, with an edit-distance
// fallback for near-identical raw strings. Returns 0 when either step is
// empty. Pure, deterministic, and symmetric.
func StepSimilarity(a, b Step, w Weights) float64 {
	rawA := strings.TrimSpace(a.Action + " " + a.ExpectedResult)
	rawB := strings.TrimSpace(b.Action + " " + b.ExpectedResult)
	if rawA == "" || rawB == "" {
		return 0
	}

	var score, weight float64
	if strings.TrimSpace(a.Action) != "" || strings.TrimSpace(b.Action) != "" {
		score += w.Action * jaccard(normalize(a.Action), normalize(b.Action))
		weight += w.Action
	}
	if strings.TrimSpace(a.ExpectedResult) != "" || strings.TrimSpace(b.ExpectedResult) != "" {
		score += w.Expected * jaccard(normalize(a.ExpectedResult), normalize(b.ExpectedResult))
		weight += w.Expected
	}
	if weight > 0 {
		score /= weight
	}

	if score < editFallbackFloor {
		if r := editRatio(strings.ToLower(rawA), strings.ToLower(rawB)); r >= editFallbackMin {
			return r
		}
	}
	return score
}

// stepText renders a step as one line for summaries and prompts.
func stepText(s Step) string {
	action := strings.TrimSpace(s.Action)
	expected := strings.TrimSpace(s.ExpectedResult)
	if expected == "" {
		return action
	}
	if action == "" {
		return expected
	}
	return action + " -> " + expected
}

// truncate shortens s to limit runes, appending an ellipsis marker.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
