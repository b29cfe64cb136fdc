package analyze

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "lowercases and strips punctuation",
			in:   "Click the Login button!",
			want: []string{"click", "login", "button"},
		},
		{
			name: "removes stop words",
			in:   "the user is on the home screen",
			want: []string{"user", "home", "screen"},
		},
		{
			name: "dedupes preserving first-seen order",
			in:   "tap tap settings tap",
			want: []string{"tap", "settings"},
		},
		{
			name: "empty input",
			in:   "   ",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("normalize(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	if got := jaccard([]string{"a", "b"}, []string{"a", "b"}); got != 1.0 {
		t.Errorf("identical sets: got %v, want 1.0", got)
	}
	if got := jaccard([]string{"a", "b"}, []string{"c", "d"}); got != 0.0 {
		t.Errorf("disjoint sets: got %v, want 0.0", got)
	}
	if got := jaccard([]string{"a", "b", "c"}, []string{"b", "c", "d"}); got != 0.5 {
		t.Errorf("half overlap: got %v, want 0.5", got)
	}
	if got := jaccard(nil, nil); got != 1.0 {
		t.Errorf("both empty: got %v, want 1.0", got)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q,%q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStepSimilarity_Symmetric(t *testing.T) {
	w := DefaultOptions().StepWeights
	a := Step{Action: "Open the settings menu", ExpectedResult: "Settings screen appears"}
	b := Step{Action: "Open the profile menu", ExpectedResult: "Profile screen appears"}
	if StepSimilarity(a, b, w) != StepSimilarity(b, a, w) {
		t.Errorf("similarity is not symmetric: %v vs %v",
			StepSimilarity(a, b, w), StepSimilarity(b, a, w))
	}
}

func TestStepSimilarity_Identity(t *testing.T) {
	w := DefaultOptions().StepWeights
	s := Step{Action: "Tap the login button", ExpectedResult: "Dashboard loads"}
	if got := StepSimilarity(s, s, w); got != 1.0 {
		t.Errorf("self similarity: got %v, want 1.0", got)
	}
}

func TestStepSimilarity_EmptyStep(t *testing.T) {
	w := DefaultOptions().StepWeights
	s := Step{Action: "Tap the login button"}
	if got := StepSimilarity(s, Step{}, w); got != 0 {
		t.Errorf("empty counterpart: got %v, want 0", got)
	}
	if got := StepSimilarity(Step{}, Step{}, w); got != 0 {
		t.Errorf("both empty: got %v, want 0", got)
	}
}

func TestStepSimilarity_EditFallback(t *testing.T) {
	w := DefaultOptions().StepWeights
	// Token overlap is poor (different word boundaries) but the raw strings
	// are near identical; the edit-distance fallback should catch it.
	a := Step{Action: "login viaSSO portal"}
	b := Step{Action: "login via SSO portal"}
	if got := StepSimilarity(a, b, w); got < editFallbackMin {
		t.Errorf("near-identical rewording: got %v, want >= %v", got, editFallbackMin)
	}
}

func TestStepSimilarity_ActionWeighsMore(t *testing.T) {
	w := DefaultOptions().StepWeights
	sameAction := StepSimilarity(
		Step{Action: "tap search", ExpectedResult: "results listed"},
		Step{Action: "tap search", ExpectedResult: "keyboard hidden"},
		w,
	)
	sameExpected := StepSimilarity(
		Step{Action: "tap search", ExpectedResult: "results listed"},
		Step{Action: "swipe banner", ExpectedResult: "results listed"},
		w,
	)
	if sameAction <= sameExpected {
		t.Errorf("action match should outweigh expected match: %v <= %v", sameAction, sameExpected)
	}
}
