package analyze

import (
	"errors"
	"fmt"
)

// ErrInsufficientInput is returned when fewer than two test cases are supplied.
// There is nothing to compare; callers should not retry.
var ErrInsufficientInput = errors.New("analyze: at least 2 test cases are required")

// ThresholdError reports a threshold outside the accepted [50,100] range.
type ThresholdError struct {
	Name  string
	Value float64
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("analyze: %s=%.1f is outside [%.0f,%.0f]", e.Name, e.Value, MinThreshold, MaxThreshold)
}

// TooManyCasesError reports input above the engine's size ceiling. Pairwise
// comparison is quadratic, so oversized input fails clearly instead of
// silently degrading to slow behavior.
type TooManyCasesError struct {
	Count int
	Limit int
}

func (e *TooManyCasesError) Error() string {
	return fmt.Sprintf("analyze: %d test cases exceeds the limit of %d; raise Options.MaxCases or narrow the input", e.Count, e.Limit)
}
