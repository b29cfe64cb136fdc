package tcm

import (
	"encoding/json"
	"fmt"
	"time"
)

// maxMillisTimestamp is the upper bound for a value to be interpreted as
// milliseconds (approximately year 2286). Values at or above this threshold
// are treated as microseconds.
const maxMillisTimestamp int64 = 1e13

// EpochMillis is a point in time serialized as an integer epoch timestamp.
// Deserialization auto-detects milliseconds vs microseconds from magnitude;
// serialization always produces milliseconds.
type EpochMillis time.Time

// Time returns the underlying time.Time value.
func (e EpochMillis) Time() time.Time { return time.Time(e) }

// MarshalJSON serializes EpochMillis as Unix milliseconds.
func (e EpochMillis) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(e).UnixMilli())
}

// UnmarshalJSON deserializes an integer timestamp, auto-detecting ms or us.
func (e *EpochMillis) UnmarshalJSON(data []byte) error {
	var value int64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("unmarshal epoch millis: %w", err)
	}
	if value >= maxMillisTimestamp {
		*e = EpochMillis(time.UnixMicro(value))
	} else {
		*e = EpochMillis(time.UnixMilli(value))
	}
	return nil
}

// --- TCM response types (hand-written, aligned with the v2 REST API) ---

// TestCaseResource is a test case summary as returned by case listing.
// Steps are fetched separately via the teststeps endpoint.
type TestCaseResource struct {
	ID               int          `json:"id"`
	Key              string       `json:"key"`
	Name             string       `json:"name,omitempty"`
	Status           string       `json:"status,omitempty"`
	AutomationStatus string       `json:"automationStatus,omitempty"`
	Priority         string       `json:"priority,omitempty"`
	SuiteID          int          `json:"suiteId,omitempty"`
	Labels           []string     `json:"labels,omitempty"`
	Owner            string       `json:"owner,omitempty"`
	CreatedOn        *EpochMillis `json:"createdOn,omitempty"`
	ModifiedOn       *EpochMillis `json:"modifiedOn,omitempty"`
}

// StepResource is one scripted step of a test case.
type StepResource struct {
	Index          int    `json:"index"`
	Description    string `json:"description,omitempty"`
	ExpectedResult string `json:"expectedResult,omitempty"`
	TestData       string `json:"testData,omitempty"`
}

// SuiteResource is a test suite (folder) within a project.
type SuiteResource struct {
	ID        int    `json:"id"`
	Name      string `json:"name,omitempty"`
	ParentID  int    `json:"parentId,omitempty"`
	CaseCount int    `json:"caseCount,omitempty"`
}

// --- Paginated response wrappers ---

// PagedTestCases is the paginated response for case listing.
type PagedTestCases struct {
	Values     []TestCaseResource `json:"values"`
	StartAt    int                `json:"startAt"`
	MaxResults int                `json:"maxResults"`
	Total      int                `json:"total"`
	IsLast     bool               `json:"isLast"`
}

// PagedSteps is the paginated response for step listing.
type PagedSteps struct {
	Values     []StepResource `json:"values"`
	StartAt    int            `json:"startAt"`
	MaxResults int            `json:"maxResults"`
	Total      int            `json:"total"`
	IsLast     bool           `json:"isLast"`
}

// PagedSuites is the paginated response for suite listing.
type PagedSuites struct {
	Values     []SuiteResource `json:"values"`
	StartAt    int             `json:"startAt"`
	MaxResults int             `json:"maxResults"`
	Total      int             `json:"total"`
	IsLast     bool            `json:"isLast"`
}

// ErrorRS is the standard TCM error response shape.
type ErrorRS struct {
	ErrorCode int    `json:"errorCode,omitempty"`
	Message   string `json:"message"`
}
