package analyze

import "time"

// AutomationState describes how a test case is executed.
type AutomationState string

const (
	AutomationManual      AutomationState = "manual"
	AutomationAutomated   AutomationState = "automated"
	AutomationMixed       AutomationState = "mixed"
	AutomationUnspecified AutomationState = "unspecified"
)

// Step is one action/expected-result pair within a test case.
type Step struct {
	Index          int    `json:"index"`
	Action         string `json:"action"`
	ExpectedResult string `json:"expectedResult"`
}

// TestCase is the engine's read-only input: a keyed procedure of ordered steps.
// ModifiedOn participates in representative tie-breaking only.
type TestCase struct {
	Key        string          `json:"key"`
	ID         int             `json:"id,omitempty"`
	Title      string          `json:"title"`
	Automation AutomationState `json:"automationState"`
	Steps      []Step          `json:"steps"`
	ModifiedOn time.Time       `json:"modifiedOn,omitempty"`
}

// StepRef identifies a single step by its owning case and position.
type StepRef struct {
	CaseKey   string `json:"caseKey"`
	StepIndex int    `json:"stepIndex"`
}

// StepCluster groups similar steps across all cases (phase 1, semantic mode).
// Frequency counts distinct cases touching the cluster, not member steps.
type StepCluster struct {
	ID             int       `json:"id"`
	Representative string    `json:"representativeStepText"`
	Members        []StepRef `json:"memberStepRefs"`
	Frequency      int       `json:"frequency"`
}

// PatternType labels the dominant difference between near-duplicate cases.
type PatternType string

const (
	PatternUserType   PatternType = "user_type"
	PatternTheme      PatternType = "theme"
	PatternEntryPoint PatternType = "entry_point"
	PatternComponent  PatternType = "component"
	PatternPermission PatternType = "permission"
	PatternOther      PatternType = "other"
)

// SimilarityPair is one cell of the pairwise similarity matrix.
type SimilarityPair struct {
	CaseA              string      `json:"caseKeyA"`
	CaseB              string      `json:"caseKeyB"`
	Percentage         float64     `json:"similarityPercentage"`
	SharedSteps        int         `json:"sharedSteps"`
	TotalStepsA        int         `json:"totalSteps1"`
	TotalStepsB        int         `json:"totalSteps2"`
	Pattern            PatternType `json:"patternType"`
	SharedStepsSummary []string    `json:"sharedStepsSummary,omitempty"`
}

// AutomationMix tallies automation states within a cluster.
type AutomationMix struct {
	Manual    int `json:"manual"`
	Automated int `json:"automated"`
	Mixed     int `json:"mixed"`
}

// Cluster is a set of at least two test cases treated as likely duplicates.
type Cluster struct {
	TestCases          []string      `json:"testCases"`
	AverageSimilarity  float64       `json:"averageSimilarity"`
	Mix                AutomationMix `json:"automationMix"`
	SharedLogicSummary []string      `json:"sharedLogicSummary,omitempty"`
	RecommendedBase    string        `json:"recommendedBase"`
	SelectionReason    string        `json:"selectionReason,omitempty"`
	Pattern            PatternType   `json:"patternType"`
	MergingStrategy    string        `json:"mergingStrategy,omitempty"`
}

// Savings estimates the consolidation headroom across all clusters.
// EstimatedTimeReduction is a coarse bucket label, never a numeric claim.
type Savings struct {
	DuplicateTestCases     int    `json:"duplicateTestCases"`
	EstimatedTimeReduction string `json:"estimatedTimeReduction"`
}

// Result is the full analysis output, plain and JSON-serializable.
// Rendering to tables or narrative reports happens outside the engine.
type Result struct {
	ProjectKey       string           `json:"projectKey,omitempty"`
	SuiteID          int              `json:"suiteId,omitempty"`
	TotalTestCases   int              `json:"totalTestCases"`
	ClustersFound    int              `json:"clustersFound"`
	Clusters         []Cluster        `json:"clusters"`
	SimilarityMatrix []SimilarityPair `json:"similarityMatrix"`
	PotentialSavings Savings          `json:"potentialSavings"`
	StepClusters     []StepCluster    `json:"stepClusters,omitempty"`
	SemanticInsights string           `json:"semanticInsights,omitempty"`
	AnalysisMode     string           `json:"analysisMode"`
}
