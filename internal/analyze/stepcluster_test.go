package analyze

import (
	"testing"
)

func stepsOf(texts ...string) []Step {
	steps := make([]Step, len(texts))
	for i, txt := range texts {
		steps[i] = Step{Index: i, Action: txt, ExpectedResult: "succeeds"}
	}
	return steps
}

func TestClusterSteps_GroupsIdenticalSteps(t *testing.T) {
	cases := []*TestCase{
		{Key: "T1", Steps: stepsOf("open the app", "tap the login button")},
		{Key: "T2", Steps: stepsOf("open the app", "tap the signup button")},
	}
	got := clusterSteps(cases, 0.85, DefaultOptions().StepWeights, LinkageSingle)

	// "open the app" appears in both cases and must share one cluster.
	var openCluster *StepCluster
	for i := range got.clusters {
		for _, m := range got.clusters[i].Members {
			if m.CaseKey == "T1" && m.StepIndex == 0 {
				openCluster = &got.clusters[i]
			}
		}
	}
	if openCluster == nil {
		t.Fatal("cluster for T1 step 0 not found")
	}
	if len(openCluster.Members) != 2 {
		t.Errorf("open-the-app cluster: got %d members, want 2", len(openCluster.Members))
	}
	if openCluster.Frequency != 2 {
		t.Errorf("frequency: got %d, want 2 distinct cases", openCluster.Frequency)
	}
}

func TestClusterSteps_Fingerprints(t *testing.T) {
	cases := []*TestCase{
		{Key: "T1", Steps: stepsOf("open the app", "tap the login button")},
		{Key: "T2", Steps: stepsOf("open the app", "tap the login button")},
	}
	got := clusterSteps(cases, 0.85, DefaultOptions().StepWeights, LinkageSingle)

	fpA, fpB := got.fingerprints["T1"], got.fingerprints["T2"]
	if len(fpA) != 2 || len(fpB) != 2 {
		t.Fatalf("fingerprint lengths: got %d and %d, want 2 and 2", len(fpA), len(fpB))
	}
	for i := range fpA {
		if fpA[i] != fpB[i] {
			t.Errorf("identical cases should share fingerprints: %v vs %v", fpA, fpB)
		}
	}
}

func TestClusterSteps_TransitiveMerge(t *testing.T) {
	// A~B and B~C should merge into one cluster under single linkage even
	// when A and C are farther apart.
	cases := []*TestCase{
		{Key: "T1", Steps: []Step{{Index: 0, Action: "enter username and password on the login form"}}},
		{Key: "T2", Steps: []Step{{Index: 0, Action: "enter username and password on the login form screen"}}},
		{Key: "T3", Steps: []Step{{Index: 0, Action: "enter username and password on the screen"}}},
	}
	single := clusterSteps(cases, 0.65, DefaultOptions().StepWeights, LinkageSingle)
	if len(single.clusters) != 1 {
		t.Errorf("single linkage: got %d clusters, want 1", len(single.clusters))
	}
}

func TestClusterSteps_SkipsBlankSteps(t *testing.T) {
	cases := []*TestCase{
		{Key: "T1", Steps: []Step{{Index: 0, Action: "  "}, {Index: 1, Action: "tap save"}}},
	}
	got := clusterSteps(cases, 0.85, DefaultOptions().StepWeights, LinkageSingle)
	if len(got.fingerprints["T1"]) != 1 {
		t.Errorf("blank step should be skipped: fingerprint %v", got.fingerprints["T1"])
	}
}

func TestRepresentativeText_PicksCentralMember(t *testing.T) {
	members := []indexedStep{
		{step: Step{Action: "tap the save button"}},
		{step: Step{Action: "tap the save button now"}},
		{step: Step{Action: "tap the save button immediately please"}},
	}
	got := representativeText(members, DefaultOptions().StepWeights)
	// The shortest member minimizes total distance to its peers here.
	if got != "tap the save button" {
		t.Errorf("representative: got %q, want the most central member", got)
	}
}
