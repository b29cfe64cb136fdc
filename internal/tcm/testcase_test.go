package tcm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// pagedCaseServer serves n cases in pages of the requested size.
func pagedCaseServer(t *testing.T, n int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/testcases" {
			http.NotFound(w, r)
			return
		}
		startAt, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
		maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))
		if maxResults <= 0 {
			maxResults = 50
		}
		end := startAt + maxResults
		if end > n {
			end = n
		}
		page := PagedTestCases{
			StartAt:    startAt,
			MaxResults: maxResults,
			Total:      n,
			IsLast:     end >= n,
		}
		for i := startAt; i < end; i++ {
			page.Values = append(page.Values, TestCaseResource{
				ID:  i + 1,
				Key: fmt.Sprintf("DEMO-T%d", i+1),
			})
		}
		json.NewEncoder(w).Encode(page)
	}))
}

func TestCaseScope_ListAllPaginates(t *testing.T) {
	srv := pagedCaseServer(t, 250)
	defer srv.Close()

	c, err := New(srv.URL, "tok")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	all, err := c.Project("DEMO").Cases().ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 250 {
		t.Fatalf("got %d cases, want 250", len(all))
	}
	if all[0].Key != "DEMO-T1" || all[249].Key != "DEMO-T250" {
		t.Errorf("boundary keys: got %s, %s", all[0].Key, all[249].Key)
	}
}

func TestCaseScope_ListSendsFilters(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(`{"values":[],"isLast":true}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL, "tok")
	_, err := c.Project("DEMO").Cases().List(context.Background(),
		WithSuiteID(42), WithStatus("Approved"), WithMaxResults(10))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := map[string]string{
		"projectKey": "DEMO",
		"suiteId":    "42",
		"status":     "Approved",
		"maxResults": "10",
	}
	if diff := cmp.Diff(want, gotQuery); diff != "" {
		t.Errorf("query (-want +got):\n%s", diff)
	}
}

func TestCaseScope_StepsPaginates(t *testing.T) {
	const total = 7
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/testcases/DEMO-T1/teststeps" {
			http.NotFound(w, r)
			return
		}
		startAt, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
		page := PagedSteps{StartAt: startAt, Total: total}
		for i := startAt; i < total && i < startAt+5; i++ {
			page.Values = append(page.Values, StepResource{
				Index:       i,
				Description: fmt.Sprintf("step %d", i),
			})
		}
		page.IsLast = startAt+len(page.Values) >= total
		// Serve 5 per page regardless of the requested size.
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, "tok")
	steps, err := c.Project("DEMO").Cases().Steps(context.Background(), "DEMO-T1")
	if err != nil {
		t.Fatalf("Steps: %v", err)
	}
	if len(steps) != total {
		t.Fatalf("got %d steps, want %d", len(steps), total)
	}
	if steps[6].Description != "step 6" {
		t.Errorf("last step: got %q", steps[6].Description)
	}
}

func TestEpochMillis_AutoDetectsUnit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wantS int64
	}{
		{"milliseconds", "1700000000000", 1700000000},
		{"microseconds", "1700000000000000", 1700000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e EpochMillis
			if err := json.Unmarshal([]byte(tt.input), &e); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got := e.Time().Unix(); got != tt.wantS {
				t.Errorf("got %d, want %d", got, tt.wantS)
			}
		})
	}
}
