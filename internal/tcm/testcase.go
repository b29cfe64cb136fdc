package tcm

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ProjectScope binds operations to one project key.
type ProjectScope struct {
	client     *Client
	projectKey string
}

// Cases returns the test-case scope for this project.
func (p *ProjectScope) Cases() *CaseScope {
	return &CaseScope{project: p}
}

// Suites returns the suite scope for this project.
func (p *ProjectScope) Suites() *SuiteScope {
	return &SuiteScope{project: p}
}

// CaseScope provides operations on test cases within a project.
type CaseScope struct {
	project *ProjectScope
}

// ListOption configures filter and pagination for case listing.
type ListOption func(params url.Values)

// List returns one page of test cases matching the given filters.
// Uses the /api/v2/testcases endpoint.
func (s *CaseScope) List(ctx context.Context, opts ...ListOption) (*PagedTestCases, error) {
	params := url.Values{}
	params.Set("projectKey", s.project.projectKey)
	for _, opt := range opts {
		opt(params)
	}

	u := fmt.Sprintf("%s/api/v2/testcases?%s", s.project.client.baseURL, params.Encode())

	var paged PagedTestCases
	if err := s.project.client.doJSON(ctx, "GET", u, "list test cases", nil, &paged); err != nil {
		return nil, err
	}
	return &paged, nil
}

// ListAll returns all test cases matching the filters, auto-paginating.
func (s *CaseScope) ListAll(ctx context.Context, opts ...ListOption) ([]TestCaseResource, error) {
	var all []TestCaseResource
	startAt := 0
	pageSize := 100

	for {
		pageOpts := append(opts, WithMaxResults(pageSize), WithStartAt(startAt))
		paged, err := s.List(ctx, pageOpts...)
		if err != nil {
			return nil, err
		}
		all = append(all, paged.Values...)
		if paged.IsLast || len(paged.Values) == 0 {
			break
		}
		startAt += len(paged.Values)
	}
	return all, nil
}

// Get returns a single test case by key.
func (s *CaseScope) Get(ctx context.Context, key string) (*TestCaseResource, error) {
	u := fmt.Sprintf("%s/api/v2/testcases/%s", s.project.client.baseURL, url.PathEscape(key))

	var tc TestCaseResource
	if err := s.project.client.doJSON(ctx, "GET", u, "get test case", nil, &tc); err != nil {
		return nil, err
	}
	return &tc, nil
}

// Steps returns all scripted steps of a test case, auto-paginating.
func (s *CaseScope) Steps(ctx context.Context, key string) ([]StepResource, error) {
	var all []StepResource
	startAt := 0
	pageSize := 100

	for {
		u := fmt.Sprintf("%s/api/v2/testcases/%s/teststeps?startAt=%d&maxResults=%d",
			s.project.client.baseURL, url.PathEscape(key), startAt, pageSize)

		var paged PagedSteps
		if err := s.project.client.doJSON(ctx, "GET", u, "list test steps", nil, &paged); err != nil {
			return nil, err
		}
		all = append(all, paged.Values...)
		if paged.IsLast || len(paged.Values) == 0 {
			break
		}
		startAt += len(paged.Values)
	}
	return all, nil
}

// SuiteScope provides read operations on suites within a project.
type SuiteScope struct {
	project *ProjectScope
}

// List returns all suites of the project, auto-paginating.
func (s *SuiteScope) List(ctx context.Context) ([]SuiteResource, error) {
	var all []SuiteResource
	startAt := 0
	pageSize := 100

	for {
		u := fmt.Sprintf("%s/api/v2/suites?projectKey=%s&startAt=%d&maxResults=%d",
			s.project.client.baseURL, url.QueryEscape(s.project.projectKey), startAt, pageSize)

		var paged PagedSuites
		if err := s.project.client.doJSON(ctx, "GET", u, "list suites", nil, &paged); err != nil {
			return nil, err
		}
		all = append(all, paged.Values...)
		if paged.IsLast || len(paged.Values) == 0 {
			break
		}
		startAt += len(paged.Values)
	}
	return all, nil
}

// --- Case listing options ---

// WithSuiteID filters cases by suite.
func WithSuiteID(id int) ListOption {
	return func(p url.Values) { p.Set("suiteId", strconv.Itoa(id)) }
}

// WithStatus filters cases by lifecycle status (e.g. "Approved").
func WithStatus(status string) ListOption {
	return func(p url.Values) { p.Set("status", status) }
}

// WithMaxResults sets the page size.
func WithMaxResults(n int) ListOption {
	return func(p url.Values) { p.Set("maxResults", strconv.Itoa(n)) }
}

// WithStartAt sets the pagination offset.
func WithStartAt(n int) ListOption {
	return func(p url.Values) { p.Set("startAt", strconv.Itoa(n)) }
}
