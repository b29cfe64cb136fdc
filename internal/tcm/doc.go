// Package tcm provides a scope-based client for the test case management
// REST API (v2).
//
// Usage:
//
//	client, err := tcm.New(baseURL, token, tcm.WithTimeout(30*time.Second))
//	cases, err := client.Project("MOB").Cases().List(ctx, tcm.WithSuiteID(42))
//	steps, err := client.Project("MOB").Cases().Steps(ctx, "MOB-T101")
//	input, err := tcm.NewFetcher(client, "MOB").FetchSuite(ctx, 42, 250)
//
// The Fetcher pulls per-case step detail concurrently with bounded fan-out
// and hands the analysis engine a complete in-memory list; the engine itself
// never performs I/O.
package tcm
