package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dupscope/internal/format"
	"dupscope/internal/tcm"
)

var casesFlags struct {
	project string
	suiteID int
	status  string
}

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List a project's test cases",
	Long:  "List test cases from the TCM instance, optionally filtered by suite or status.",
	RunE:  runCases,
}

func init() {
	f := casesCmd.Flags()
	f.StringVar(&casesFlags.project, "project", "", "Project key (default: configured project_key)")
	f.IntVar(&casesFlags.suiteID, "suite", 0, "Filter by suite ID")
	f.StringVar(&casesFlags.status, "status", "", "Filter by lifecycle status")
}

func runCases(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	project := casesFlags.project
	if project == "" {
		project = cfg.ProjectKey
	}
	if project == "" {
		return fmt.Errorf("a project key is required\n\nUsage: dupscope cases --project <KEY>")
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var opts []tcm.ListOption
	if casesFlags.suiteID > 0 {
		opts = append(opts, tcm.WithSuiteID(casesFlags.suiteID))
	}
	if casesFlags.status != "" {
		opts = append(opts, tcm.WithStatus(casesFlags.status))
	}

	cases, err := client.Project(project).Cases().ListAll(cmd.Context(), opts...)
	if err != nil {
		return err
	}

	t := format.NewTable(format.ASCII)
	t.Header("Key", "Name", "Status", "Automation")
	for _, tc := range cases {
		t.Row(tc.Key, tc.Name, tc.Status, tc.AutomationStatus)
	}
	t.Columns(format.ColumnConfig{Number: 2, MaxWidth: 60})
	fmt.Println(t.String())
	fmt.Printf("%d case(s)\n", len(cases))
	return nil
}
