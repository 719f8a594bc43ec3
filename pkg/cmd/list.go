package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/smy-101/skillsync/internal/types"
)

const (
	dateFormat = "2006-01-02 15:04"
	emptyMsg   = "No skills installed yet."
	usageHint  = "Use 'skillsync install <spec>' to install a skill."
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all installed skills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeList()
	},
}

// executeList loads the index and displays a table of all installed skills.
func executeList() error {
	skills, err := newService().ListInstalled()
	if err != nil {
		return fmt.Errorf("failed to list installed skills: %w", err)
	}

	if len(skills) == 0 {
		fmt.Println(emptyMsg)
		fmt.Println(usageHint)
		return nil
	}

	cnf := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(cnf))
	table.Header("Directory", "Name", "Apps", "Origin", "Installed At")

	for _, s := range skills {
		installedAt := time.Unix(s.InstalledAt, 0).Format(dateFormat)
		table.Append(s.Directory, s.Name, appsColumn(s.Apps), originColumn(s), installedAt)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal: %d skills\n", len(skills))
	return nil
}

func appsColumn(apps types.AppFlags) string {
	var enabled []string
	for _, app := range types.AllApps() {
		if apps.EnabledFor(app) {
			enabled = append(enabled, string(app))
		}
	}
	if len(enabled) == 0 {
		return "-"
	}
	return strings.Join(enabled, ",")
}

func originColumn(s types.InstalledSkill) string {
	if s.RepoOwner == "" && s.RepoName == "" {
		return "local"
	}
	return s.RepoOwner + "/" + s.RepoName
}
