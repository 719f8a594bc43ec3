package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/smy-101/skillsync/internal/worker"
)

func init() {
	rootCmd.AddCommand(discoverCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover [query]",
	Short: "List skills available from the configured repositories",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return executeDiscover(query)
	},
}

// executeDiscover runs discovery on the background worker and waits for
// the matching result.
func executeDiscover(query string) error {
	w := worker.StartSkills(newService())
	defer w.Close()

	w.Discover(query)
	res, ok := w.Recv()
	if !ok {
		return fmt.Errorf("discovery worker shut down unexpectedly")
	}
	if res.Err != nil {
		return fmt.Errorf("discovery failed: %w", res.Err)
	}

	if len(res.Skills) == 0 {
		fmt.Println("No skills found.")
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
	table.Header("Key", "Name", "Installed", "Description")

	for _, s := range res.Skills {
		installed := ""
		if s.Installed {
			installed = "yes"
		}
		table.Append(s.Key, s.Name, installed, s.Description)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal: %d skills\n", len(res.Skills))
	return nil
}
