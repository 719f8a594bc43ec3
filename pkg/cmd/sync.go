package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var syncBestEffort bool

func init() {
	syncCmd.Flags().BoolVar(&syncBestEffort, "best-effort", false,
		"log per-app failures and continue instead of aborting")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-project every installed skill into every enabled application",
	Long: "Re-runs the projection for each installed skill and each application it\n" +
		"is enabled for. Safe to run repeatedly; a correct projection is left as is.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService()
		if syncBestEffort {
			svc.SyncAllEnabledBestEffort()
			color.Green("Sync finished (best effort)")
			return nil
		}
		if err := svc.SyncAllEnabled(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		color.Green("Sync finished")
		return nil
	},
}
