package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <directory|id>",
	Short: "Remove a skill from every application and from the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newService().Uninstall(args[0]); err != nil {
			return fmt.Errorf("uninstall failed: %w", err)
		}
		color.Green("Uninstalled '%s'", args[0])
		return nil
	},
}
