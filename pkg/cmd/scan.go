package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(importCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List unmanaged skill directories found in application directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		unmanaged, err := newService().ScanUnmanaged()
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		if len(unmanaged) == 0 {
			fmt.Println("No unmanaged skill directories found.")
			return nil
		}

		for _, s := range unmanaged {
			fmt.Printf("%s  (%s)  found in: %s\n", s.Directory, s.Name, strings.Join(s.FoundIn, ", "))
		}
		fmt.Printf("\nUse 'skillsync import <directory>...' to adopt them.\n")
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <directory>...",
	Short: "Adopt unmanaged skill directories into the store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imported, err := newService().ImportFromApps(args)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		if len(imported) == 0 {
			fmt.Println("Nothing imported; the named directories were not found in any app.")
			return nil
		}

		for _, s := range imported {
			color.Green("Imported '%s'", s.Directory)
		}
		return nil
	},
}
