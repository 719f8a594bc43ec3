package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smy-101/skillsync/internal/types"
)

var (
	enableApp  string
	disableApp string
)

func init() {
	enableCmd.Flags().StringVar(&enableApp, "app", string(types.AppClaude),
		"target application (claude, codex, gemini)")
	disableCmd.Flags().StringVar(&disableApp, "app", string(types.AppClaude),
		"target application (claude, codex, gemini)")
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

var enableCmd = &cobra.Command{
	Use:   "enable <directory|id>",
	Short: "Enable an installed skill for one application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeToggle(args[0], enableApp, true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <directory|id>",
	Short: "Disable an installed skill for one application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeToggle(args[0], disableApp, false)
	},
}

func executeToggle(directoryOrID, appName string, enabled bool) error {
	app, err := types.ParseApp(appName)
	if err != nil {
		return err
	}

	if err := newService().ToggleApp(directoryOrID, app, enabled); err != nil {
		return fmt.Errorf("toggle failed: %w", err)
	}

	if enabled {
		color.Green("Enabled '%s' for %s", directoryOrID, app)
	} else {
		color.Yellow("Disabled '%s' for %s", directoryOrID, app)
	}
	return nil
}
