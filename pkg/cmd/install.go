package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smy-101/skillsync/internal/types"
	"github.com/smy-101/skillsync/internal/worker"
)

var installApp string

func init() {
	installCmd.Flags().StringVar(&installApp, "app", string(types.AppClaude),
		"target application (claude, codex, gemini)")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <spec>",
	Short: "Install a skill for one application",
	Long: "Install a skill identified either by its full key (owner/name:directory)\n" +
		"or by a bare directory name that is unique across all repositories.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.ParseApp(installApp)
		if err != nil {
			return err
		}
		return executeInstall(args[0], app)
	},
}

// executeInstall dispatches the install to the background worker so the
// download never blocks the command's interactive loop, then waits for the
// result keyed by spec.
func executeInstall(spec string, app types.AppType) error {
	w := worker.StartSkills(newService())
	defer w.Close()

	w.Install(spec, app)
	res, ok := w.Recv()
	if !ok {
		return fmt.Errorf("install worker shut down unexpectedly")
	}
	if res.Err != nil {
		return fmt.Errorf("install failed: %w", res.Err)
	}

	color.Green("Installed '%s' for %s", res.Installed.Directory, app)
	return nil
}
