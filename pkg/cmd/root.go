// Package cmd wires the skillsync CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smy-101/skillsync/internal/discovery"
	"github.com/smy-101/skillsync/internal/logging"
	"github.com/smy-101/skillsync/internal/settings"
	"github.com/smy-101/skillsync/internal/skill"
)

var rootCmd = &cobra.Command{
	Use:   "skillsync",
	Short: "Manage agent skills across claude, codex and gemini",
	Long: "skillsync keeps one canonical copy of every installed skill and projects\n" +
		"it into each application's skills directory via symlink or copy.",

	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService builds the fully wired skill service used by every command.
func newService() *skill.Service {
	s := settings.Get()
	client := discovery.NewClient(s.GitHubToken, s.Proxy)
	svc := skill.NewService(discovery.New(client))
	svc.SetLogger(logging.New(viper.GetString("log_level")))
	return svc
}
