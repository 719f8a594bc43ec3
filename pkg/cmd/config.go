package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smy-101/skillsync/internal/settings"
	"github.com/smy-101/skillsync/internal/types"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSyncMethodCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := newService().GetSyncMethod()
		if err != nil {
			return err
		}

		fmt.Println("config file:", viper.ConfigFileUsed())
		fmt.Println("github_token:", viper.GetString("github_token"))
		fmt.Println("proxy:", viper.GetString("proxy"))
		fmt.Println("claude_dir:", viper.GetString("claude_dir"))
		fmt.Println("codex_dir:", viper.GetString("codex_dir"))
		fmt.Println("gemini_dir:", viper.GetString("gemini_dir"))
		fmt.Println("sync method:", method)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		switch key {
		case "github_token", "proxy", "claude_dir", "codex_dir", "gemini_dir", "log_level":
		default:
			return fmt.Errorf("unknown config key '%s'", key)
		}

		if err := settings.Set(key, value); err != nil {
			return err
		}
		color.Green("Set %s", key)
		return nil
	},
}

var configSyncMethodCmd = &cobra.Command{
	Use:   "sync-method [auto|symlink|copy]",
	Short: "Show or set the projection strategy",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService()

		if len(args) == 0 {
			method, err := svc.GetSyncMethod()
			if err != nil {
				return err
			}
			fmt.Println(method)
			return nil
		}

		method, err := types.ParseSyncMethod(args[0])
		if err != nil {
			return err
		}
		if err := svc.SetSyncMethod(method); err != nil {
			return err
		}
		color.Green("Sync method set to %s", method)
		return nil
	},
}
