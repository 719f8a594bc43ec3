package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/smy-101/skillsync/internal/discovery"
)

var repoSkillsPath string

func init() {
	repoAddCmd.Flags().StringVar(&repoSkillsPath, "skills-path", "",
		"subdirectory inside the repo to scan for skills")
	repoCmd.AddCommand(repoAddCmd)
	repoCmd.AddCommand(repoRemoveCmd)
	repoCmd.AddCommand(repoListCmd)
	rootCmd.AddCommand(repoCmd)
}

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage skill repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var repoAddCmd = &cobra.Command{
	Use:   "add <owner/name[@branch] | url>",
	Short: "Add or update a skill repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := discovery.ParseRepoSpec(args[0])
		if err != nil {
			return err
		}
		repo.SkillsPath = strings.Trim(repoSkillsPath, "/")

		if err := newService().UpsertRepo(repo); err != nil {
			return fmt.Errorf("failed to save repo: %w", err)
		}
		color.Green("Added repo %s/%s@%s", repo.Owner, repo.Name, repo.Branch)
		return nil
	},
}

var repoRemoveCmd = &cobra.Command{
	Use:   "remove <owner/name>",
	Short: "Remove a skill repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, name, ok := strings.Cut(args[0], "/")
		if !ok || owner == "" || name == "" {
			return fmt.Errorf("invalid repo '%s' (use owner/name)", args[0])
		}

		if err := newService().RemoveRepo(owner, name); err != nil {
			return fmt.Errorf("failed to remove repo: %w", err)
		}
		color.Yellow("Removed repo %s/%s", owner, name)
		return nil
	},
}

var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured skill repositories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, err := newService().ListRepos()
		if err != nil {
			return fmt.Errorf("failed to list repos: %w", err)
		}

		if len(repos) == 0 {
			fmt.Println("No repositories configured.")
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
		table.Header("Owner", "Name", "Branch", "Enabled", "Skills Path")

		for _, r := range repos {
			enabled := ""
			if r.Enabled {
				enabled = "yes"
			}
			table.Append(r.Owner, r.Name, r.Branch, enabled, r.SkillsPath)
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		return nil
	},
}
