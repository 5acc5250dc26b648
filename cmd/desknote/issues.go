package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nhle/desknote/internal/credential"
	"github.com/nhle/desknote/internal/issues"
)

var closeMilestone string

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Manage GitHub issues for the project milestones",
}

var issuesCreateCmd = &cobra.Command{
	Use:   "create <definitions.yaml>",
	Short: "Create milestone issues from a definition file",
	Long: `Reads a YAML definition file and creates its milestone and issues in
the configured repository. Issues whose title already exists are skipped,
so re-running a definition file is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newIssuesClient()
		if err != nil {
			return err
		}

		def, err := issues.LoadDefinition(args[0])
		if err != nil {
			return err
		}

		results, err := client.Bootstrap(cmd.Context(), def)
		for _, r := range results {
			if r.Skipped {
				color.Yellow("skipped  #%-4d %s", r.Number, r.Title)
			} else {
				color.Green("created  #%-4d %s", r.Number, r.Title)
			}
		}
		if err != nil {
			return err
		}

		fmt.Printf("%d issues processed in milestone %q\n", len(results), def.Milestone)
		return nil
	},
}

var issuesCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close all open issues in a milestone",
	RunE: func(cmd *cobra.Command, args []string) error {
		if closeMilestone == "" {
			return fmt.Errorf("--milestone is required")
		}

		client, err := newIssuesClient()
		if err != nil {
			return err
		}

		closed, err := client.CloseMilestone(cmd.Context(), closeMilestone)
		for _, issue := range closed {
			color.Green("closed   #%-4d %s", issue.Number, issue.Title)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%d issues closed in milestone %q\n", len(closed), closeMilestone)
		return nil
	},
}

func init() {
	issuesCloseCmd.Flags().StringVar(&closeMilestone, "milestone", "",
		"milestone title to close")

	issuesCmd.AddCommand(issuesCreateCmd)
	issuesCmd.AddCommand(issuesCloseCmd)
}

// newIssuesClient builds a GitHub client from config and the stored
// token. The GITHUB_TOKEN environment variable takes precedence over the
// keyring.
func newIssuesClient() (*issues.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.GitHub.Repo == "" {
		return nil, fmt.Errorf("github.repo is not configured")
	}

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token, err = credential.Get(credential.GitHubTokenKey)
		if err != nil || token == "" {
			return nil, fmt.Errorf("no GitHub token: set GITHUB_TOKEN or run 'desknote token set'")
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return issues.NewClient(cfg.GitHub.BaseURL, cfg.GitHub.Repo, token, logger), nil
}
