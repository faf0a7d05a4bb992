package app

import (
	"os"

	"github.com/per2jensen/clonepulse/internal/config"
	"github.com/spf13/cobra"
)

func newFetchCmd(cfg config.Application, deps *Dependencies) *cobra.Command {
	var user string
	var repo string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch daily clone traffic from GitHub and update the record store",
		Long: "Fetch the last 14 days of clone counts from the GitHub traffic API, " +
			"upsert them into the local record store, and refresh the badge descriptors.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.FetchService.Fetch(cmd.Context(), user, repo)
		},
	}

	cmd.Flags().StringVar(&user, "user", defaultString(os.Getenv("GITHUB_USER"), cfg.GitHub.User), "GitHub user or organization")
	cmd.Flags().StringVar(&repo, "repo", defaultString(os.Getenv("GITHUB_REPO"), cfg.GitHub.Repo), "GitHub repository name")

	return cmd
}

func defaultString(value string, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
