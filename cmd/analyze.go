package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acuervo/repolens/internal/config"
	"github.com/acuervo/repolens/internal/gateway"
	"github.com/acuervo/repolens/internal/shell"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a repository with the local reports",
	Long: `Starts an interactive session: prompts for an owner/repo pair,
fetches its public metadata once and offers a menu of reports. Works
without any API key; a GITHUB_TOKEN raises the request ceiling.`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		cfg := config.Load()
		logger := cfg.NewLogger(verbose)

		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, cfg.HTTPTimeout, logger, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}

		session := shell.New(githubGateway, nil, logger, os.Stdin, os.Stdout)
		if err := session.Run(interruptibleContext()); err != nil {
			fmt.Fprintf(os.Stderr, "Session failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
