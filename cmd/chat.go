package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acuervo/repolens/internal/chat"
	"github.com/acuervo/repolens/internal/config"
	"github.com/acuervo/repolens/internal/gateway"
	"github.com/acuervo/repolens/internal/shell"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Analyze a repository and ask free-form questions about it",
	Long: `Like analyze, but the menu gains a free-form question option.
Questions are answered by the Anthropic API, grounded in the aggregated
repository context and keeping the conversation history for follow-ups.

Requires ANTHROPIC_API_KEY. Set ANTHROPIC_MODEL to override the model.`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		cfg := config.Load()
		logger := cfg.NewLogger(verbose)

		agent, err := chat.New(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, cfg.HTTPTimeout, logger, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}

		session := shell.New(githubGateway, agent, logger, os.Stdin, os.Stdout)
		if err := session.Run(interruptibleContext()); err != nil {
			fmt.Fprintf(os.Stderr, "Session failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
