// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "repolens",
	Short: "Interactive analyzer for public GitHub repositories.",
	Long: `repolens fetches public metadata about a GitHub repository
(contributors, commits, file tree, issues, languages) and produces
human-readable reports: top contributors, commit velocity, the most
complex code area, documentation coverage and an executive summary.

The chat command additionally answers free-form questions about the
repository through the Anthropic API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// interruptibleContext returns a context plus a handler that turns Ctrl-C
// into a graceful goodbye instead of a bare process kill. The session
// blocks on stdin most of the time, so the handler exits directly.
func interruptibleContext() context.Context {
	ctx := context.Background()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Println("\n\nInterrupted by the user. Goodbye!")
		os.Exit(0)
	}()
	return ctx
}
