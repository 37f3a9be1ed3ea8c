// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gssoc-leaderbot",
	Short: "A Discord bot that reports GitHub contribution activity as tiered scores.",
	Long: `gssoc-leaderbot is a Discord bot for open-source programs that score merged
pull requests by difficulty label. It answers !github, !gssoc and !compare
commands with activity summaries fetched live from the GitHub search API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
