package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repoexplain",
		Short: "Explain a GitHub repository from its README",
		Long: `repoexplain downloads the README of a GitHub repository and prints a short
report: what the project does, the inferred technology stack, how to run it
and which documentation gaps were found.

Set GITHUB_TOKEN (or REPOEXPLAIN_TOKEN) to raise the API rate limit.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewExplainCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}
