// Package cmd wires the quill command tree. Every command builds its
// dependencies through the shell in shell.go, so the session store, the
// authenticated transport and the credential store are constructed the
// same way everywhere.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/quillforge/quill/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Author tools for the QuillForge publishing platform",
	Long: `quill is the author-side client for the QuillForge self-publishing
platform. It manages your author session, your book catalog, your
earnings and your notifications from the terminal.

Start with 'quill auth login', then 'quill dashboard' for an overview.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			log.SetDefaultLogger(log.Verbose())
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context so
// commands stop on interrupt
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text, json, yaml)")
}
