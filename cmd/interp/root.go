package main

import (
	"log"

	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	verbose bool
}

// logf logs only in verbose mode.
func (o *rootOptions) logf(format string, args ...any) {
	if o.verbose {
		log.Printf(format, args...)
	}
}

// newRootCommand creates the root command with all subcommands attached.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "interp",
		Short:         "Optimal 32x interpolation tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		resampleCommand(opts),
		modCommand(opts),
		analyzeCommand(opts),
	)

	return rootCmd
}
