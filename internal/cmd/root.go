package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for nblbatch
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nblbatch",
		Short: "Batch driver for the nbl tool",
		Long: `nblbatch runs the nbl tool once per file over a set of .nbl files.

extract mirrors a source tree into a destination, one directory per file,
and runs "nbl -o <dir> <file>" for each. list prints a header and the
"nbl -t" listing for every file of a tree. list-seq lists one directory
in nmll-<n> sequence order.

Configuration is loaded from .nblbatch/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
	}

	cmd.AddCommand(NewExtractCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewListSeqCommand())

	return cmd
}
