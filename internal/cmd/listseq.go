package cmd

import (
	"context"
	"fmt"

	"github.com/harrison/nblbatch/internal/batch"
	"github.com/harrison/nblbatch/internal/models"
	"github.com/spf13/cobra"
)

// NewListSeqCommand creates the list-seq command
func NewListSeqCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-seq",
		Short: "List one directory in nmll-<n> sequence order",
		Long: `List-seq lists the files of --dir matching --pattern (not recursive),
ordered by the number after "nmll-" in their names. Files without a number
follow the numbered ones in name order. Names containing --skip are left out.

Each file gets a " * <name>:" header followed by the output of
"nbl -t <file>". The tool defaults to ../build/nbl.

Examples:
  nblbatch list-seq
  nblbatch list-seq --dir testdata --binary /usr/local/bin/nbl
  nblbatch list-seq --skip ''   # list every file`,
		Args: cobra.NoArgs,
		RunE: runListSeq,
	}

	cmd.Flags().String("dir", "", "Directory to scan (default: .)")
	cmd.Flags().String("pattern", "", "Glob selecting files in --dir (default: *.nbl)")
	cmd.Flags().String("skip", "", "Leave out names containing this marker (default: new)")
	addCommonFlags(cmd)

	return cmd
}

func runListSeq(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// --binary overrides list_seq.binary, which has its own default
	binary, err := binaryFlag(cmd)
	if err != nil {
		return err
	}
	if binary != nil {
		cfg.ListSeq.Binary = *binary
	}
	if d := stringFlag(cmd, "dir"); d != nil {
		cfg.ListSeq.Dir = *d
	}
	if p := stringFlag(cmd, "pattern"); p != nil {
		cfg.ListSeq.Pattern = *p
	}
	if s := stringFlag(cmd, "skip"); s != nil {
		cfg.ListSeq.Skip = *s
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.ListSeq.Dir == "" {
		cfg.ListSeq.Dir = "."
	}

	s, err := newSession(cmd, cfg, cfg.ListSeqBinary())
	if err != nil {
		return err
	}

	opts := batch.ListSeqOptions{
		Dir:     cfg.ListSeq.Dir,
		Pattern: cfg.ListSeq.Pattern,
		Skip:    cfg.ListSeq.Skip,
	}
	return s.run(cmd.Context(), func(ctx context.Context) (*models.BatchResult, error) {
		return s.runner.ListSeq(ctx, opts)
	})
}
