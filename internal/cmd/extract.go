package cmd

import (
	"context"
	"fmt"

	"github.com/harrison/nblbatch/internal/batch"
	"github.com/harrison/nblbatch/internal/models"
	"github.com/spf13/cobra"
)

// NewExtractCommand creates the extract command
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract every file of a tree into mirrored directories",
		Long: `Extract walks --source recursively and, for every regular file, creates
<dest>/<parent>/<base> and runs "nbl -o <dest>/<parent>/<base> <file>".

<parent> is the name of the file's immediate directory, so files with the
same parent and base name in different subtrees share a directory.

A failed invocation is logged and the walk continues; use --strict to exit
non-zero when any invocation failed. The destination is locked while the
run is in progress.

Examples:
  nblbatch extract --source /data/aotioffline --dest data
  nblbatch extract --source in --dest out --exclude '**/old/**'
  nblbatch extract --source in --dest out --dry-run`,
		Args: cobra.NoArgs,
		RunE: runExtract,
	}

	addWalkFlags(cmd)
	cmd.Flags().String("dest", "", "Destination root for mirrored directories")
	addCommonFlags(cmd)

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	binary, err := binaryFlag(cmd)
	if err != nil {
		return err
	}
	if binary != nil {
		cfg.Binary = *binary
	}
	mergeTreeFlags(cmd, &cfg.Extract.TreeConfig)
	if d := stringFlag(cmd, "dest"); d != nil {
		cfg.Extract.Dest = *d
	}

	if err := cfg.ValidateExtract(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s, err := newSession(cmd, cfg, cfg.Binary)
	if err != nil {
		return err
	}

	opts := batch.ExtractOptions{
		Source: cfg.Extract.Source,
		Dest:   cfg.Extract.Dest,
		Walk:   walkOptions(cfg.Extract.TreeConfig),
	}
	return s.run(cmd.Context(), func(ctx context.Context) (*models.BatchResult, error) {
		return s.runner.Extract(ctx, opts)
	})
}
