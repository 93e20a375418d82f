package cmd

import (
	"context"
	"fmt"

	"github.com/harrison/nblbatch/internal/batch"
	"github.com/harrison/nblbatch/internal/models"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every file of a tree",
		Long: `List walks --source recursively and, for every regular file, prints
" * <parent>/<base>:" followed by the output of "nbl -t <file>".

Headers and listings go to stdout; logs and the summary go to stderr.

Examples:
  nblbatch list --source /data/aotioffline
  nblbatch list --source in --include '**/*.nbl' > listing.txt`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	addWalkFlags(cmd)
	addCommonFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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
	mergeTreeFlags(cmd, &cfg.List)

	if err := cfg.ValidateList(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s, err := newSession(cmd, cfg, cfg.Binary)
	if err != nil {
		return err
	}

	opts := batch.ListOptions{
		Source: cfg.List.Source,
		Walk:   walkOptions(cfg.List),
	}
	return s.run(cmd.Context(), func(ctx context.Context) (*models.BatchResult, error) {
		return s.runner.List(ctx, opts)
	})
}
