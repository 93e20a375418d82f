package batch

import (
	"context"
	"fmt"

	"github.com/harrison/nblbatch/internal/invoker"
	"github.com/harrison/nblbatch/internal/models"
	"github.com/harrison/nblbatch/internal/walker"
)

// ListOptions configures a recursive listing run
type ListOptions struct {
	Source string
	Walk   walker.Options
}

// List writes " * <parent>/<base>:" for every regular file under
// opts.Source, each followed by the output of `nbl -t <file>`.
func (r *Runner) List(ctx context.Context, opts ListOptions) (*models.BatchResult, error) {
	result := r.newResult(models.ModeList, opts.Source)

	if err := walker.CheckRoot(opts.Source); err != nil {
		return nil, err
	}

	r.logger.LogDebug(fmt.Sprintf("listing %s (run %s)", opts.Source, r.RunID))

	err := walker.Walk(ctx, opts.Source, opts.Walk, func(entry models.FileEntry) error {
		writeHeader(r.Stdout, entry.Label())
		return r.invoke(ctx, result, models.FileResult{Entry: entry}, invoker.ListArgs(r.Flags, entry.Path))
	})

	return r.finish(result, err)
}
