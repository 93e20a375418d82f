package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/harrison/nblbatch/internal/invoker"
	"github.com/harrison/nblbatch/internal/models"
	"github.com/harrison/nblbatch/internal/sequence"
)

// ListSeqOptions configures a sequence-ordered listing of one directory
type ListSeqOptions struct {
	Dir     string
	Pattern string // Glob selecting files in Dir
	Skip    string // Names containing this marker are not listed
}

// ListSeq lists the files of opts.Dir matching opts.Pattern in sequence-key
// order, skipping names that contain opts.Skip. Each file gets a
// " * <name>:" header followed by the output of `nbl -t <path>`.
func (r *Runner) ListSeq(ctx context.Context, opts ListSeqOptions) (*models.BatchResult, error) {
	result := r.newResult(models.ModeListSeq, opts.Dir)

	pattern := opts.Pattern
	if pattern == "" {
		pattern = sequence.DefaultPattern
	}

	names, err := sequence.Discover(opts.Dir, pattern)
	if err != nil {
		return nil, err
	}

	files := sequence.Sort(names)
	r.logger.LogDebug(fmt.Sprintf("found %d files matching %s in %s", len(files), pattern, opts.Dir))

	for _, f := range files {
		if sequence.Skipped(f.Name, opts.Skip) {
			result.Skipped++
			r.logger.LogDebug(fmt.Sprintf("skipping %s", f.Name))
			continue
		}

		if err := ctx.Err(); err != nil {
			return r.finish(result, err)
		}

		path := filepath.Join(opts.Dir, f.Name)
		fr := models.FileResult{Entry: models.NewFileEntry(opts.Dir, path)}
		if !f.Key.Valid {
			fr.Warning = &FileError{Path: f.Name, Op: "read sequence key", Err: errNoSequenceKey}
			r.logger.LogWarn(fr.Warning.Error())
		}

		writeHeader(r.Stdout, f.Name)
		if err := r.invoke(ctx, result, fr, invoker.ListArgs(r.Flags, path)); err != nil {
			return r.finish(result, err)
		}
	}

	return r.finish(result, nil)
}

var errNoSequenceKey = errors.New("no nmll-<n> key, ordered by name after numbered files")

func writeHeader(w io.Writer, label string) {
	fmt.Fprintf(w, " * %s:\n", label)
}
