package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/harrison/nblbatch/internal/filelock"
	"github.com/harrison/nblbatch/internal/invoker"
	"github.com/harrison/nblbatch/internal/models"
	"github.com/harrison/nblbatch/internal/walker"
)

// MirrorDirMode is the mode (before umask) of created mirror directories
const MirrorDirMode os.FileMode = 0777

// ExtractOptions configures an extraction run
type ExtractOptions struct {
	Source string
	Dest   string
	Walk   walker.Options
}

// Extract invokes `nbl -o <dest>/<parent>/<base> <file>` for every regular
// file under opts.Source. The destination is locked for the whole run.
func (r *Runner) Extract(ctx context.Context, opts ExtractOptions) (*models.BatchResult, error) {
	result := r.newResult(models.ModeExtract, opts.Source)

	if err := walker.CheckRoot(opts.Source); err != nil {
		return nil, err
	}

	if !r.DryRun {
		lock := filelock.NewDirLock(opts.Dest)
		if err := lock.TryLock(); err != nil {
			return nil, fmt.Errorf("failed to lock destination: %w", err)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				r.logger.LogWarn(err.Error())
			}
		}()
	}

	walkOpts := opts.Walk
	if rel, ok := lockPathInSource(opts.Source, opts.Dest); ok {
		walkOpts.SkipPaths = append(slices.Clone(walkOpts.SkipPaths), rel)
	}

	r.logger.LogInfo(fmt.Sprintf("extracting %s into %s (run %s)", opts.Source, opts.Dest, r.RunID))

	err := walker.Walk(ctx, opts.Source, walkOpts, func(entry models.FileEntry) error {
		fr := models.FileResult{Entry: entry}
		outDir := entry.MirrorDir(opts.Dest)

		if !r.DryRun {
			if err := os.MkdirAll(outDir, MirrorDirMode); err != nil {
				fr.Warning = &FileError{Path: outDir, Op: "create output directory", Err: err}
				r.logger.LogWarn(fr.Warning.Error())
			}
		}

		return r.invoke(ctx, result, fr, invoker.ExtractArgs(r.Flags, outDir, entry.Path))
	})

	return r.finish(result, err)
}

// lockPathInSource returns the destination lock file's path relative to
// source when the destination lies inside the source tree.
func lockPathInSource(source, dest string) (string, bool) {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return "", false
	}
	absLock, err := filepath.Abs(filepath.Join(dest, filelock.LockFileName))
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absSource, absLock)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
