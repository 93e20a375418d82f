// Package batch drives the external tool over a set of files.
//
// A Runner makes a single linear pass: one invocation at a time, each
// starting only after the previous one exited. A failed invocation is
// logged and counted, never fatal. Traversal errors and cancellation stop
// the pass.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/nblbatch/internal/invoker"
	"github.com/harrison/nblbatch/internal/logger"
	"github.com/harrison/nblbatch/internal/models"
)

// Logger receives per-file results and the run summary.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogFileResult(result models.FileResult)
	LogSummary(result models.BatchResult)
}

// Runner runs batches against one Invoker
type Runner struct {
	invoker invoker.Invoker
	logger  Logger

	// Stdout receives listing headers and tool output
	Stdout io.Writer

	// Stderr receives tool diagnostics
	Stderr io.Writer

	// Flags are added to every invocation
	Flags invoker.ToolFlags

	// Strict turns any failed invocation into ErrInvocationsFailed
	Strict bool

	// DryRun skips filesystem side effects (directories, lock)
	DryRun bool

	// RunID identifies the run in logs and reports
	RunID string
}

// NewRunner creates a Runner writing to os.Stdout and os.Stderr.
// The logger parameter is optional and can be nil.
func NewRunner(inv invoker.Invoker, log Logger) *Runner {
	if inv == nil {
		panic("invoker cannot be nil")
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Runner{
		invoker: inv,
		logger:  log,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		RunID:   uuid.New().String(),
	}
}

func (r *Runner) newResult(mode models.Mode, root string) *models.BatchResult {
	return &models.BatchResult{
		RunID:     r.RunID,
		Mode:      mode,
		Root:      root,
		StartedAt: time.Now(),
	}
}

// invoke runs the tool for one file and records the outcome.
// Only cancellation is returned as an error.
func (r *Runner) invoke(ctx context.Context, result *models.BatchResult, fr models.FileResult, args []string) error {
	inv, err := r.invoker.Invoke(ctx, args, r.Stdout, r.Stderr)
	if err != nil {
		return err
	}
	fr.Invocation = inv
	result.Record(fr)
	r.logger.LogFileResult(fr)
	return nil
}

// finish stamps the duration, logs the summary and maps the outcome to an error.
func (r *Runner) finish(result *models.BatchResult, err error) (*models.BatchResult, error) {
	result.Duration = time.Since(result.StartedAt)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		result.Interrupted = true
		err = fmt.Errorf("%s interrupted after %d files: %w", result.Mode, result.TotalFiles, err)
	}

	r.logger.LogSummary(*result)

	if err != nil {
		return result, err
	}
	if r.Strict && result.HasFailures() {
		return result, fmt.Errorf("%w: %d of %d", ErrInvocationsFailed, result.Failed, result.TotalFiles)
	}
	return result, nil
}

// WithInterrupt returns a context cancelled on SIGINT or SIGTERM.
// The in-flight invocation is killed and the runner stops before the next file.
func WithInterrupt(ctx context.Context, log Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			if log != nil {
				log.LogWarn(fmt.Sprintf("received %s, stopping", sig))
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
