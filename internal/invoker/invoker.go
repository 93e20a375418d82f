// Package invoker runs the external nbl tool.
//
// The tool is an opaque process boundary: callers hand it an argument list
// and get back an exit code. Output is streamed straight to the writers
// supplied by the caller, never buffered here, so a header written before
// Invoke is always followed by that invocation's output.
package invoker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/harrison/nblbatch/internal/models"
	"mvdan.cc/sh/v3/shell"
)

// DefaultCommand is the tool command used when none is configured
const DefaultCommand = "nbl"

// Invoker runs the tool once with the given arguments.
// args excludes the tool command itself. The returned result is never nil.
// A non-nil error is returned only when ctx was cancelled; every other
// failure (missing binary, non-zero exit) is reported through the result.
type Invoker interface {
	Invoke(ctx context.Context, args []string, stdout, stderr io.Writer) (*models.InvocationResult, error)
}

// ExecInvoker runs the tool as a child process
type ExecInvoker struct {
	// Command is the tool command line split into words, program first
	Command []string

	// Dir is the child's working directory (empty = current directory)
	Dir string
}

// NewExecInvoker creates an ExecInvoker from a command line such as
// "nbl", "../build/nbl" or `wine "$TOOLS/nbl.exe"`.
func NewExecInvoker(cmdline string) (*ExecInvoker, error) {
	command, err := ParseCommand(cmdline)
	if err != nil {
		return nil, err
	}
	return &ExecInvoker{Command: command}, nil
}

// ParseCommand splits a tool command line into words using shell quoting
// rules, expanding $VAR references from the environment.
func ParseCommand(cmdline string) ([]string, error) {
	fields, err := shell.Fields(cmdline, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid tool command %q: %w", cmdline, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("tool command is empty")
	}
	return fields, nil
}

// Invoke runs the tool and blocks until it exits.
func (inv *ExecInvoker) Invoke(ctx context.Context, args []string, stdout, stderr io.Writer) (*models.InvocationResult, error) {
	argv := make([]string, 0, len(inv.Command)+len(args))
	argv = append(argv, inv.Command...)
	argv = append(argv, args...)

	result := &models.InvocationResult{Args: argv, ExitCode: -1}
	if len(inv.Command) == 0 {
		result.Error = fmt.Errorf("tool command is empty")
		return result, nil
	}

	startTime := time.Now()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	result.Duration = time.Since(startTime)

	if err == nil {
		result.ExitCode = 0
		return result, nil
	}

	// The process may have exited on its own just as ctx was cancelled;
	// cancellation wins so the caller stops the batch.
	if ctxErr := ctx.Err(); ctxErr != nil {
		result.Error = ctxErr
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode == -1 {
			// Killed by a signal
			result.Error = err
		}
		return result, nil
	}

	result.Error = err
	return result, nil
}
