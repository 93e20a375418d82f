package invoker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/harrison/nblbatch/internal/models"
	"mvdan.cc/sh/v3/syntax"
)

// DryRunInvoker prints the command line it would run instead of running it.
// Every invocation reports exit code 0.
type DryRunInvoker struct {
	Command []string
}

// NewDryRunInvoker creates a DryRunInvoker from a tool command line.
func NewDryRunInvoker(cmdline string) (*DryRunInvoker, error) {
	command, err := ParseCommand(cmdline)
	if err != nil {
		return nil, err
	}
	return &DryRunInvoker{Command: command}, nil
}

// Invoke writes the quoted command line to stdout.
func (d *DryRunInvoker) Invoke(ctx context.Context, args []string, stdout, stderr io.Writer) (*models.InvocationResult, error) {
	argv := make([]string, 0, len(d.Command)+len(args))
	argv = append(argv, d.Command...)
	argv = append(argv, args...)

	result := &models.InvocationResult{Args: argv}
	if err := ctx.Err(); err != nil {
		result.ExitCode = -1
		result.Error = err
		return result, err
	}

	if stdout != nil {
		fmt.Fprintln(stdout, QuoteArgs(argv))
	}
	return result, nil
}

// QuoteArgs renders argv as a single shell-safe command line.
func QuoteArgs(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			q = fmt.Sprintf("%q", arg)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
