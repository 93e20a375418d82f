package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/harrison/nblbatch/internal/models"
	"github.com/stretchr/testify/require"
)

// fakeInvoker records every call and writes "output <file>" to stdout,
// where <file> is the last argument.
type fakeInvoker struct {
	mu    sync.Mutex
	calls [][]string

	// failOn maps a file argument to the exit code it should report
	failOn map[string]int

	// cancelAfter cancels the context after this many calls (0 = never)
	cancelAfter int
	cancel      context.CancelFunc
}

func (f *fakeInvoker) Invoke(ctx context.Context, args []string, stdout, stderr io.Writer) (*models.InvocationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	argv := append([]string{"nbl"}, args...)
	result := &models.InvocationResult{Args: argv}
	if err := ctx.Err(); err != nil {
		result.ExitCode = -1
		result.Error = err
		return result, err
	}

	f.calls = append(f.calls, args)
	file := args[len(args)-1]
	fmt.Fprintf(stdout, "output %s\n", file)

	if code, ok := f.failOn[file]; ok {
		fmt.Fprintf(stderr, "nbl: cannot read %s\n", file)
		result.ExitCode = code
	}

	if f.cancelAfter > 0 && len(f.calls) == f.cancelAfter {
		f.cancel()
	}
	return result, nil
}

// files returns the last argument of every recorded call.
func (f *fakeInvoker) files() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	files := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		files = append(files, c[len(c)-1])
	}
	return files
}

// recordingLogger keeps messages by level.
type recordingLogger struct {
	mu      sync.Mutex
	warns   []string
	results []models.FileResult
	summary *models.BatchResult
}

func (l *recordingLogger) LogDebug(string) {}
func (l *recordingLogger) LogInfo(string)  {}

func (l *recordingLogger) LogWarn(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, message)
}

func (l *recordingLogger) LogFileResult(result models.FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, result)
}

func (l *recordingLogger) LogSummary(result models.BatchResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.summary = &result
}

func newTestRunner(inv *fakeInvoker, log *recordingLogger) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	r := NewRunner(inv, log)
	var stdout, stderr bytes.Buffer
	r.Stdout = &stdout
	r.Stderr = &stderr
	return r, &stdout, &stderr
}

// makeTree creates the given files (slash-separated, relative) under a
// fresh temp directory and returns its path.
func makeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("nbl"), 0644))
	}
	return root
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestNewRunner(t *testing.T) {
	r := NewRunner(&fakeInvoker{}, nil)
	require.NotNil(t, r.logger)
	require.NotEmpty(t, r.RunID)
	require.Equal(t, os.Stdout, r.Stdout)

	other := NewRunner(&fakeInvoker{}, nil)
	require.NotEqual(t, r.RunID, other.RunID)

	require.Panics(t, func() { NewRunner(nil, nil) })
}
