package invoker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeTool(t *testing.T, exitCode string) *ExecInvoker {
	t.Helper()
	t.Setenv("NBLBATCH_FAKE_TOOL", "1")
	t.Setenv("NBLBATCH_FAKE_EXIT", exitCode)
	return &ExecInvoker{Command: []string{os.Args[0]}}
}

func TestParseCommand(t *testing.T) {
	t.Setenv("NBL_TOOLS", "/opt/tools")

	tests := []struct {
		name    string
		cmdline string
		want    []string
		wantErr bool
	}{
		{name: "bare name", cmdline: "nbl", want: []string{"nbl"}},
		{name: "relative path", cmdline: "../build/nbl", want: []string{"../build/nbl"}},
		{name: "quoted argument", cmdline: `wine "C:/Program Files/nbl.exe"`, want: []string{"wine", "C:/Program Files/nbl.exe"}},
		{name: "env expansion", cmdline: "$NBL_TOOLS/nbl", want: []string{"/opt/tools/nbl"}},
		{name: "empty", cmdline: "   ", wantErr: true},
		{name: "unbalanced quote", cmdline: `nbl "oops`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.cmdline)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecInvoker_Success(t *testing.T) {
	inv := fakeTool(t, "0")

	var stdout, stderr bytes.Buffer
	result, err := inv.Invoke(context.Background(), []string{"-t", "a.nbl"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.NoError(t, result.Error)
	assert.False(t, result.Failed())
	assert.Equal(t, []string{os.Args[0], "-t", "a.nbl"}, result.Args)
	assert.Equal(t, "args: -t a.nbl\n", stdout.String())
	assert.Equal(t, "fake tool stderr\n", stderr.String())
}

func TestExecInvoker_NonZeroExit(t *testing.T) {
	inv := fakeTool(t, "3")

	var stdout bytes.Buffer
	result, err := inv.Invoke(context.Background(), []string{"-o", "out", "a.nbl"}, &stdout, nil)
	require.NoError(t, err, "a failing tool is reported through the result")

	assert.Equal(t, 3, result.ExitCode)
	assert.NoError(t, result.Error)
	assert.True(t, result.Failed())
	assert.Contains(t, stdout.String(), "-o out a.nbl")
}

func TestExecInvoker_MissingBinary(t *testing.T) {
	inv := &ExecInvoker{Command: []string{filepath.Join(t.TempDir(), "no-such-nbl")}}

	result, err := inv.Invoke(context.Background(), []string{"-t", "a.nbl"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, -1, result.ExitCode)
	assert.Error(t, result.Error)
	assert.True(t, result.Failed())
}

func TestExecInvoker_EmptyCommand(t *testing.T) {
	inv := &ExecInvoker{}

	result, err := inv.Invoke(context.Background(), []string{"-t", "a.nbl"}, nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Failed())
}

func TestExecInvoker_CancelledContext(t *testing.T) {
	inv := fakeTool(t, "0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := inv.Invoke(ctx, []string{"-t", "a.nbl"}, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, result.Failed())
}

func TestNewExecInvoker(t *testing.T) {
	inv, err := NewExecInvoker("../build/nbl")
	require.NoError(t, err)
	assert.Equal(t, []string{"../build/nbl"}, inv.Command)

	_, err = NewExecInvoker("")
	assert.Error(t, err)
}
