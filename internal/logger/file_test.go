package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/nblbatch/internal/models"
)

func TestFileLogger_CreatesRunLogAndSymlink(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	fl, err := NewFileLogger(logDir, "info", "run-123")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	if _, err := os.Stat(fl.Path()); err != nil {
		t.Fatalf("run log missing: %v", err)
	}

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("latest.log symlink missing: %v", err)
	}
	if target != filepath.Base(fl.Path()) {
		t.Errorf("latest.log points to %q, want %q", target, filepath.Base(fl.Path()))
	}
}

func TestFileLogger_ReplacesExistingSymlink(t *testing.T) {
	logDir := t.TempDir()
	if err := os.Symlink("stale.log", filepath.Join(logDir, "latest.log")); err != nil {
		t.Fatal(err)
	}

	fl, err := NewFileLogger(logDir, "info", "run-1")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	target, _ := os.Readlink(filepath.Join(logDir, "latest.log"))
	if target == "stale.log" {
		t.Error("latest.log was not updated")
	}
}

func TestFileLogger_Content(t *testing.T) {
	logDir := t.TempDir()
	fl, err := NewFileLogger(logDir, "info", "run-abc")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	fl.LogDebug("hidden detail")
	fl.LogWarn("mkdir failed")
	fl.LogFileResult(models.FileResult{
		Entry:      models.FileEntry{Path: "src/a/one.nbl"},
		Invocation: &models.InvocationResult{Args: []string{"nbl", "-t", "src/a/one.nbl"}},
	})
	fl.LogFileResult(models.FileResult{
		Entry:      models.FileEntry{Path: "src/a/two.nbl"},
		Invocation: &models.InvocationResult{Args: []string{"nbl", "-t", "src/a/two.nbl"}, ExitCode: 4},
	})
	fl.LogSummary(models.BatchResult{
		RunID:      "run-abc",
		Mode:       models.ModeList,
		Root:       "src",
		TotalFiles: 2,
		Succeeded:  1,
		Failed:     1,
	})

	if err := fl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(fl.Path())
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		"=== nblbatch run run-abc ===",
		"[WARN] mkdir failed",
		"[INFO] src/a/one.nbl: ok [nbl -t src/a/one.nbl]",
		"[WARN] src/a/two.nbl: exit status 4 [nbl -t src/a/two.nbl]",
		"=== LIST SUMMARY ===",
		"Status:       PARTIAL",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("run log missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "hidden detail") {
		t.Error("debug message should be filtered at info level")
	}
}

func TestFileLogger_CloseTwice(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info", "run")
	if err != nil {
		t.Fatal(err)
	}
	if err := fl.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fl.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	fl.LogInfo("after close is dropped")
}
