package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/nblbatch/internal/models"
)

// FileLogger writes a per-run log file in a log directory.
// Each run gets run-YYYYMMDD-HHMMSS.log and latest.log is pointed at it.
// Unlike ConsoleLogger it records every invocation's argv.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates the log directory if needed, opens a timestamped run
// log and updates the latest.log symlink.
func NewFileLogger(logDir, logLevel, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	ts := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", ts))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog(fmt.Sprintf("=== nblbatch run %s ===\n", runID))
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message.
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogFileResult records the invocation's argv, exit code and duration.
// Failures are written at WARN, successes at INFO.
func (fl *FileLogger) LogFileResult(result models.FileResult) {
	level := "INFO"
	if result.Failed() {
		level = "WARN"
	}
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	var argv string
	if result.Invocation != nil {
		argv = strings.Join(result.Invocation.Args, " ")
	}
	message := fmt.Sprintf("%s: %s [%s] (%.1fs)",
		result.Entry.Path,
		result.Invocation.Reason(),
		argv,
		durationOf(result.Invocation).Seconds(),
	)
	if result.Warning != nil {
		message += fmt.Sprintf(" warning: %v", result.Warning)
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

func durationOf(r *models.InvocationResult) time.Duration {
	if r == nil {
		return 0
	}
	return r.Duration
}

// LogSummary writes the run summary at INFO level.
func (fl *FileLogger) LogSummary(result models.BatchResult) {
	if !fl.shouldLog("info") {
		return
	}

	status := "SUCCESS"
	switch {
	case result.Interrupted:
		status = "INTERRUPTED"
	case result.Failed > 0 && result.Succeeded == 0:
		status = "FAILED"
	case result.Failed > 0:
		status = "PARTIAL"
	}

	ts := timestamp()
	message := fmt.Sprintf(
		"\n[%s] === %s SUMMARY ===\n"+
			"[%s] Run:          %s\n"+
			"[%s] Root:         %s\n"+
			"[%s] Files:        %d\n"+
			"[%s] Succeeded:    %d\n"+
			"[%s] Failed:       %d\n"+
			"[%s] Skipped:      %d\n"+
			"[%s] Warnings:     %d\n"+
			"[%s] Total time:   %.1fs\n"+
			"[%s] Status:       %s\n"+
			"[%s] Completed at: %s\n",
		ts, strings.ToUpper(string(result.Mode)),
		ts, result.RunID,
		ts, result.Root,
		ts, result.TotalFiles,
		ts, result.Succeeded,
		ts, result.Failed,
		ts, result.Skipped,
		ts, result.Warnings,
		ts, result.Duration.Seconds(),
		ts, status,
		ts, time.Now().Format(time.RFC3339),
	)
	fl.writeRunLog(message)
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}
