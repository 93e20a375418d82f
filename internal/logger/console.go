// Package logger provides logging implementations for nblbatch runs.
//
// Loggers report per-file invocation results and the end-of-run summary.
// They never write to the stream carrying listing output, so headers and
// tool output stay clean on stdout while diagnostics go elsewhere.
// Implementations are thread-safe.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/harrison/nblbatch/internal/models"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is enabled only when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Honors NO_COLOR through color.NoColor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

func colorLevel(level string) string {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogFileResult logs the outcome of one invocation.
// Failures are logged at WARN, successes at DEBUG.
// Format: "[HH:MM:SS] [WARN] <path>: <reason>"
func (cl *ConsoleLogger) LogFileResult(result models.FileResult) {
	if result.Failed() {
		cl.LogWarn(fmt.Sprintf("%s: %s", result.Entry.Path, result.Invocation.Reason()))
		return
	}
	cl.LogDebug(fmt.Sprintf("%s: ok (%s)", result.Entry.Path, formatDuration(result.Invocation.Duration)))
}

// LogSummary logs the run summary at INFO level.
func (cl *ConsoleLogger) LogSummary(result models.BatchResult) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var b strings.Builder

	header := fmt.Sprintf("=== %s summary ===", result.Mode)
	failed := fmt.Sprintf("Failed: %d", result.Failed)
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
		if result.Failed > 0 {
			failed = color.New(color.FgRed).Sprint(failed)
		}
	}

	fmt.Fprintf(&b, "[%s] %s\n", ts, header)
	fmt.Fprintf(&b, "[%s] Files: %d\n", ts, result.TotalFiles)
	fmt.Fprintf(&b, "[%s] Succeeded: %d\n", ts, result.Succeeded)
	fmt.Fprintf(&b, "[%s] %s\n", ts, failed)
	if result.Skipped > 0 {
		fmt.Fprintf(&b, "[%s] Skipped: %d\n", ts, result.Skipped)
	}
	if result.Warnings > 0 {
		fmt.Fprintf(&b, "[%s] Warnings: %d\n", ts, result.Warnings)
	}
	fmt.Fprintf(&b, "[%s] Duration: %s\n", ts, formatDuration(result.Duration))
	if result.Interrupted {
		fmt.Fprintf(&b, "[%s] Interrupted before completion\n", ts)
	}

	if len(result.FailedFiles) > 0 {
		fmt.Fprintf(&b, "[%s] Failed files:\n", ts)
		for _, fr := range result.FailedFiles {
			fmt.Fprintf(&b, "[%s]   - %s (%s)\n", ts, fr.Entry.Path, fr.Invocation.Reason())
		}
	}

	cl.writer.Write([]byte(b.String()))
}
