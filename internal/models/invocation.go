package models

import (
	"fmt"
	"time"
)

// Mode identifies which batch utility produced a result
type Mode string

const (
	ModeExtract Mode = "extract"  // Mirror and extract every file in a tree
	ModeList    Mode = "list"     // List every file in a tree
	ModeListSeq Mode = "list-seq" // List a flat directory in sequence order
)

// InvocationResult captures one run of the external tool
type InvocationResult struct {
	Args     []string      // Full argv, tool command first
	ExitCode int           // Process exit code (-1 when it never ran or was signalled)
	Duration time.Duration // Wall time of the invocation
	Error    error         // Start failure, signal or cancellation
}

// Failed reports whether the invocation did not exit cleanly.
func (r *InvocationResult) Failed() bool {
	if r == nil {
		return true
	}
	return r.Error != nil || r.ExitCode != 0
}

// Reason describes why the invocation failed, or "ok".
func (r *InvocationResult) Reason() string {
	switch {
	case r == nil:
		return "not invoked"
	case r.Error != nil:
		return r.Error.Error()
	case r.ExitCode != 0:
		return fmt.Sprintf("exit status %d", r.ExitCode)
	default:
		return "ok"
	}
}

// FileResult is the outcome of processing one discovered file
type FileResult struct {
	Entry      FileEntry         // The file that was processed
	Invocation *InvocationResult // nil when the file was skipped
	Warning    error             // Non-fatal problem before invoking (e.g. mkdir failure)
}

// Failed reports whether the file's invocation failed.
func (r FileResult) Failed() bool {
	return r.Invocation.Failed()
}
