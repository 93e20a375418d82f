package models

import "time"

// BatchResult represents the aggregate result of one batch run
type BatchResult struct {
	RunID       string        // Unique identifier of the run
	Mode        Mode          // Which utility ran
	Root        string        // Source root or scanned directory
	TotalFiles  int           // Number of files invoked
	Succeeded   int           // Invocations that exited 0
	Failed      int           // Invocations that failed
	Skipped     int           // Files excluded by the skip marker
	Warnings    int           // Non-fatal problems (mkdir failures, missing sequence keys)
	Interrupted bool          // The run was cancelled before finishing
	StartedAt   time.Time     // When the run began
	Duration    time.Duration // Total wall time
	FailedFiles []FileResult  // Details of failed files
}

// Record adds one processed file to the totals.
func (b *BatchResult) Record(fr FileResult) {
	b.TotalFiles++
	if fr.Warning != nil {
		b.Warnings++
	}
	if fr.Failed() {
		b.Failed++
		b.FailedFiles = append(b.FailedFiles, fr)
		return
	}
	b.Succeeded++
}

// HasFailures returns true if any invocation failed.
func (b *BatchResult) HasFailures() bool {
	return b.Failed > 0
}
