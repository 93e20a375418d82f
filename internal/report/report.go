// Package report writes a machine-readable summary of a batch run.
package report

import (
	"fmt"
	"time"

	"github.com/harrison/nblbatch/internal/filelock"
	"github.com/harrison/nblbatch/internal/models"
	"gopkg.in/yaml.v3"
)

// Report is the YAML document written by --report
type Report struct {
	RunID       string          `yaml:"run_id"`
	Mode        string          `yaml:"mode"`
	Root        string          `yaml:"root"`
	StartedAt   time.Time       `yaml:"started_at"`
	Duration    string          `yaml:"duration"`
	Status      string          `yaml:"status"`
	Interrupted bool            `yaml:"interrupted,omitempty"`
	Totals      Totals          `yaml:"totals"`
	Failures    []FailureRecord `yaml:"failures,omitempty"`
}

// Totals mirrors the counters of a BatchResult
type Totals struct {
	Files     int `yaml:"files"`
	Succeeded int `yaml:"succeeded"`
	Failed    int `yaml:"failed"`
	Skipped   int `yaml:"skipped"`
	Warnings  int `yaml:"warnings"`
}

// FailureRecord describes one failed invocation
type FailureRecord struct {
	Path     string   `yaml:"path"`
	Args     []string `yaml:"args,flow"`
	ExitCode int      `yaml:"exit_code"`
	Reason   string   `yaml:"reason"`
	Warning  string   `yaml:"warning,omitempty"`
}

// Status values
const (
	StatusSuccess     = "success"
	StatusPartial     = "partial"
	StatusFailed      = "failed"
	StatusInterrupted = "interrupted"
)

// Status classifies a finished run.
func Status(result models.BatchResult) string {
	switch {
	case result.Interrupted:
		return StatusInterrupted
	case result.Failed == 0:
		return StatusSuccess
	case result.Succeeded == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}

// FromResult builds a Report from a finished run.
func FromResult(result models.BatchResult) *Report {
	r := &Report{
		RunID:       result.RunID,
		Mode:        string(result.Mode),
		Root:        result.Root,
		StartedAt:   result.StartedAt.UTC().Truncate(time.Second),
		Duration:    result.Duration.Round(time.Millisecond).String(),
		Status:      Status(result),
		Interrupted: result.Interrupted,
		Totals: Totals{
			Files:     result.TotalFiles,
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
			Skipped:   result.Skipped,
			Warnings:  result.Warnings,
		},
	}

	for _, fr := range result.FailedFiles {
		rec := FailureRecord{
			Path:   fr.Entry.Path,
			Reason: fr.Invocation.Reason(),
		}
		if fr.Invocation != nil {
			rec.Args = fr.Invocation.Args
			rec.ExitCode = fr.Invocation.ExitCode
		}
		if fr.Warning != nil {
			rec.Warning = fr.Warning.Error()
		}
		r.Failures = append(r.Failures, rec)
	}
	return r
}

// Write marshals the report for result and writes it atomically to path.
func Write(path string, result models.BatchResult) error {
	data, err := yaml.Marshal(FromResult(result))
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
