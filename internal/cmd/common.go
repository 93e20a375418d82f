package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harrison/nblbatch/internal/batch"
	"github.com/harrison/nblbatch/internal/config"
	"github.com/harrison/nblbatch/internal/invoker"
	"github.com/harrison/nblbatch/internal/logger"
	"github.com/harrison/nblbatch/internal/models"
	"github.com/harrison/nblbatch/internal/report"
	"github.com/harrison/nblbatch/internal/walker"
	"github.com/spf13/cobra"
)

// addCommonFlags registers the flags shared by every batch command.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .nblbatch/config.yaml)")
	cmd.Flags().String("binary", "", "Tool command line, shell-split (e.g. \"../build/nbl\")")
	cmd.Flags().String("binary-path", "", "Alias of --binary")
	cmd.Flags().Bool("strict", false, "Exit non-zero if any invocation failed")
	cmd.Flags().Bool("dry-run", false, "Print the tool commands instead of running them")
	cmd.Flags().Bool("tool-debug", false, "Pass -d to the tool")
	cmd.Flags().Bool("tool-verbose", false, "Pass -v to the tool")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Also write a per-run log file to this directory")
	cmd.Flags().String("report", "", "Write a YAML run report to this file")
}

// addWalkFlags registers the flags of the recursive commands.
func addWalkFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "Root directory to walk")
	cmd.Flags().StringSlice("include", nil, "Only process files matching these globs (relative to --source)")
	cmd.Flags().StringSlice("exclude", nil, "Skip files and directories matching these globs")
}

// loadConfig reads the config file and applies the common flags.
// Flags override file values only when given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var overrides config.FlagOverrides
	overrides.LogLevel = stringFlag(cmd, "log-level")
	overrides.LogDir = stringFlag(cmd, "log-dir")
	overrides.Report = stringFlag(cmd, "report")
	overrides.Strict = boolFlag(cmd, "strict")
	overrides.DryRun = boolFlag(cmd, "dry-run")
	overrides.ToolDebug = boolFlag(cmd, "tool-debug")
	overrides.ToolVerbose = boolFlag(cmd, "tool-verbose")
	cfg.MergeWithFlags(overrides)

	return cfg, nil
}

// binaryFlag returns the value of --binary or its alias --binary-path.
func binaryFlag(cmd *cobra.Command) (*string, error) {
	if cmd.Flags().Changed("binary") && cmd.Flags().Changed("binary-path") {
		return nil, fmt.Errorf("cannot use both --binary and --binary-path")
	}
	if b := stringFlag(cmd, "binary"); b != nil {
		return b, nil
	}
	return stringFlag(cmd, "binary-path"), nil
}

// mergeTreeFlags applies --source, --include and --exclude to tree.
func mergeTreeFlags(cmd *cobra.Command, tree *config.TreeConfig) {
	if s := stringFlag(cmd, "source"); s != nil {
		tree.Source = *s
	}
	if cmd.Flags().Changed("include") {
		tree.Include, _ = cmd.Flags().GetStringSlice("include")
	}
	if cmd.Flags().Changed("exclude") {
		tree.Exclude, _ = cmd.Flags().GetStringSlice("exclude")
	}
}

func walkOptions(tree config.TreeConfig) walker.Options {
	return walker.Options{Include: tree.Include, Exclude: tree.Exclude}
}

func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// session wires a Runner to the loggers and report for one command run
type session struct {
	cfg        *config.Config
	runner     *batch.Runner
	logger     *logger.MultiLogger
	fileLogger *logger.FileLogger
}

// newSession builds the loggers and the invoker for binary.
func newSession(cmd *cobra.Command, cfg *config.Config, binary string) (*session, error) {
	runID := uuid.New().String()

	sinks := []logger.Sink{logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)}

	var fileLogger *logger.FileLogger
	if cfg.LogDir != "" {
		fl, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, runID)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		fileLogger = fl
		sinks = append(sinks, fl)
	}
	log := logger.NewMultiLogger(sinks...)

	inv, err := newInvoker(binary, cfg.DryRun)
	if err != nil {
		if fileLogger != nil {
			fileLogger.Close()
		}
		return nil, err
	}

	runner := batch.NewRunner(inv, log)
	runner.RunID = runID
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()
	runner.Flags = invoker.ToolFlags{Debug: cfg.ToolFlags.Debug, Verbose: cfg.ToolFlags.Verbose}
	runner.Strict = cfg.Strict
	runner.DryRun = cfg.DryRun

	return &session{cfg: cfg, runner: runner, logger: log, fileLogger: fileLogger}, nil
}

func newInvoker(binary string, dryRun bool) (invoker.Invoker, error) {
	if dryRun {
		d, err := invoker.NewDryRunInvoker(binary)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	e, err := invoker.NewExecInvoker(binary)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// run executes fn under a context cancelled on SIGINT/SIGTERM, then writes
// the report and closes the file logger.
func (s *session) run(ctx context.Context, fn func(context.Context) (*models.BatchResult, error)) error {
	ctx, stop := batch.WithInterrupt(ctx, s.logger)
	defer stop()

	if s.fileLogger != nil {
		defer s.fileLogger.Close()
		s.logger.LogDebug(fmt.Sprintf("writing log to %s", s.fileLogger.Path()))
	}

	result, runErr := fn(ctx)

	if result != nil && s.cfg.Report != "" {
		if err := report.Write(s.cfg.Report, *result); err != nil {
			s.logger.LogError(err.Error())
			if runErr == nil {
				runErr = err
			}
		} else {
			s.logger.LogDebug(fmt.Sprintf("report written to %s", s.cfg.Report))
		}
	}

	return runErr
}
