package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/nblbatch/internal/logger"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file looked up in the working directory
var DefaultConfigPath = filepath.Join(".nblbatch", "config.yaml")

// ToolFlagsConfig holds the optional switches passed to every nbl invocation
type ToolFlagsConfig struct {
	// Debug adds -d (dump intermediate buffers)
	Debug bool `yaml:"debug"`

	// Verbose adds -v (print header details)
	Verbose bool `yaml:"verbose"`
}

// TreeConfig configures a recursive walk
type TreeConfig struct {
	// Source is the root directory to walk
	Source string `yaml:"source"`

	// Include limits the walk to files matching these doublestar globs
	Include []string `yaml:"include"`

	// Exclude skips files and prunes directories matching these globs
	Exclude []string `yaml:"exclude"`
}

// ExtractConfig configures the extract command
type ExtractConfig struct {
	TreeConfig `yaml:",inline"`

	// Dest is the root under which mirror directories are created
	Dest string `yaml:"dest"`
}

// ListSeqConfig configures the list-seq command
type ListSeqConfig struct {
	// Dir is the flat directory to scan
	Dir string `yaml:"dir"`

	// Binary overrides the top-level binary for this command
	Binary string `yaml:"binary"`

	// Pattern selects files in Dir
	Pattern string `yaml:"pattern"`

	// Skip excludes names containing this marker
	Skip string `yaml:"skip"`
}

// Config represents nblbatch configuration options
type Config struct {
	// Binary is the tool command line (shell-split)
	Binary string `yaml:"binary"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a per-run log file in this directory when non-empty
	LogDir string `yaml:"log_dir"`

	// Report is the path of a YAML run report written at the end of a run
	Report string `yaml:"report"`

	// Strict makes any failed invocation fail the run
	Strict bool `yaml:"strict"`

	// DryRun prints commands instead of running them
	DryRun bool `yaml:"dry_run"`

	// ToolFlags are passed to every invocation
	ToolFlags ToolFlagsConfig `yaml:"tool_flags"`

	Extract ExtractConfig `yaml:"extract"`
	List    TreeConfig    `yaml:"list"`
	ListSeq ListSeqConfig `yaml:"list_seq"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Binary:   "nbl",
		LogLevel: "info",
		ListSeq: ListSeqConfig{
			Dir:     ".",
			Binary:  "../build/nbl",
			Pattern: "*.nbl",
			Skip:    "new",
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over the defaults; keys absent from the file keep them
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .nblbatch/config.yaml in dir.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DefaultConfigPath))
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}
	if c.Binary == "" {
		return fmt.Errorf("binary cannot be empty")
	}
	if c.ListSeq.Pattern == "" {
		return fmt.Errorf("list_seq.pattern cannot be empty")
	}
	return nil
}

// ValidateExtract checks the settings the extract command needs.
func (c *Config) ValidateExtract() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Extract.Source == "" {
		return fmt.Errorf("extract.source is required (use --source)")
	}
	if c.Extract.Dest == "" {
		return fmt.Errorf("extract.dest is required (use --dest)")
	}
	return nil
}

// ValidateList checks the settings the list command needs.
func (c *Config) ValidateList() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.List.Source == "" {
		return fmt.Errorf("list.source is required (use --source)")
	}
	return nil
}

// ListSeqBinary returns the tool command for list-seq: its own binary
// setting when present, the top-level one otherwise.
func (c *Config) ListSeqBinary() string {
	if c.ListSeq.Binary != "" {
		return c.ListSeq.Binary
	}
	return c.Binary
}

// FlagOverrides holds command-line values that take precedence over the
// config file. A nil field means the flag was not given.
type FlagOverrides struct {
	Binary      *string
	LogLevel    *string
	LogDir      *string
	Report      *string
	Strict      *bool
	DryRun      *bool
	ToolDebug   *bool
	ToolVerbose *bool
}

// MergeWithFlags applies the non-nil overrides to the config.
func (c *Config) MergeWithFlags(f FlagOverrides) {
	if f.Binary != nil {
		c.Binary = *f.Binary
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
	if f.Report != nil {
		c.Report = *f.Report
	}
	if f.Strict != nil {
		c.Strict = *f.Strict
	}
	if f.DryRun != nil {
		c.DryRun = *f.DryRun
	}
	if f.ToolDebug != nil {
		c.ToolFlags.Debug = *f.ToolDebug
	}
	if f.ToolVerbose != nil {
		c.ToolFlags.Verbose = *f.ToolVerbose
	}
}
