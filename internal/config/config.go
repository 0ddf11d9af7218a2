// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap/zapcore"

	"github.com/joe/music-scan/internal/report"
	"github.com/joe/music-scan/pkg/filesystem"
)

// Defaults applied by ParseFlags.
const (
	DefaultMaxErrors = 20
	DefaultReadBatch = filesystem.DefaultReadBatch
	DefaultTimeout   = filesystem.DefaultDialTimeout
)

// Config holds the application configuration
type Config struct {
	Root       string           `arg:"positional" help:"Directory to scan: a local path or sftp://user@host[:port]/path"`
	Include    []string         `arg:"-i,--include,separate" help:"Only probe files matching this glob (repeatable, case-insensitive, e.g. '**/*.flac')"`
	NoProbe    bool             `arg:"--no-probe" help:"List files without reading their metadata"`
	Format     report.Format    `arg:"-f,--format" default:"text" help:"Result format: text|json|yaml"`
	Output     string           `arg:"-o,--output" help:"Write results to this file instead of stdout"`
	Order      filesystem.Order `arg:"--order" default:"depth-first" help:"Traversal order: depth-first|siblings-first"`
	ReadBatch  int              `arg:"--read-batch" default:"128" help:"Directory entries fetched per read on local roots"`
	MaxErrors  int              `arg:"--max-errors" default:"20" help:"Maximum walk errors to show in the report (0 = all)"`
	Plain      bool             `arg:"--plain" help:"Disable the interactive progress view"`
	LogLevel   zapcore.Level    `arg:"--log-level" default:"info" help:"Log level: debug|info|warn|error"`
	LogFile    string           `arg:"--log-file" help:"Write logs to this file"`
	KnownHosts string           `arg:"--known-hosts" help:"known_hosts file for verifying SFTP servers (empty disables verification)"`
	Timeout    time.Duration    `arg:"--timeout" default:"15s" help:"SFTP connection timeout"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Scans a music library, reads tag and stream metadata from every audio file, and reports what could not be read"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "music-scan 1.0.0"
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{
		Format:    report.FormatText,
		Order:     filesystem.DepthFirst,
		MaxErrors: DefaultMaxErrors,
		ReadBatch: DefaultReadBatch,
		LogLevel:  zapcore.InfoLevel,
		Timeout:   DefaultTimeout,
	}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration without touching the filesystem.
// Whether the root can be opened is decided by the walk itself.
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.New("root path is required") //nolint:err113 // Validation message
	}

	if _, err := filesystem.ParseRoot(cfg.Root); err != nil {
		return fmt.Errorf("invalid root: %w", err)
	}

	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern: %s", pattern) //nolint:err113 // Carries the pattern
		}
	}

	if cfg.MaxErrors < 0 {
		return fmt.Errorf("max errors must not be negative: %d", cfg.MaxErrors) //nolint:err113 // Carries the value
	}

	if cfg.ReadBatch < 0 {
		return fmt.Errorf("read batch must not be negative: %d", cfg.ReadBatch) //nolint:err113 // Carries the value
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", cfg.Timeout) //nolint:err113 // Carries the value
	}

	return nil
}

// ConnectOptions returns the SFTP settings for the root.
func (cfg *Config) ConnectOptions() filesystem.ConnectOptions {
	return filesystem.ConnectOptions{
		KnownHostsFile: cfg.KnownHosts,
		Timeout:        cfg.Timeout,
	}
}
