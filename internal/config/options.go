// Package config holds the analyzer run's configurable Options and the
// layered default/env/file/flag loading that produces them.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Options is the single source of truth for every knob a run can be
// configured with, mirrored onto CLI flags by cmd/dsmctl.
type Options struct {
	// Resolution behavior
	IncludeTests           bool
	IncludeTypeOnlyImports bool
	LargeRepoThreshold     int

	// Fetch behavior
	CloneDepth     int
	MaxRepoSizeMiB int64

	// Output
	OutputFile  string
	PrettyPrint bool

	// Logging
	Verbose   bool
	Debug     bool
	LogLevel  slog.Level
	LogFormat string
	LogFile   string
}

// DefaultOptions returns the baseline configuration before environment,
// file, or flag overrides are applied.
func DefaultOptions() *Options {
	return &Options{
		IncludeTests:           true,
		IncludeTypeOnlyImports: true,
		LargeRepoThreshold:     100,
		CloneDepth:             1,
		MaxRepoSizeMiB:         200,
		OutputFile:             "dsm-analysis.json",
		PrettyPrint:            true,
		Verbose:                false,
		Debug:                  false,
		LogLevel:               slog.LevelInfo,
		LogFormat:              "text",
		LogFile:                "",
	}
}

// LoadFromEnvironment overlays DSM_*-prefixed environment variables onto
// the default options.
func LoadFromEnvironment() *Options {
	opts := DefaultOptions()

	if v := os.Getenv("DSM_INCLUDE_TESTS"); v != "" {
		opts.IncludeTests = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("DSM_INCLUDE_TYPE_ONLY_IMPORTS"); v != "" {
		opts.IncludeTypeOnlyImports = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("DSM_LARGE_REPO_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.LargeRepoThreshold = n
		}
	}
	if v := os.Getenv("DSM_CLONE_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.CloneDepth = n
		}
	}
	if v := os.Getenv("DSM_MAX_REPO_SIZE_MIB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			opts.MaxRepoSizeMiB = n
		}
	}
	if v := os.Getenv("DSM_OUTPUT"); v != "" {
		opts.OutputFile = v
	}
	if v := os.Getenv("DSM_PRETTY"); v != "" {
		opts.PrettyPrint = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("DSM_VERBOSE"); v != "" {
		opts.Verbose = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("DSM_DEBUG"); v != "" {
		opts.Debug = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("DSM_LOG_LEVEL"); v != "" {
		if level, err := parseLogLevel(v); err == nil {
			opts.LogLevel = level
		}
	}
	if v := os.Getenv("DSM_LOG_FORMAT"); v != "" {
		opts.LogFormat = v
	}
	if v := os.Getenv("DSM_LOG_FILE"); v != "" {
		opts.LogFile = v
	}

	return opts
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ConfigureLogger builds the slog.Logger a run should use, honoring
// Verbose/Debug overrides on top of LogLevel and routing to LogFile when
// set.
func (o *Options) ConfigureLogger() *slog.Logger {
	level := o.LogLevel
	if o.Debug {
		level = slog.LevelDebug
	} else if o.Verbose && level > slog.LevelInfo {
		level = slog.LevelInfo
	}

	var output io.Writer = os.Stderr
	if o.LogFile != "" {
		file, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot open log file %s: %v\n", o.LogFile, err)
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(o.LogFormat) == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

// Validate rejects option combinations that cannot produce a sensible run.
func (o *Options) Validate() error {
	if o.Verbose && o.Debug {
		return fmt.Errorf("cannot use both --verbose and --debug flags")
	}
	if o.LargeRepoThreshold <= 0 {
		return fmt.Errorf("large repo threshold must be positive, got %d", o.LargeRepoThreshold)
	}
	if o.CloneDepth <= 0 {
		return fmt.Errorf("clone depth must be positive, got %d", o.CloneDepth)
	}
	if o.MaxRepoSizeMiB <= 0 {
		return fmt.Errorf("max repo size must be positive, got %d", o.MaxRepoSizeMiB)
	}
	return nil
}
