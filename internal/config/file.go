package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dsmgraph/dsm-analyzer/internal/validation"
	"gopkg.in/yaml.v3"
)

const repoConfigSchema = "dsm-repo-config.json"

// FileOptions is the subset of Options an on-disk or inline config document
// may override; zero values mean "not set" so they never clobber an
// already-loaded Options when merged.
type FileOptions struct {
	IncludeTests           *bool   `yaml:"include_tests,omitempty" json:"include_tests,omitempty"`
	IncludeTypeOnlyImports *bool   `yaml:"include_type_only_imports,omitempty" json:"include_type_only_imports,omitempty"`
	LargeRepoThreshold     *int    `yaml:"large_repo_threshold,omitempty" json:"large_repo_threshold,omitempty"`
	CloneDepth             *int    `yaml:"clone_depth,omitempty" json:"clone_depth,omitempty"`
	MaxRepoSizeMiB         *int64  `yaml:"max_repo_size_mib,omitempty" json:"max_repo_size_mib,omitempty"`
	OutputFile             *string `yaml:"output_file,omitempty" json:"output_file,omitempty"`
	PrettyPrint            *bool   `yaml:"pretty,omitempty" json:"pretty,omitempty"`
	LogLevel               *string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	LogFormat              *string `yaml:"log_format,omitempty" json:"log_format,omitempty"`
}

// LoadFile reads a repo config document from configPath, which may be a
// filesystem path (.yaml/.yml/.json) or, for convenience, an inline JSON
// object starting with "{".
func LoadFile(configPath string) (*FileOptions, error) {
	if configPath == "" {
		return nil, nil
	}

	var raw []byte
	if strings.HasPrefix(strings.TrimSpace(configPath), "{") {
		raw = []byte(configPath)
	} else {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
		raw = content
	}

	if err := validation.ValidateYAML(repoConfigSchema, raw); err != nil {
		return nil, fmt.Errorf("invalid repo config: %w", err)
	}

	fo := &FileOptions{}
	if strings.HasSuffix(configPath, ".json") || strings.HasPrefix(strings.TrimSpace(configPath), "{") {
		if err := json.Unmarshal(raw, fo); err != nil {
			return nil, fmt.Errorf("parsing config as JSON: %w", err)
		}
		return fo, nil
	}
	if err := yaml.Unmarshal(raw, fo); err != nil {
		return nil, fmt.Errorf("parsing config as YAML: %w", err)
	}
	return fo, nil
}

// Merge applies every non-nil field of fo onto opts, in place.
func (fo *FileOptions) Merge(opts *Options) {
	if fo == nil {
		return
	}
	if fo.IncludeTests != nil {
		opts.IncludeTests = *fo.IncludeTests
	}
	if fo.IncludeTypeOnlyImports != nil {
		opts.IncludeTypeOnlyImports = *fo.IncludeTypeOnlyImports
	}
	if fo.LargeRepoThreshold != nil {
		opts.LargeRepoThreshold = *fo.LargeRepoThreshold
	}
	if fo.CloneDepth != nil {
		opts.CloneDepth = *fo.CloneDepth
	}
	if fo.MaxRepoSizeMiB != nil {
		opts.MaxRepoSizeMiB = *fo.MaxRepoSizeMiB
	}
	if fo.OutputFile != nil {
		opts.OutputFile = *fo.OutputFile
	}
	if fo.PrettyPrint != nil {
		opts.PrettyPrint = *fo.PrettyPrint
	}
	if fo.LogLevel != nil {
		if level, err := parseLogLevel(*fo.LogLevel); err == nil {
			opts.LogLevel = level
		}
	}
	if fo.LogFormat != nil {
		opts.LogFormat = *fo.LogFormat
	}
}
