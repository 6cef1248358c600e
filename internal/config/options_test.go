package config

import (
	"os"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
)

func clearEnvVars() {
	for _, key := range []string{
		"DSM_INCLUDE_TESTS", "DSM_INCLUDE_TYPE_ONLY_IMPORTS",
		"DSM_LARGE_REPO_THRESHOLD", "DSM_CLONE_DEPTH", "DSM_MAX_REPO_SIZE_MIB",
		"DSM_OUTPUT", "DSM_PRETTY", "DSM_VERBOSE", "DSM_DEBUG",
		"DSM_LOG_LEVEL", "DSM_LOG_FORMAT", "DSM_LOG_FILE",
	} {
		os.Unsetenv(key)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, "dsm-analysis.json", opts.OutputFile)
	assert.True(t, opts.PrettyPrint)
	assert.Equal(t, 100, opts.LargeRepoThreshold)
	assert.Equal(t, 1, opts.CloneDepth)
	assert.Equal(t, slog.LevelInfo, opts.LogLevel)
	assert.Equal(t, "text", opts.LogFormat)
}

func TestLoadFromEnvironment_Defaults(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	opts := LoadFromEnvironment()
	assert.Equal(t, DefaultOptions(), opts)
}

func TestLoadFromEnvironment_Overrides(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("DSM_OUTPUT", "/tmp/result.json")
	os.Setenv("DSM_PRETTY", "false")
	os.Setenv("DSM_LARGE_REPO_THRESHOLD", "50")
	os.Setenv("DSM_LOG_LEVEL", "debug")
	os.Setenv("DSM_LOG_FORMAT", "json")

	opts := LoadFromEnvironment()
	assert.Equal(t, "/tmp/result.json", opts.OutputFile)
	assert.False(t, opts.PrettyPrint)
	assert.Equal(t, 50, opts.LargeRepoThreshold)
	assert.Equal(t, slog.LevelDebug, opts.LogLevel)
	assert.Equal(t, "json", opts.LogFormat)
}

func TestValidateRejectsVerboseAndDebugTogether(t *testing.T) {
	opts := DefaultOptions()
	opts.Verbose = true
	opts.Debug = true
	assert.Error(t, opts.Validate())
}

func TestValidateRejectsNonPositiveThreshold(t *testing.T) {
	opts := DefaultOptions()
	opts.LargeRepoThreshold = 0
	assert.Error(t, opts.Validate())
}

func TestFileOptionsMergeOnlyOverridesSetFields(t *testing.T) {
	opts := DefaultOptions()
	fo, err := LoadFile(`{"output_file": "custom.json", "large_repo_threshold": 25}`)
	assert.NoError(t, err)
	fo.Merge(opts)

	assert.Equal(t, "custom.json", opts.OutputFile)
	assert.Equal(t, 25, opts.LargeRepoThreshold)
	assert.True(t, opts.PrettyPrint, "unset fields must not be clobbered")
}
