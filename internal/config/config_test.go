package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  engine: duckduckgo\nbatch:\n  workers: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EngineDuckDuckGo, cfg.Search.Engine)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, 100, cfg.Search.ResultCount, "unset keys keep their default")
	assert.Equal(t, 100, cfg.Batch.Limit)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SITEFINDER_SEARCH_ENGINE": "duckduckgo",
		"SITEFINDER_WORKERS":       "8",
		"SITEFINDER_LIMIT":         "not-a-number",
		"SITEFINDER_SQLITE_PATH":   "out.db",
	}
	cfg := Default()
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	assert.Equal(t, EngineDuckDuckGo, cfg.Search.Engine)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, 100, cfg.Batch.Limit)
	assert.Equal(t, "out.db", cfg.Export.SQLitePath)
}

func TestNormalizeAndValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErrs int
		wantWarn int
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown engine", mutate: func(c *Config) { c.Search.Engine = "bing" }, wantErrs: 1},
		{name: "zero workers", mutate: func(c *Config) { c.Batch.Workers = 0 }, wantErrs: 1},
		{name: "too many workers", mutate: func(c *Config) { c.Batch.Workers = MaxWorkers + 1 }, wantErrs: 1},
		{name: "many workers warns", mutate: func(c *Config) { c.Batch.Workers = 48 }, wantWarn: 1},
		{name: "relative base url", mutate: func(c *Config) { c.Search.BaseURL = "/search" }, wantErrs: 1},
		{name: "no timeouts", mutate: func(c *Config) {
			c.Search.TimeoutSeconds = 0
			c.Validate.TimeoutSeconds = 0
		}, wantErrs: 2},
		{name: "negative limit", mutate: func(c *Config) { c.Batch.Limit = -1 }, wantErrs: 1},
		{name: "empty user agent", mutate: func(c *Config) { c.Search.UserAgent = "  " }, wantWarn: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			_, v := NormalizeAndValidate(cfg)
			assert.Len(t, v.Errors, tt.wantErrs, "errors: %v", v.Errors)
			assert.Len(t, v.Warnings, tt.wantWarn, "warnings: %v", v.Warnings)
		})
	}
}

func TestNormalizeSkipDomains(t *testing.T) {
	cfg := Default()
	cfg.Search.Engine = " Google "
	cfg.Search.SkipDomains = []string{"www.Wikipedia.org", "wikipedia.org", " ", "zaubacorp.com"}

	out, v := NormalizeAndValidate(cfg)
	require.True(t, v.OK())
	assert.Equal(t, EngineGoogle, out.Search.Engine)
	assert.Equal(t, []string{"wikipedia.org", "zaubacorp.com"}, out.Search.SkipDomains)
}

func TestEnsureUserConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	created, err := EnsureUserConfig(path)
	require.NoError(t, err)
	assert.True(t, created)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	created, err = EnsureUserConfig(path)
	require.NoError(t, err)
	assert.False(t, created, "existing config is left alone")
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.Batch.Workers = 0

	err := SaveAtomic(path, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch.workers")
	assert.NoFileExists(t, path)
}
