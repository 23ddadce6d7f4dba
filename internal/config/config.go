// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EngineGoogle     = "google"
	EngineDuckDuckGo = "duckduckgo"

	// DefaultUserAgent is the desktop Chrome string the search engine is queried with.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 100.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Config struct {
	Search struct {
		Engine         string   `yaml:"engine"`
		BaseURL        string   `yaml:"base_url"`
		ResultCount    int      `yaml:"result_count"`
		UserAgent      string   `yaml:"user_agent"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		SkipDomains    []string `yaml:"skip_domains,omitempty"`
	} `yaml:"search"`

	Validate struct {
		TimeoutSeconds int   `yaml:"timeout_seconds"`
		MaxBodyBytes   int64 `yaml:"max_body_bytes"`
	} `yaml:"validate"`

	Batch struct {
		Workers int `yaml:"workers"`
		Limit   int `yaml:"limit"`
	} `yaml:"batch"`

	Export struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"export"`
}

func Default() Config {
	var cfg Config
	cfg.Search.Engine = EngineGoogle
	cfg.Search.ResultCount = 100
	cfg.Search.UserAgent = DefaultUserAgent
	cfg.Search.TimeoutSeconds = 15
	cfg.Validate.TimeoutSeconds = 10
	cfg.Validate.MaxBodyBytes = 5 << 20
	cfg.Batch.Workers = 16
	cfg.Batch.Limit = 100
	return cfg
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// ApplyEnv overlays SITEFINDER_* variables. Unparseable numbers are ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	str("SITEFINDER_SEARCH_ENGINE", &cfg.Search.Engine)
	str("SITEFINDER_SEARCH_BASE_URL", &cfg.Search.BaseURL)
	str("SITEFINDER_USER_AGENT", &cfg.Search.UserAgent)
	str("SITEFINDER_SQLITE_PATH", &cfg.Export.SQLitePath)
	num("SITEFINDER_WORKERS", &cfg.Batch.Workers)
	num("SITEFINDER_LIMIT", &cfg.Batch.Limit)
}
