package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (compatible; seo-audit/1.0)"
	DefaultBatchSize = 5
)

// Summary formats understood by the report writer
const (
	SummaryMarkdown = "markdown"
	SummaryHTML     = "html"
)

// AppConfig holds the configuration for one audit run
type AppConfig struct {
	UserAgent          string           `yaml:"user_agent,omitempty"`
	BatchSize          int              `yaml:"batch_size,omitempty"` // Pages fetched concurrently per round
	MaxRetries         int              `yaml:"max_retries,omitempty"`
	InitialRetryDelay  time.Duration    `yaml:"initial_retry_delay,omitempty"`
	MaxRetryDelay      time.Duration    `yaml:"max_retry_delay,omitempty"`
	OutputDir          string           `yaml:"output_dir,omitempty"`
	StateDir           string           `yaml:"state_dir,omitempty"`            // Empty keeps the seen-URL store in memory
	DiscoverSameOrigin bool             `yaml:"discover_same_origin,omitempty"` // Widen link discovery from page prefix to whole origin
	SummaryFormats     []string         `yaml:"summary_formats,omitempty"`
	HTTPClientSettings HTTPClientConfig `yaml:"http_client_settings,omitempty"`
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	Timeout               time.Duration `yaml:"timeout,omitempty"`                 // Overall request timeout
	MaxIdleConns          int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost   int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout,omitempty"`
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout,omitempty"`
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout,omitempty"`
	ForceAttemptHTTP2     *bool         `yaml:"force_attempt_http2,omitempty"` // nil=default, true=force, false=disable
	DialerTimeout         time.Duration `yaml:"dialer_timeout,omitempty"`
	DialerKeepAlive       time.Duration `yaml:"dialer_keep_alive,omitempty"`
}

// Load reads a YAML config file. A missing file yields an empty config
// unless mustExist is set.
func Load(path string, mustExist bool) (*AppConfig, error) {
	cfg := &AppConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: reading config file '%s': %w", utils.ErrFilesystem, path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config file '%s': %w", utils.ErrConfigValidation, path, err)
	}
	return cfg, nil
}

// WantsSummary reports whether the given summary format is enabled.
func (c *AppConfig) WantsSummary(format string) bool {
	for _, f := range c.SummaryFormats {
		if f == format {
			return true
		}
	}
	return false
}
