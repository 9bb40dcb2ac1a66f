package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

const maxRecommendedBatchSize = 25

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}

	// BatchSize
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	} else if c.BatchSize > maxRecommendedBatchSize {
		warnings = append(warnings, fmt.Sprintf(
			"batch_size %d is high and may overload the audited site", c.BatchSize))
	}

	// MaxRetries
	if c.MaxRetries < 0 {
		warnings = append(warnings, "max_retries cannot be negative, setting to 0")
		c.MaxRetries = 0
	}
	if c.MaxRetries == 0 && c.InitialRetryDelay == 0 {
		c.MaxRetries = 2
	}

	// Retry delays (only if retries enabled)
	if c.MaxRetries > 0 {
		if c.InitialRetryDelay <= 0 {
			c.InitialRetryDelay = 500 * time.Millisecond
		}
		if c.MaxRetryDelay <= 0 {
			c.MaxRetryDelay = 10 * time.Second
		}
	}
	if c.InitialRetryDelay > c.MaxRetryDelay && c.MaxRetryDelay > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"initial_retry_delay (%v) > max_retry_delay (%v), using max_retry_delay for initial",
			c.InitialRetryDelay, c.MaxRetryDelay))
		c.InitialRetryDelay = c.MaxRetryDelay
	}

	if c.OutputDir == "" {
		c.OutputDir = "."
	}

	for i, f := range c.SummaryFormats {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case "md":
			f = SummaryMarkdown
		case SummaryMarkdown, SummaryHTML:
		default:
			return warnings, fmt.Errorf("%w: unknown summary format '%s'", utils.ErrConfigValidation, c.SummaryFormats[i])
		}
		c.SummaryFormats[i] = f
	}

	c.validateHTTPClientSettings()

	return warnings, nil
}

// validateHTTPClientSettings applies defaults to HTTP client settings.
func (c *AppConfig) validateHTTPClientSettings() {
	h := &c.HTTPClientSettings
	if h.Timeout <= 0 {
		h.Timeout = 45 * time.Second
	}
	if h.MaxIdleConns <= 0 {
		h.MaxIdleConns = 100
	}
	if h.MaxIdleConnsPerHost <= 0 {
		h.MaxIdleConnsPerHost = DefaultBatchSize
		if c.BatchSize > h.MaxIdleConnsPerHost {
			h.MaxIdleConnsPerHost = c.BatchSize
		}
	}
	if h.IdleConnTimeout <= 0 {
		h.IdleConnTimeout = 90 * time.Second
	}
	if h.TLSHandshakeTimeout <= 0 {
		h.TLSHandshakeTimeout = 10 * time.Second
	}
	if h.ExpectContinueTimeout <= 0 {
		h.ExpectContinueTimeout = 1 * time.Second
	}
	if h.DialerTimeout <= 0 {
		h.DialerTimeout = 15 * time.Second
	}
	if h.DialerKeepAlive <= 0 {
		h.DialerKeepAlive = 30 * time.Second
	}
}
