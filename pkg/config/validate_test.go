package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

func TestAppConfig_Validate_Defaults(t *testing.T) {
	cfg := AppConfig{}
	warnings, err := cfg.Validate()

	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialRetryDelay)
	assert.Equal(t, 10*time.Second, cfg.MaxRetryDelay)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Empty(t, cfg.StateDir)

	assert.Equal(t, 45*time.Second, cfg.HTTPClientSettings.Timeout)
	assert.Equal(t, 100, cfg.HTTPClientSettings.MaxIdleConns)
	assert.Equal(t, 5, cfg.HTTPClientSettings.MaxIdleConnsPerHost)
	assert.Equal(t, 90*time.Second, cfg.HTTPClientSettings.IdleConnTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTPClientSettings.TLSHandshakeTimeout)
	assert.Equal(t, 1*time.Second, cfg.HTTPClientSettings.ExpectContinueTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTPClientSettings.DialerTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTPClientSettings.DialerKeepAlive)
}

func TestAppConfig_Validate_LargeBatch(t *testing.T) {
	cfg := AppConfig{BatchSize: 40}
	warnings, err := cfg.Validate()

	require.NoError(t, err)
	assert.Equal(t, 40, cfg.BatchSize)
	assert.Equal(t, 40, cfg.HTTPClientSettings.MaxIdleConnsPerHost)
	assert.True(t, containsWarning(warnings, "batch_size 40 is high"))
}

func TestAppConfig_Validate_NegativeRetries(t *testing.T) {
	cfg := AppConfig{MaxRetries: -1, InitialRetryDelay: time.Second}
	warnings, err := cfg.Validate()

	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.True(t, containsWarning(warnings, "max_retries cannot be negative"))
}

func TestAppConfig_Validate_RetryDelayInversion(t *testing.T) {
	cfg := AppConfig{
		MaxRetries:        3,
		InitialRetryDelay: 20 * time.Second,
		MaxRetryDelay:     5 * time.Second,
	}
	warnings, err := cfg.Validate()

	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.InitialRetryDelay)
	assert.True(t, containsWarning(warnings, "initial_retry_delay"))
}

func TestAppConfig_Validate_SummaryFormats(t *testing.T) {
	t.Run("normalizes known formats", func(t *testing.T) {
		cfg := AppConfig{SummaryFormats: []string{"MD", " html "}}
		_, err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, []string{SummaryMarkdown, SummaryHTML}, cfg.SummaryFormats)
		assert.True(t, cfg.WantsSummary(SummaryHTML))
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		cfg := AppConfig{SummaryFormats: []string{"pdf"}}
		_, err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, utils.ErrConfigValidation)
	})
}

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
