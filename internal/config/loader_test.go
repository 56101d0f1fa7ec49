package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitConfigUnmarshal(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	yaml := `
security:
  rate_limit:
    enabled: true
    requests_per_second: 50
    burst: 100
    generation_per_minute: 5
`
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, 50, cfg.Security.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, cfg.Security.RateLimit.GenerationPerMinute)
}

func TestRateLimitConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, 10, cfg.Security.RateLimit.GenerationPerMinute)
}

func TestExpandEnv(t *testing.T) {
	t.Run("使用默认值", func(t *testing.T) {
		assert.Equal(t, "limit: 10", expandEnv("limit: ${MISSING_VAR_FOR_TEST:10}"))
	})

	t.Run("环境变量优先", func(t *testing.T) {
		t.Setenv("EXPAND_ENV_TEST_VAR", "42")
		assert.Equal(t, "limit: 42", expandEnv("limit: ${EXPAND_ENV_TEST_VAR:10}"))
	})
}
